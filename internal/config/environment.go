package config

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v11"
)

const (
	ProfileDevelopment = "development"
	ProfileTest        = "test"
	ProfileCI          = "ci"
)

// Environment is a snapshot of the variables that drive profile selection.
// Take it once at startup; later changes to the process environment are not
// observed.
type Environment struct {
	AppEnv        string `env:"APP_ENV"`
	CI            string `env:"CI"`
	GitHubActions string `env:"GITHUB_ACTIONS"`

	// DatabaseURL overrides the URL of whichever profile is selected.
	DatabaseURL string `env:"DATABASE_URL"`
}

// ReadEnvironment snapshots the process environment.
func ReadEnvironment() (Environment, error) {
	var e Environment
	if err := env.Parse(&e); err != nil {
		return Environment{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// EnvironmentFromMap builds a snapshot from vars instead of the process
// environment.
func EnvironmentFromMap(vars map[string]string) (Environment, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	var e Environment
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return Environment{}, fmt.Errorf("parse env: %w", err)
	}
	return e, nil
}

// InCI reports whether either CI indicator is set to a truthy value.
func (e Environment) InCI() bool {
	return truthy(e.CI) || truthy(e.GitHubActions)
}

// ResolveProfile picks the profile name for e. CI wins over everything,
// then APP_ENV=test, then APP_ENV verbatim, then "development".
func ResolveProfile(e Environment) string {
	if e.InCI() {
		return ProfileCI
	}
	if e.AppEnv == ProfileTest {
		return ProfileTest
	}
	if e.AppEnv == "" {
		return ProfileDevelopment
	}
	return e.AppEnv
}

// truthy treats any non-empty value as set unless it parses as false.
func truthy(v string) bool {
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return true
	}
	return b
}
