package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	ClientPostgres = "postgres"
	ClientSQLite   = "sqlite"
)

// Profile is one named set of connection parameters.
type Profile struct {
	Name   string     `mapstructure:"-"`
	Client string     `mapstructure:"client"`
	URL    string     `mapstructure:"url"`
	Schema string     `mapstructure:"schema"`
	Pool   PoolConfig `mapstructure:"pool"`
}

// PoolConfig tunes the postgres pool. Zero values keep the defaults.
type PoolConfig struct {
	MinConns          int32         `mapstructure:"min_conns"`
	MaxConns          int32         `mapstructure:"max_conns"`
	MaxConnLifetime   time.Duration `mapstructure:"max_conn_lifetime"`
	HealthCheckPeriod time.Duration `mapstructure:"health_check_period"`
}

// Profiles maps lower-cased profile names to their parameters.
type Profiles map[string]Profile

// ConfigNotFoundError is returned when a resolved profile has no entry.
type ConfigNotFoundError struct {
	Profile string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("no database configuration found for environment: %s", e.Profile)
}

// LoadProfiles reads the profile file at path. With an empty path it looks
// for database.yaml in the working directory and in ./config.
func LoadProfiles(path string) (Profiles, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("database")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read database config: %w", err)
	}

	raw := make(map[string]Profile)
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("decode database config: %w", err)
	}

	profiles := make(Profiles, len(raw))
	for name, p := range raw {
		p.Name = name
		if p.Client == "" {
			p.Client = ClientPostgres
		}
		profiles[name] = p
	}
	return profiles, nil
}

// Lookup returns the profile registered under name. Names are matched
// case-insensitively because the loader folds keys.
func (p Profiles) Lookup(name string) (Profile, error) {
	profile, ok := p[strings.ToLower(name)]
	if !ok {
		return Profile{}, &ConfigNotFoundError{Profile: name}
	}
	return profile, nil
}

// Select resolves the profile for e and looks it up, applying the
// DATABASE_URL override.
func Select(e Environment, profiles Profiles) (Profile, error) {
	profile, err := profiles.Lookup(ResolveProfile(e))
	if err != nil {
		return Profile{}, err
	}
	if e.DatabaseURL != "" {
		profile.URL = e.DatabaseURL
	}
	return profile, nil
}
