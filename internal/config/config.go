package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by CASEBOOK_ENV_FILE (or .env by default),
// then loads the corresponding .secret file if it exists.
// Variables already present in the process environment are never overwritten.
func Load() error {
	envFile := os.Getenv("CASEBOOK_ENV_FILE")
	if envFile == "" {
		// Load main env file (ignore error if file doesn't exist)
		_ = godotenv.Load(".env")
		_ = godotenv.Load(".env.secret")
		return nil
	}

	// An explicitly named file has to exist.
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("load env file %s: %w", envFile, err)
	}

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

// ProfilesPath returns the path of the database profile file.
// Empty means the default search for database.yaml in . and ./config.
func ProfilesPath() string {
	return os.Getenv("CASEBOOK_DB_CONFIG")
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}
