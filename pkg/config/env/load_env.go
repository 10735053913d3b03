package env

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultPath = ".env"
	pathVar     = "ENV_PATH"
	levelVar    = "LOG_LEVEL"
)

// LoadDotEnv loads variables from the file named by ENV_PATH, or from
// defaultPath. Variables already set in the process win. A missing file is
// only an error when ENV_PATH names it explicitly.
func LoadDotEnv(defaultPath string) error {
	envPath, explicit := os.LookupEnv(pathVar)
	if !explicit || envPath == "" {
		envPath, explicit = defaultPath, false
	}

	err := godotenv.Load(envPath)
	switch {
	case err == nil:
		slog.Debug("Loaded environment file", "path", envPath)
		return nil
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		slog.Debug("Skipping .env, file not found", "path", envPath)
		return nil
	default:
		return fmt.Errorf("load env file %s: %w", envPath, err)
	}
}

// LogLevel parses LOG_LEVEL, defaulting to info.
func LogLevel() (slog.Level, error) {
	raw := strings.TrimSpace(os.Getenv(levelVar))
	if raw == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid %s %q: %w", levelVar, raw, err)
	}
	return level, nil
}
