package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alem-hub/student-roster/pkg/logger"
	"github.com/alem-hub/student-roster/pkg/timeutil"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// DefaultDataFile is the roster file used when ROSTER_DATA_FILE is not set.
const DefaultDataFile = "students_data.json"

// DefaultEnvFile is read on startup if present.
const DefaultEnvFile = ".env"

// Config holds all application configuration.
type Config struct {
	// Application
	App AppConfig

	// Roster file
	Storage StorageConfig

	// Logging
	Observability ObservabilityConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string
	Environment Environment
	Version     string

	// Timezone used to decide the current academic year (default: Asia/Almaty)
	Timezone string
	Location *time.Location
}

// StorageConfig holds roster persistence settings.
type StorageConfig struct {
	// Path to the JSON roster file, relative to the working directory
	// unless absolute.
	DataFile string

	// Attempts to rewrite the file on transient I/O errors
	SaveAttempts int
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel string // debug, info, warn, error

	// LogFile is where log lines go; empty means stderr.
	// Logs never go to stdout, which belongs to the dialogue.
	LogFile string

	// LogCaller adds file:line to every entry
	LogCaller bool
}

// Load loads configuration from environment variables and the optional
// .env file in the working directory.
func Load() (*Config, error) {
	return LoadFrom(DefaultEnvFile)
}

// LoadFrom loads configuration from environment variables after applying
// the given env files. Missing files are skipped. Variables already set in
// the process environment take precedence over file values.
func LoadFrom(envFiles ...string) (*Config, error) {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := &Config{
		App:           loadAppConfig(),
		Storage:       loadStorageConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func loadAppConfig() AppConfig {
	timezone := getEnv("APP_TIMEZONE", timeutil.DefaultTimezone)

	return AppConfig{
		Name:        getEnv("APP_NAME", "student-roster"),
		Environment: Environment(getEnv("APP_ENV", string(EnvDevelopment))),
		Version:     getEnv("APP_VERSION", "0.1.0"),
		Timezone:    timezone,
		Location:    timeutil.LoadLocation(timezone),
	}
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		DataFile:     strings.TrimSpace(getEnv("ROSTER_DATA_FILE", DefaultDataFile)),
		SaveAttempts: getEnvInt("ROSTER_SAVE_ATTEMPTS", 3),
	}
}

func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:  getEnv("LOG_LEVEL", "warn"),
		LogFile:   getEnv("LOG_FILE", ""),
		LogCaller: getEnvBool("LOG_CALLER", true),
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	switch c.App.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		errs = append(errs, fmt.Sprintf("APP_ENV must be %q or %q", EnvDevelopment, EnvProduction))
	}

	if c.Storage.DataFile == "" {
		errs = append(errs, "ROSTER_DATA_FILE must not be empty")
	}

	if c.Storage.SaveAttempts < 1 || c.Storage.SaveAttempts > 10 {
		errs = append(errs, "ROSTER_SAVE_ATTEMPTS must be 1-10")
	}

	if _, ok := logger.ParseLevel(c.Observability.LogLevel); !ok {
		errs = append(errs, "LOG_LEVEL must be one of debug, info, warn, error")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// LogLevel returns the parsed log level.
func (c *Config) LogLevel() logger.Level {
	level, _ := logger.ParseLevel(c.Observability.LogLevel)
	return level
}

// --- Helper functions for environment variable parsing ---

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
