// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server and the CLI.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// LogFile, when set, sends logs to a rotating file instead of stderr.
	LogFile string
	// LogMaxSizeMB, LogMaxBackups and LogMaxAgeDays tune rotation of LogFile.
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int

	// DataDir holds the data files. Defaults to the working directory.
	DataDir string
	// TripsFile and PackingFile name the data files. Relative names resolve
	// against DataDir.
	TripsFile   string
	PackingFile string

	// CollisionPolicy is what trip creation does on a name clash:
	// reject, overwrite or rename. Defaults to "reject".
	CollisionPolicy string

	// SaveRetries is how many times a failed data file write is retried.
	SaveRetries uint64

	// MaxBodyBytes caps HTTP request bodies.
	MaxBodyBytes int64

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string
}

// Load reads an optional .env file from the working directory, then reads
// configuration from environment variables and returns a Config. Variables
// already set in the environment win over .env entries.
// Returns an error naming every variable with an invalid value.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	var invalid []string
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFile:         os.Getenv("LOG_FILE"),
		LogMaxSizeMB:    getEnvInt("LOG_MAX_SIZE_MB", 10, &invalid),
		LogMaxBackups:   getEnvInt("LOG_MAX_BACKUPS", 3, &invalid),
		LogMaxAgeDays:   getEnvInt("LOG_MAX_AGE_DAYS", 28, &invalid),
		DataDir:         getEnv("DATA_DIR", "."),
		TripsFile:       getEnv("TRIPS_FILE", "travel_data.txt"),
		PackingFile:     getEnv("PACKING_FILE", "packing_data.txt"),
		CollisionPolicy: strings.ToLower(getEnv("TRIP_COLLISION_POLICY", "reject")),
		SaveRetries:     uint64(getEnvInt("SAVE_RETRIES", 3, &invalid)),
		MaxBodyBytes:    int64(getEnvInt("MAX_BODY_BYTES", 1<<20, &invalid)),
		CORSOrigins:     splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		invalid = append(invalid, "LOG_LEVEL")
	}
	switch cfg.CollisionPolicy {
	case "reject", "overwrite", "rename":
	default:
		invalid = append(invalid, "TRIP_COLLISION_POLICY")
	}
	if cfg.MaxBodyBytes <= 0 && !slices.Contains(invalid, "MAX_BODY_BYTES") {
		invalid = append(invalid, "MAX_BODY_BYTES")
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}
	return cfg, nil
}

// Level returns the parsed LogLevel, or info if it does not parse.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// TripsPath is the trips data file location.
func (c Config) TripsPath() string { return c.resolve(c.TripsFile) }

// PackingPath is the packing data file location.
func (c Config) PackingPath() string { return c.resolve(c.PackingFile) }

func (c Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt is getEnv for non-negative integers. Unparseable or negative
// values are recorded in invalid and yield fallback.
func getEnvInt(key string, fallback int, invalid *[]string) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		*invalid = append(*invalid, key)
		return fallback
	}
	return n
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

