// Package config contains everything related to configuration
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	TelegramToken string
	PollTimeout   time.Duration
	DatabasePath  string
	RequestsTable string
	Report        ReportSettings
	LogLevel      string
	LogFormat     string
	MetricsAddr   string
	ConfigPath    string
}

// ReportSettings are the parts of the configuration that may change while the
// bot runs. They are re-resolved whenever the config file changes.
type ReportSettings struct {
	// Services is the fixed label order of the report.
	Services []string
	// Strict fails the report when a service has no records instead of
	// printing zero.
	Strict bool
	// AllowedChats limits who may request a report. Empty allows everyone.
	AllowedChats []int64
}

// Default values
const (
	defaultPollTimeout   = 60 * time.Second
	defaultDatabasePath  = "database.db"
	defaultRequestsTable = "requests"
	defaultLogLevel      = "info"
	defaultLogFormat     = "text"
)

// DefaultServices is the label order used when none is configured.
var DefaultServices = []string{"doggobot", "sentweetbot", "automatebot", "hangeulbot"}

// ErrMissingToken is returned by RequireToken when no bot token is set.
var ErrMissingToken = errors.New("TELEGRAM_TOKEN is required")

// Load reads configuration from .env files, environment variables and the
// optional TOML file. Environment variables override file values.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	configPath := getEnvString("CONFIG_PATH", getDefaultConfigPath())
	file, err := LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	report, err := ResolveReport(file)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		PollTimeout:   getEnvDuration("TELEGRAM_POLL_TIMEOUT", defaultPollTimeout),
		DatabasePath:  getEnvString("DATABASE_PATH", firstNonEmpty(file.DatabasePath, defaultDatabasePath)),
		RequestsTable: getEnvString("REQUESTS_TABLE", firstNonEmpty(file.RequestsTable, defaultRequestsTable)),
		Report:        report,
		LogLevel:      getEnvString("LOG_LEVEL", firstNonEmpty(file.LogLevel, defaultLogLevel)),
		LogFormat:     getEnvString("LOG_FORMAT", firstNonEmpty(file.LogFormat, defaultLogFormat)),
		MetricsAddr:   getEnvString("METRICS_ADDR", file.MetricsAddr),
		ConfigPath:    configPath,
	}

	return cfg, nil
}

// ResolveReport merges report settings from the environment, the file and
// the defaults, in that order of priority.
func ResolveReport(file *FileConfig) (ReportSettings, error) {
	if file == nil {
		file = &FileConfig{}
	}

	settings := ReportSettings{
		Services:     getEnvList("REPORT_SERVICES", file.Report.Services),
		Strict:       getEnvBool("REPORT_STRICT", file.Report.Strict, false),
		AllowedChats: file.Report.AllowedChats,
	}
	if len(settings.Services) == 0 {
		settings.Services = append([]string(nil), DefaultServices...)
	}

	if raw := os.Getenv("ALLOWED_CHATS"); raw != "" {
		chats, err := parseChatIDs(raw)
		if err != nil {
			return ReportSettings{}, fmt.Errorf("invalid ALLOWED_CHATS: %w", err)
		}
		settings.AllowedChats = chats
	}

	return settings, nil
}

// RequireToken checks that the bot token is configured.
func (c *Config) RequireToken() error {
	if strings.TrimSpace(c.TelegramToken) == "" {
		return ErrMissingToken
	}
	return nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory location
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "reportbot", ".env"))
	}

	// Parent directory (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(cwd), ".env"))
	}

	return paths
}

// getDefaultConfigPath returns the default path for the TOML config file.
func getDefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "reportbot", "config.toml")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// getEnvBool returns the env bool, the file bool, or the default.
func getEnvBool(key string, fileValue *bool, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes":
			return true
		default:
			return false
		}
	}
	if fileValue != nil {
		return *fileValue
	}
	return defaultValue
}

// getEnvList splits a comma separated environment variable, falling back to
// fileValue when unset.
func getEnvList(key string, fileValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fileValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseChatIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("chat id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
