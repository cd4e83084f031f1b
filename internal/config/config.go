package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// ExecutionMode distinguishes a deployed instance from a local editing
// session. Image override writes are disabled in public mode.
type ExecutionMode string

const (
	ModePublic ExecutionMode = "public"
	ModeLocal  ExecutionMode = "local"
)

// MinRefreshInterval is the floor for the remote mapping refresh timer.
const MinRefreshInterval = time.Minute

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Execution mode (public deployment vs local editing session)
	Mode ExecutionMode

	// Remote mapping configuration
	Remote RemoteConfig

	// Override store configuration
	Store StoreConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// AdminKey gates mutating endpoints via a ?key= query parameter.
	// Empty disables the gate (local development).
	AdminKey string

	// BaseURL makes article links in rendered digests absolute.
	BaseURL string
}

// RemoteConfig holds remote image-mapping settings
type RemoteConfig struct {
	// MappingURL is the static CSV/JSON file holding topic/article image
	// mappings. Empty disables remote fetching entirely.
	MappingURL      string
	RefreshInterval time.Duration
	FetchTimeout    time.Duration

	// Optional write-back endpoint for publishing edited mappings.
	WriteBackURL     string
	WriteBackMethod  string
	WriteBackHeaders map[string]string
}

// StoreConfig holds override persistence settings
type StoreConfig struct {
	Backend  string // "memory" or "file"
	FilePath string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			AdminKey:        getEnv("ADMIN_KEY", ""),
			BaseURL:         getEnv("SITE_BASE_URL", ""),
		},
		Mode: ExecutionMode(getEnv("EXECUTION_MODE", string(ModePublic))),
		Remote: RemoteConfig{
			MappingURL:       getEnv("REMOTE_MAPPING_URL", ""),
			RefreshInterval:  getDurationEnv("REMOTE_REFRESH_INTERVAL", 5*time.Minute),
			FetchTimeout:     getDurationEnv("REMOTE_FETCH_TIMEOUT", 10*time.Second),
			WriteBackURL:     getEnv("REMOTE_WRITEBACK_URL", ""),
			WriteBackMethod:  getEnv("REMOTE_WRITEBACK_METHOD", "POST"),
			WriteBackHeaders: parseHeaders(getEnv("REMOTE_WRITEBACK_HEADERS", "")),
		},
		Store: StoreConfig{
			Backend:  getEnv("STORE_BACKEND", "memory"),
			FilePath: getEnv("STORE_FILE_PATH", "./data/overrides.json"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// The remote refresher never polls faster than once a minute.
	if cfg.Remote.RefreshInterval < MinRefreshInterval {
		cfg.Remote.RefreshInterval = MinRefreshInterval
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Mode != ModePublic && c.Mode != ModeLocal {
		return fmt.Errorf("EXECUTION_MODE must be %q or %q, got %q", ModePublic, ModeLocal, c.Mode)
	}
	if c.Store.Backend != "memory" && c.Store.Backend != "file" {
		return fmt.Errorf("STORE_BACKEND must be \"memory\" or \"file\", got %q", c.Store.Backend)
	}
	if c.Store.Backend == "file" && c.Store.FilePath == "" {
		return fmt.Errorf("STORE_FILE_PATH is required when STORE_BACKEND=file")
	}
	return nil
}

// parseHeaders turns "Key=Value,Key2=Value2" into a header map.
func parseHeaders(raw string) map[string]string {
	headers := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return headers
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
