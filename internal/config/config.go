package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-wide configuration settings.
type ServerConfig struct {
	Game        GameConfig        `yaml:"game"`
	Database    DatabaseConfig    `yaml:"database"`
	WebSocket   WebSocketConfig   `yaml:"websocket"`
	Connections ConnectionsConfig `yaml:"connections"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	// StartingRoom is the room new accounts are placed in.
	StartingRoom string `yaml:"starting_room"`

	// Prompt is written after every processed input.
	Prompt string `yaml:"prompt"`
}

// DatabaseConfig selects and configures the backing store.
type DatabaseConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`

	// SQLitePath is the database file path when Driver is "sqlite".
	SQLitePath string `yaml:"sqlite_path"`

	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// RateLimitConfig holds rate limiting settings for login attempts.
type RateLimitConfig struct {
	// MaxAttempts is the maximum login attempts before lockout.
	MaxAttempts int `yaml:"max_attempts"`

	// LockoutSeconds is the initial lockout duration in seconds.
	LockoutSeconds int `yaml:"lockout_seconds"`

	// MaxLockoutSeconds is the maximum lockout duration (for exponential backoff).
	MaxLockoutSeconds int `yaml:"max_lockout_seconds"`
}

// ConnectionsConfig holds connection limit settings.
type ConnectionsConfig struct {
	// MaxPerIP is the maximum concurrent connections allowed from a single IP
	// address. 0 means unlimited.
	MaxPerIP int `yaml:"max_per_ip"`

	// MaxTotal is the maximum total concurrent connections to the server.
	// 0 means unlimited.
	MaxTotal int `yaml:"max_total"`
}

// WebSocketConfig holds WebSocket-specific settings.
type WebSocketConfig struct {
	// AllowedOrigins is a list of origins allowed to connect via WebSocket.
	// Empty list enforces same-origin policy.
	// Use "*" to allow all origins (not recommended for production).
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the maximum WebSocket message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`
}

// DefaultConfig returns a ServerConfig with working defaults.
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Game: GameConfig{
			StartingRoom: "alamo_plaza",
			Prompt:       "> ",
		},
		Database: DatabaseConfig{
			Driver:     "sqlite",
			SQLitePath: "data/samud.db",
			Postgres: PostgresConfig{
				Host:    "localhost",
				Port:    5432,
				SSLMode: "disable",
			},
		},
		WebSocket: WebSocketConfig{
			AllowedOrigins: []string{},
			MaxMessageSize: 4096,
		},
		Connections: ConnectionsConfig{
			MaxPerIP: 3,
			MaxTotal: 100,
		},
		RateLimit: RateLimitConfig{
			MaxAttempts:       5,
			LockoutSeconds:    30,
			MaxLockoutSeconds: 300,
		},
	}
}

// LoadConfig loads server configuration from a YAML file.
// If the file doesn't exist, returns default config.
func LoadConfig(path string) (*ServerConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	if config.Game.StartingRoom == "" {
		config.Game.StartingRoom = "alamo_plaza"
	}
	if config.Game.Prompt == "" {
		config.Game.Prompt = "> "
	}
	if config.Database.Driver == "" {
		config.Database.Driver = "sqlite"
	}

	return config, nil
}

// IsOriginAllowed checks if the given origin is allowed based on the config.
// Returns true if:
// - AllowedOrigins contains "*" (allow all)
// - AllowedOrigins contains the exact origin
// - AllowedOrigins is empty and origin matches the request host (same-origin)
func (c *WebSocketConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}

	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" {
			return true
		}
		if allowed == origin {
			return true
		}
	}

	return false
}

// isSameOrigin checks if the origin matches the request host.
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // No origin header means a non-browser client
	}

	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	originHost = strings.TrimSuffix(originHost, "/")

	return originHost == requestHost
}
