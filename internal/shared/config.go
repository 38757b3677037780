package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Source   SourceConfig   `toml:"source"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Log      LogConfig      `toml:"log"`
}

// SourceConfig describes where the member roster is fetched from.
type SourceConfig struct {
	URL         string        `toml:"url"`
	File        string        `toml:"file"`
	Timeout     time.Duration `toml:"timeout"`
	MinInterval time.Duration `toml:"min_interval"` // Minimum spacing between fetches (manual reloads)
	Cache       bool          `toml:"cache"`        // Store successful payloads in the database
	Offline     bool          `toml:"offline"`      // Serve the cached payload instead of fetching
	OAuth       OAuthConfig   `toml:"oauth"`
}

// OAuthConfig contains optional client-credentials settings for a protected source.
type OAuthConfig struct {
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
	TokenURL     string   `toml:"token_url"`
	Scopes       []string `toml:"scopes"`
}

// Enabled reports whether the source should be fetched with an OAuth2 client.
func (o OAuthConfig) Enabled() bool {
	return o.TokenURL != "" && o.ClientID != ""
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains fixture server settings.
type ServerConfig struct {
	Host      string  `toml:"host"`
	Port      int     `toml:"port"`
	RateLimit float64 `toml:"rate_limit"` // Requests per second per client; 0 disables limiting
	Burst     int     `toml:"burst"`
}

// Addr returns host:port for [net/http.Server].
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // TUI log destination
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate checks that the config can produce a member source.
func (c *Config) Validate() error {
	if c.Source.URL == "" && c.Source.File == "" {
		return fmt.Errorf("%w: source.url or source.file is required", ErrInvalidConfig)
	}
	if c.Source.Timeout < 0 || c.Source.MinInterval < 0 {
		return fmt.Errorf("%w: source durations must not be negative", ErrInvalidConfig)
	}
	if c.Server.RateLimit < 0 || c.Server.Burst < 0 {
		return fmt.Errorf("%w: server rate_limit and burst must not be negative", ErrInvalidConfig)
	}
	if c.Source.Offline && !c.Source.Cache {
		return fmt.Errorf("%w: source.offline requires source.cache", ErrInvalidConfig)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
