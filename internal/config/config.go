package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. PREFIX_TREE_LOG_LEVEL.
const EnvPrefix = "PREFIX_TREE"

// DefaultSeedWords are the words both binaries start from.
var DefaultSeedWords = []string{"apple", "ap", "avocado", "banana"}

// Config holds all configuration for the application
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
	Seed   SeedConfig   `mapstructure:"seed"`
}

// LogConfig holds logging related configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds server related configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// SeedConfig lists the words loaded into the trie at startup
type SeedConfig struct {
	Words []string `mapstructure:"words"`
}

// Log output formats
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Load loads configuration from an optional file and environment variables.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	v, err := newViper(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadLog reads only the log section from environment variables. Settings
// outside that section are never decoded, so a malformed server or seed
// override cannot affect it.
func LoadLog() LogConfig {
	v, _ := newViper("")
	return LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
}

// DefaultLogConfig returns the logging settings used when none are given
func DefaultLogConfig() LogConfig {
	return LogConfig{Level: "warn", Format: FormatConsole}
}

func newViper(path string) (*viper.Viper, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	defaults := DefaultLogConfig()
	v.SetDefault("log.level", defaults.Level)
	v.SetDefault("log.format", defaults.Format)

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("seed.words", DefaultSeedWords)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	switch c.Log.Format {
	case FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("invalid log format: %q", c.Log.Format)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 {
		return fmt.Errorf("invalid server read timeout: %s", c.Server.ReadTimeout)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("invalid server shutdown timeout: %s", c.Server.ShutdownTimeout)
	}

	return nil
}

// Addr returns the host:port the server listens on
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
