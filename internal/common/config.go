package common

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the server application configuration. Atlassian
// connection settings are resolved separately from environment variables
// (see atlassian_env.go); this file only covers the MCP server surface.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
}

type ServerConfig struct {
	Name    string `toml:"name" validate:"required"`
	Version string `toml:"version"`
}

type LoggingConfig struct {
	Level string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns the baseline configuration. The warn default keeps
// stdout quiet: MCP stdio transport shares the stream with protocol frames.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name:    "pons",
			Version: GetVersion(),
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// LoadConfig builds the configuration: defaults, then an optional TOML file,
// then environment overrides, then validation.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
			}
		} else if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	applyEnvOverrides(config)

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func applyEnvOverrides(config *Config) {
	if name := os.Getenv("MCP_SERVER_NAME"); name != "" {
		config.Server.Name = name
	}
	if version := os.Getenv("MCP_SERVER_VERSION"); version != "" {
		config.Server.Version = version
	}
	if level := os.Getenv("PONS_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}
