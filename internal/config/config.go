package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	LLM    LLMConfig    `yaml:"llm"`
	Agent  AgentConfig  `yaml:"agent"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	// Mode selects the serving surface: "http" for the REST API,
	// "stdio" for the MCP stdio transport.
	Mode string `yaml:"mode"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type LLMConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type AgentConfig struct {
	MaxIterations int `yaml:"max_iterations"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
			Mode: "http",
		},
		DB: DBConfig{
			Path: "taskmind.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		LLM: LLMConfig{
			Model:   "openai/gpt-4o-mini",
			BaseURL: "https://openrouter.ai/api/v1",
		},
		Agent: AgentConfig{
			MaxIterations: 10,
		},
	}

	if path := os.Getenv("TASKMIND_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("TASKMIND_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("TASKMIND_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TASKMIND_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if mode := os.Getenv("TASKMIND_SERVER_MODE"); mode != "" {
		cfg.Server.Mode = mode
	}
	if dbPath := os.Getenv("TASKMIND_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("TASKMIND_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if key := os.Getenv("TASKMIND_LLM_API_KEY"); key != "" {
		cfg.LLM.APIKey = key
	}
	if model := os.Getenv("TASKMIND_LLM_MODEL"); model != "" {
		cfg.LLM.Model = model
	}
	if baseURL := os.Getenv("TASKMIND_LLM_BASE_URL"); baseURL != "" {
		cfg.LLM.BaseURL = baseURL
	}
	if iterStr := os.Getenv("TASKMIND_AGENT_MAX_ITERATIONS"); iterStr != "" {
		iterations, err := strconv.Atoi(iterStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TASKMIND_AGENT_MAX_ITERATIONS: %w", err)
		}
		cfg.Agent.MaxIterations = iterations
	}

	if cfg.Server.Mode != "http" && cfg.Server.Mode != "stdio" {
		return Config{}, fmt.Errorf("invalid server mode %q: use http or stdio", cfg.Server.Mode)
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
