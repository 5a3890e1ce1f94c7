package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Cleaning CleaningConfig `yaml:"cleaning" envconfig:"CLEANING"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" default:"33554432"`
	RateLimitRPS    float64       `yaml:"rate_limit_rps" envconfig:"RATE_LIMIT_RPS" default:"20"`
	RateLimitBurst  int           `yaml:"rate_limit_burst" envconfig:"RATE_LIMIT_BURST" default:"10"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// CleaningConfig carries the per-run cleaning defaults used when a
// request or command line does not override them.
type CleaningConfig struct {
	Strategy         string  `yaml:"strategy" envconfig:"STRATEGY" default:"mean"`
	OutlierThreshold float64 `yaml:"outlier_threshold" envconfig:"OUTLIER_THRESHOLD" default:"3.0"`
	CategoricalRatio float64 `yaml:"categorical_ratio" envconfig:"CATEGORICAL_RATIO" default:"0.5"`
}

// Load loads configuration from environment variables (prefix CLEAN)
// layered over an optional YAML config file; environment wins.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("CLEAN", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.Paths.resolve(); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	return &cfg, nil
}

// configFilePath returns the config file location, overridable via
// CLEAN_CONFIG_FILE.
func configFilePath() string {
	if p := os.Getenv("CLEAN_CONFIG_FILE"); p != "" {
		return p
	}
	return "config.yaml"
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs merges file config under env config (env takes precedence
// for any field envconfig actually set; the default tag means unset env
// fields already carry defaults, so file values only fill zero fields).
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Server.Port == 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.FilePath == "" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if envConfig.Paths.DataDir == "" {
		envConfig.Paths.DataDir = fileConfig.Paths.DataDir
	}
	if envConfig.Cleaning.Strategy == "" {
		envConfig.Cleaning.Strategy = fileConfig.Cleaning.Strategy
	}
	if envConfig.Cleaning.OutlierThreshold == 0 {
		envConfig.Cleaning.OutlierThreshold = fileConfig.Cleaning.OutlierThreshold
	}
	if envConfig.Cleaning.CategoricalRatio == 0 {
		envConfig.Cleaning.CategoricalRatio = fileConfig.Cleaning.CategoricalRatio
	}
	return envConfig
}
