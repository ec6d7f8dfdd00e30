package main

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Config is the daemon's YAML configuration file.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	HTTP     HTTPConfig     `yaml:"http"`
	Log      LogConfig      `yaml:"log"`

	// Snapshots enables snapshot upload when present.
	Snapshots *SnapshotsConfig `yaml:"snapshots"`

	Graph GraphConfig `yaml:"graph"`
}

type DatabaseConfig struct {
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	User             string `yaml:"user"`
	Password         string `yaml:"password"`
	Database         string `yaml:"database"`
	SSLMode          string `yaml:"sslmode"`
	ConnectionString string `yaml:"connectionString"`
}

type HTTPConfig struct {
	Listen string `yaml:"listen"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type SnapshotsConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	UseSSL    bool   `yaml:"useSSL"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
}

type GraphConfig struct {
	Name                 string   `yaml:"name"`
	IncludeSchemas       []string `yaml:"includeSchemas"`
	ExcludeSchemas       []string `yaml:"excludeSchemas"`
	IncludeSystemSchemas bool     `yaml:"includeSystemSchemas"`
	RelationNaming       string   `yaml:"relationNaming"`
}

// LoadConfig reads the YAML config at path and fills the defaults for the
// listen address and log level. No other field is checked.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.HTTP.Listen == "" {
		cfg.HTTP.Listen = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	return cfg, nil
}
