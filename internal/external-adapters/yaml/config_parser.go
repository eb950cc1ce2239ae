// Package yaml provides YAML-based configuration parsing.
package yaml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ochairo/rsasxlsx/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlConfig represents the raw YAML structure
type yamlConfig struct {
	Output  yamlOutput  `yaml:"output"`
	Logging yamlLogging `yaml:"logging"`
	Verify  yamlVerify  `yaml:"verify"`
	Metrics yamlMetrics `yaml:"metrics"`
	Publish yamlPublish `yaml:"publish"`
}

type yamlOutput struct {
	Dir string `yaml:"dir"`
}

type yamlLogging struct {
	File         string `yaml:"file"`
	ConsoleLevel string `yaml:"console_level"`
	FileLevel    string `yaml:"file_level"`
}

type yamlVerify struct {
	Enabled   bool   `yaml:"enabled"`
	Keyring   string `yaml:"keyring"`
	Signature string `yaml:"signature"`
}

type yamlMetrics struct {
	Textfile string `yaml:"textfile"`
}

type yamlPublish struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
	Prefix    string `yaml:"prefix"`
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// ConfigParser parses YAML configuration files
type ConfigParser struct{}

// NewConfigParser creates a new YAML config parser
func NewConfigParser() *ConfigParser {
	return &ConfigParser{}
}

// LoadFile reads the configuration at filePath. A missing file yields the defaults.
func (p *ConfigParser) LoadFile(filePath string) (entities.Config, error) {
	//nolint:gosec // G304: filePath is the operator-supplied config location
	data, err := os.ReadFile(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return entities.DefaultConfig(), nil
	}
	if err != nil {
		return entities.Config{}, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes on top of the default configuration
func (p *ConfigParser) Parse(data []byte) (entities.Config, error) {
	var raw yamlConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return entities.Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg := entities.DefaultConfig()
	if raw.Output.Dir != "" {
		cfg.OutputDir = raw.Output.Dir
	}
	if raw.Logging.File != "" {
		cfg.Logging.File = raw.Logging.File
	}
	if raw.Logging.ConsoleLevel != "" {
		cfg.Logging.ConsoleLevel = strings.ToLower(raw.Logging.ConsoleLevel)
	}
	if raw.Logging.FileLevel != "" {
		cfg.Logging.FileLevel = strings.ToLower(raw.Logging.FileLevel)
	}
	cfg.Verify = entities.VerifyConfig(raw.Verify)
	cfg.Metrics = entities.MetricsConfig(raw.Metrics)
	cfg.Publish = entities.PublishConfig(raw.Publish)

	if err := validate(cfg); err != nil {
		return entities.Config{}, err
	}
	return cfg, nil
}

func validate(cfg entities.Config) error {
	if !validLevels[cfg.Logging.ConsoleLevel] {
		return fmt.Errorf("invalid logging.console_level %q", cfg.Logging.ConsoleLevel)
	}
	if !validLevels[cfg.Logging.FileLevel] {
		return fmt.Errorf("invalid logging.file_level %q", cfg.Logging.FileLevel)
	}
	if cfg.Verify.Enabled && cfg.Verify.Keyring == "" {
		return fmt.Errorf("verify.keyring is required when verification is enabled")
	}
	if cfg.Publish.Enabled && (cfg.Publish.Endpoint == "" || cfg.Publish.Bucket == "") {
		return fmt.Errorf("publish.endpoint and publish.bucket are required when publishing is enabled")
	}
	return nil
}
