package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the user's gitcmd settings.
type Config struct {
	// Binary overrides the git executable name or path.
	Binary string
	// Timeout bounds every invocation. Zero means no default deadline.
	Timeout time.Duration
	// SSHCommand sets GIT_SSH_COMMAND for every invocation.
	SSHCommand string
}

// UnmarshalYAML decodes the config, accepting timeouts in duration syntax
// ("30s", "2m").
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Binary     string `yaml:"binary"`
		Timeout    string `yaml:"timeout"`
		SSHCommand string `yaml:"ssh_command"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	c.Binary = raw.Binary
	c.SSHCommand = raw.SSHCommand
	if raw.Timeout != "" {
		timeout, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", raw.Timeout, err)
		}
		c.Timeout = timeout
	}
	return nil
}

// Load reads config.yaml from the configuration directory. A missing file
// yields the zero Config, not an error.
func Load() (*Config, error) {
	return LoadFrom(filepath.Join(Dir(), "config.yaml"))
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Timeout < 0 {
		return nil, fmt.Errorf("parsing config %s: timeout must not be negative", path)
	}
	return &cfg, nil
}
