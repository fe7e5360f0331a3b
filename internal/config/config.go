// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tracking holds the socket paths and reporting policy for the pipeline.
type Tracking struct {
	SenderSocket          string `yaml:"sender_socket"`
	ReceiverSocket        string `yaml:"receiver_socket"`
	UpdateIntervalSeconds uint64 `yaml:"update_interval_seconds"`
	QueueCapacity         int    `yaml:"queue_capacity"`
}

// UpdateInterval returns the minimum delay between non-error reports.
func (t Tracking) UpdateInterval() time.Duration {
	return time.Duration(t.UpdateIntervalSeconds) * time.Second
}

// Reporter defines a group of synthetic reporters for the load generator.
type Reporter struct {
	Name      string  `yaml:"name"`
	Count     int     `yaml:"count"`
	ErrorRate float64 `yaml:"error_rate"`
	IdleRate  float64 `yaml:"idle_rate"`
}

// Config is the root configuration.
type Config struct {
	Tracking  Tracking   `yaml:"tracking"`
	Reporters []Reporter `yaml:"reporters"`
}

// Load reads a YAML config, validates it against a CUE schema, and applies
// defaults for optional fields.
func Load(configPath, cueSchemaPath string) (*Config, error) {
	if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Tracking.UpdateIntervalSeconds == 0 {
		c.Tracking.UpdateIntervalSeconds = 5
	}
	if c.Tracking.QueueCapacity == 0 {
		c.Tracking.QueueCapacity = 1024
	}
	for i := range c.Reporters {
		if c.Reporters[i].Count == 0 {
			c.Reporters[i].Count = 1
		}
	}
}

func (c *Config) check() error {
	if c.Tracking.SenderSocket == "" {
		return fmt.Errorf("tracking.sender_socket is required")
	}
	if c.Tracking.ReceiverSocket == "" {
		return fmt.Errorf("tracking.receiver_socket is required")
	}
	if c.Tracking.SenderSocket == c.Tracking.ReceiverSocket {
		return fmt.Errorf("tracking sockets must be distinct paths")
	}
	if c.Tracking.QueueCapacity < 1 {
		return fmt.Errorf("tracking.queue_capacity must be positive")
	}
	return nil
}
