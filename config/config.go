package config

import (
	"fmt"

	"github.com/juniorwebdev83/auto-qa/elevateai"
	"github.com/juniorwebdev83/auto-qa/lifecycle"
	"github.com/juniorwebdev83/auto-qa/observability"
	"github.com/juniorwebdev83/auto-qa/server"
	"github.com/juniorwebdev83/auto-qa/validation"
)

// ServiceName is the canonical name used for config discovery, logging and
// telemetry.
const ServiceName = "auto-qa"

// Config is the full service configuration.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	ElevateAI     elevateai.Config     `yaml:"elevateai" mapstructure:"elevateai"`
	Lifecycle     lifecycle.Config     `yaml:"lifecycle" mapstructure:"lifecycle"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// Load reads the service configuration from config.yml, .env and the
// environment, applies defaults and validates the result.
func Load(opts ...LoaderOption) (*Config, error) {
	cfg := &Config{
		Lifecycle: lifecycle.DefaultConfig(),
	}
	cfg.Name = ServiceName

	if err := LoadConfig(cfg, opts...); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills in zero-value fields across all subsystems.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.ElevateAI.ApplyDefaults()
	c.Lifecycle.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks the whole configuration, struct tags included.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.ElevateAI.Validate(); err != nil {
		return err
	}
	if err := c.Lifecycle.Validate(); err != nil {
		return err
	}
	return c.Observability.Validate()
}
