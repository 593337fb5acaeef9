package lifecycle

import (
	"fmt"
	"time"
)

// Config controls how a run polls and what it requests from the service.
type Config struct {
	// PollInterval is the fixed delay between status checks.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
	// WaitBudget bounds the time spent waiting on remote processing,
	// measured from the first status poll. Declare and upload time does
	// not count against it.
	WaitBudget time.Duration `yaml:"wait_budget" mapstructure:"wait_budget"`
	// LanguageTag is the declared audio language.
	LanguageTag string `yaml:"language_tag" mapstructure:"language_tag"`
	// Vertical selects the remote domain model.
	Vertical string `yaml:"vertical" mapstructure:"vertical"`
	// TranscriptionMode selects the transcription engine mode.
	TranscriptionMode string `yaml:"transcription_mode" mapstructure:"transcription_mode"`
	// Punctuated selects the punctuated transcript variant.
	Punctuated bool `yaml:"punctuated" mapstructure:"punctuated"`
	// IncludeAIResults requests sentiment and summary alongside the
	// transcript. Fetching them is best effort and never fails the run.
	IncludeAIResults bool `yaml:"include_ai_results" mapstructure:"include_ai_results"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		PollInterval:      10 * time.Second,
		WaitBudget:        5 * time.Minute,
		LanguageTag:       "en-us",
		Vertical:          "default",
		TranscriptionMode: "highAccuracy",
		Punctuated:        true,
		IncludeAIResults:  true,
	}
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = 10 * time.Second
	}
	if c.WaitBudget <= 0 {
		c.WaitBudget = 5 * time.Minute
	}
	if c.LanguageTag == "" {
		c.LanguageTag = "en-us"
	}
	if c.Vertical == "" {
		c.Vertical = "default"
	}
	if c.TranscriptionMode == "" {
		c.TranscriptionMode = "highAccuracy"
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.PollInterval <= 0 {
		return fmt.Errorf("lifecycle.poll_interval must be positive (got: %s)", c.PollInterval)
	}
	if c.WaitBudget < c.PollInterval {
		return fmt.Errorf("lifecycle.wait_budget must be at least one poll interval (got: %s)", c.WaitBudget)
	}
	return nil
}
