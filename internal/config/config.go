package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// TemplateRecurrence restricts a shift template to the dates an RRULE yields
// during schedule generation.
type TemplateRecurrence struct {
	TemplateID string `yaml:"templateID" validate:"required"`
	RRule      string `yaml:"rrule" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL            string               `yaml:"databaseURL" validate:"required"`
	DefaultLocation        string               `yaml:"defaultLocation" validate:"required"`
	TemplateRecurrences    []TemplateRecurrence `yaml:"templateRecurrences,omitempty" validate:"dive"`
	GmailUserID            string               `yaml:"gmailUserID,omitempty"`
	GmailSender            string               `yaml:"gmailSender,omitempty"`
	AnnouncementRecipients []string             `yaml:"announcementRecipients,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from treelot_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, recurrence := range cfg.TemplateRecurrences {
		if _, err := rrule.StrToRRule(recurrence.RRule); err != nil {
			return fmt.Errorf("invalid rrule in templateRecurrences[%d]: %w", i, err)
		}
	}

	return nil
}

// Recurrences returns the configured template recurrence rules keyed by
// template id, in the shape the schedule generator takes.
func (c *Config) Recurrences() map[string]string {
	if len(c.TemplateRecurrences) == 0 {
		return nil
	}
	rules := make(map[string]string, len(c.TemplateRecurrences))
	for _, r := range c.TemplateRecurrences {
		rules[r.TemplateID] = r.RRule
	}
	return rules
}

// findConfigFile searches for treelot_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "treelot_config.yaml"

	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
