package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		DatabaseURL:     "postgres://localhost:5432/treelot",
		DefaultLocation: "Christmas Tree Lot",
		GmailUserID:     "user@example.com",
		GmailSender:     "troop@example.com",
		TemplateRecurrences: []TemplateRecurrence{
			{TemplateID: "weekend-morning", RRule: "FREQ=WEEKLY;BYDAY=SA,SU"},
		},
		AnnouncementRecipients: []string{"parents@example.org"},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{
		DatabaseURL:     "postgres://localhost:5432/treelot",
		DefaultLocation: "Christmas Tree Lot",
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	cfg := &Config{
		// Missing DatabaseURL
		DefaultLocation: "Christmas Tree Lot",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := &Config{
		DatabaseURL:     "postgres://localhost:5432/treelot",
		DefaultLocation: "Christmas Tree Lot",
		TemplateRecurrences: []TemplateRecurrence{
			{TemplateID: "weekend-morning", RRule: "INVALID_RRULE_SYNTAX"},
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestValidate_MultipleRecurrencesOneInvalid(t *testing.T) {
	cfg := &Config{
		DatabaseURL:     "postgres://localhost:5432/treelot",
		DefaultLocation: "Christmas Tree Lot",
		TemplateRecurrences: []TemplateRecurrence{
			{TemplateID: "weekend", RRule: "FREQ=WEEKLY;BYDAY=SA,SU"},
			{TemplateID: "broken", RRule: "INVALID_RRULE"},
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestValidate_RecurrenceWithoutTemplateID(t *testing.T) {
	cfg := &Config{
		DatabaseURL:     "postgres://localhost:5432/treelot",
		DefaultLocation: "Christmas Tree Lot",
		TemplateRecurrences: []TemplateRecurrence{
			{RRule: "FREQ=WEEKLY;BYDAY=SU"},
		},
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_ComplexValidRRule(t *testing.T) {
	cfg := &Config{
		DatabaseURL:     "postgres://localhost:5432/treelot",
		DefaultLocation: "Christmas Tree Lot",
		TemplateRecurrences: []TemplateRecurrence{
			{TemplateID: "first-sunday", RRule: "FREQ=MONTHLY;BYDAY=1SU;BYMONTH=11,12"},
		},
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.yaml")

	validConfig := `
databaseURL: "postgres://localhost:5432/treelot"
defaultLocation: "Christmas Tree Lot"
gmailUserID: "user@example.com"
gmailSender: "troop@example.com"
templateRecurrences:
  - templateID: "weekend-morning"
    rrule: "FREQ=WEEKLY;BYDAY=SA,SU"
announcementRecipients:
  - "parents@example.org"
  - "scouts@example.org"
`

	err := os.WriteFile(configPath, []byte(validConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/treelot", cfg.DatabaseURL)
	assert.Equal(t, "Christmas Tree Lot", cfg.DefaultLocation)
	assert.Equal(t, "user@example.com", cfg.GmailUserID)
	assert.Equal(t, "troop@example.com", cfg.GmailSender)
	assert.Len(t, cfg.AnnouncementRecipients, 2)

	require.Len(t, cfg.TemplateRecurrences, 1)
	assert.Equal(t, "weekend-morning", cfg.TemplateRecurrences[0].TemplateID)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=SA,SU", cfg.TemplateRecurrences[0].RRule)
}

func TestLoadFromPath_MinimalConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "minimal_config.yaml")

	minimalConfig := `
databaseURL: "postgres://localhost:5432/treelot"
defaultLocation: "Christmas Tree Lot"
`

	err := os.WriteFile(configPath, []byte(minimalConfig), 0644)
	require.NoError(t, err)

	cfg, err := LoadFromPath(configPath)
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/treelot", cfg.DatabaseURL)
	assert.Empty(t, cfg.GmailSender)
	assert.Empty(t, cfg.TemplateRecurrences)
	assert.Nil(t, cfg.Recurrences())
}

func TestLoadFromPath_InvalidRRule(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_rrule.yaml")

	invalidConfig := `
databaseURL: "postgres://localhost:5432/treelot"
defaultLocation: "Christmas Tree Lot"
templateRecurrences:
  - templateID: "weekend-morning"
    rrule: "INVALID_RRULE_SYNTAX"
`

	err := os.WriteFile(configPath, []byte(invalidConfig), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestLoadFromPath_MissingRequiredField(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_config.yaml")

	invalidConfig := `
# Missing databaseURL
defaultLocation: "Christmas Tree Lot"
`

	err := os.WriteFile(configPath, []byte(invalidConfig), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid_yaml.yaml")

	invalidYAML := `
databaseURL: "postgres://localhost:5432/treelot"
  invalid indentation
defaultLocation: "Christmas Tree Lot"
`

	err := os.WriteFile(configPath, []byte(invalidYAML), 0644)
	require.NoError(t, err)

	_, err = LoadFromPath(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestRecurrences_KeyedByTemplateID(t *testing.T) {
	cfg := &Config{
		DatabaseURL:     "postgres://localhost:5432/treelot",
		DefaultLocation: "Christmas Tree Lot",
		TemplateRecurrences: []TemplateRecurrence{
			{TemplateID: "weekend", RRule: "FREQ=WEEKLY;BYDAY=SA,SU"},
			{TemplateID: "delivery", RRule: "FREQ=WEEKLY;BYDAY=SA"},
		},
	}

	rules := cfg.Recurrences()
	require.Len(t, rules, 2)
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=SA,SU", rules["weekend"])
	assert.Equal(t, "FREQ=WEEKLY;BYDAY=SA", rules["delivery"])
}
