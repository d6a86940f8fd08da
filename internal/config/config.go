package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// DatabaseConfig selects where snapshots are loaded from and decisions are written to
type DatabaseConfig struct {
	Backend string `yaml:"backend" validate:"required,oneof=file postgres"`
	Path    string `yaml:"path,omitempty" validate:"required_if=Backend file"`
	URL     string `yaml:"url,omitempty" validate:"required_if=Backend postgres"`
}

// RosterConfig points at the spreadsheet holding employee and client records
type RosterConfig struct {
	SpreadsheetID string `yaml:"spreadsheetID" validate:"required"`
	EmployeesTab  string `yaml:"employeesTab" validate:"required"`
	ClientsTab    string `yaml:"clientsTab" validate:"required"`
}

// DispatchLogConfig points at the sheet tab that batch decisions are appended to
type DispatchLogConfig struct {
	SpreadsheetID string `yaml:"spreadsheetID" validate:"required"`
	Tab           string `yaml:"tab" validate:"required"`
}

// RecurrenceRule is a named RRULE usable when scheduling a job series
type RecurrenceRule struct {
	Name  string `yaml:"name" validate:"required"`
	RRule string `yaml:"rrule" validate:"required"`
}

// Config represents the application configuration
type Config struct {
	Database    DatabaseConfig     `yaml:"database"`
	Roster      *RosterConfig      `yaml:"roster,omitempty"`
	DispatchLog *DispatchLogConfig `yaml:"dispatchLog,omitempty"`
	GmailUserID string             `yaml:"gmailUserID,omitempty"`
	GmailSender string             `yaml:"gmailSender,omitempty" validate:"omitempty,email"`
	ServerAddr  string             `yaml:"serverAddr,omitempty" validate:"omitempty,hostname_port"`

	// Recurrences adds named rules on top of Daily, Weekly, Bi-weekly and Monthly
	Recurrences []RecurrenceRule `yaml:"recurrences,omitempty" validate:"omitempty,unique=Name,dive"`

	// TrackBatchCommitments makes each batch decision visible to later jobs in the same run
	TrackBatchCommitments bool `yaml:"trackBatchCommitments,omitempty"`

	// Defaults for series whose client has no recommendation
	DefaultStartTime string  `yaml:"defaultStartTime,omitempty" validate:"omitempty,datetime=15:04"`
	DefaultHours     float64 `yaml:"defaultHours,omitempty" validate:"gte=0"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// RecurrenceRules returns the configured rules keyed by name
func (c *Config) RecurrenceRules() map[string]string {
	rules := make(map[string]string, len(c.Recurrences))
	for _, r := range c.Recurrences {
		rules[r.Name] = r.RRule
	}
	return rules
}

// ServeAddr returns the configured listen address, or :8080
func (c *Config) ServeAddr() string {
	if c.ServerAddr == "" {
		return ":8080"
	}
	return c.ServerAddr
}

// LoadWithEnv loads and validates the configuration for an environment.
// For example, env="test" will look for "dispatch_config.test.yaml"
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
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

	// A relative data file is resolved against the config file's directory
	if cfg.Database.Backend == BackendFile && cfg.Database.Path != "" && !filepath.IsAbs(cfg.Database.Path) {
		cfg.Database.Path = filepath.Join(filepath.Dir(path), cfg.Database.Path)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	// Validate rrule syntax for each named recurrence
	for i, rule := range cfg.Recurrences {
		if _, err := rrule.StrToRRule(rule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in recurrences[%d]: %w", i, err)
		}
	}

	return nil
}

// findConfigFile searches for dispatch_config.yaml in current directory and home directory
// If env is provided, it adds it as an extension (e.g., "dispatch_config.test.yaml")
func findConfigFile(env string) (string, error) {
	configFileName := "dispatch_config.yaml"
	if env != "" {
		configFileName = "dispatch_config." + env + ".yaml"
	}
	return findFile(configFileName)
}

// findFile looks for fileName in the current directory, then in the home directory
func findFile(fileName string) (string, error) {
	// Check current directory
	if _, err := os.Stat(fileName); err == nil {
		return fileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, fileName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", fileName)
}
