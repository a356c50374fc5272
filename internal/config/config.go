package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/finsift-dev/finsift/internal/risk"
)

// DefaultFile is the config filename looked up next to the statement
// being processed.
const DefaultFile = "finsift.yaml"

// Config represents the top-level finsift.yaml configuration. Credentials
// (Twilio, OpenAI) never live here; they come from the environment.
type Config struct {
	Risk    RiskConfig    `yaml:"risk"`
	Notify  NotifyConfig  `yaml:"notify,omitempty"`
	Advisor AdvisorConfig `yaml:"advisor,omitempty"`
	Logs    LogsConfig    `yaml:"logs"`
}

// RiskConfig holds the scan tunables.
type RiskConfig struct {
	UnaffordableThreshold float64 `yaml:"unaffordable_threshold"` // fraction of monthly income
	OutlierZ              float64 `yaml:"outlier_z"`
	RecentPayeeMonths     int     `yaml:"recent_payee_months"`
}

// Params converts the config block into scanner parameters.
func (r RiskConfig) Params() risk.Params {
	return risk.Params{
		UnaffordableThreshold: r.UnaffordableThreshold,
		OutlierZ:              r.OutlierZ,
		RecentPayeeMonths:     r.RecentPayeeMonths,
	}
}

// NotifyConfig holds non-secret SMS settings.
type NotifyConfig struct {
	To string `yaml:"to,omitempty"` // default destination, E.164
}

// AdvisorConfig holds non-secret advice settings.
type AdvisorConfig struct {
	Model string `yaml:"model,omitempty"`
}

// LogsConfig controls where the audit log lives.
type LogsConfig struct {
	Dir string `yaml:"dir"` // root containing logs/freeze_requests.csv
}

// Load reads a finsift.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the documented defaults.
func Default() *Config {
	return &Config{
		Risk: RiskConfig{
			UnaffordableThreshold: risk.DefaultUnaffordableThreshold,
			OutlierZ:              risk.DefaultOutlierZ,
			RecentPayeeMonths:     risk.DefaultRecentPayeeMonths,
		},
		Logs: LogsConfig{Dir: "."},
	}
}

// LoadOrDefault loads path when it exists, otherwise returns Default.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}
