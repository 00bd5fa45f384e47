// Package store provides functionality for storing and retrieving application data.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"finsight/pnl-csv/internal/logging"
	"finsight/pnl-csv/internal/models"

	"gopkg.in/yaml.v3"
)

// RuleOverrides holds optional user-maintained classification codes that
// extend the built-in short-class table. Overrides cannot change the
// revenue/expenses side checks; they only add short codes on the expense side.
type RuleOverrides struct {
	// ShortClass maps an uppercased Short_CLASS code to an account group
	// name ("COGS" or "OPEX").
	ShortClass map[string]string `yaml:"short_class"`
}

// RuleStore loads classification overrides from a YAML file.
type RuleStore struct {
	OverridesFile string
	logger        logging.Logger
}

// NewRuleStore creates a store for classification rule overrides.
func NewRuleStore(overridesFile string, logger logging.Logger) *RuleStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &RuleStore{OverridesFile: overridesFile, logger: logger}
}

// findConfigFile looks for a configuration file in standard locations.
func (s *RuleStore) findConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "pnl-csv", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadOverrides reads the overrides file. A missing file is not an error:
// it yields an empty override set and the built-in rules stand alone.
func (s *RuleStore) LoadOverrides() (RuleOverrides, error) {
	empty := RuleOverrides{ShortClass: map[string]string{}}

	filename := s.OverridesFile
	if filename == "" {
		filename = "classification.yaml"
	}

	filePath, err := s.findConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("No classification overrides file found",
				logging.Field{Key: logging.FieldFile, Value: filename})
			return empty, nil
		}
		return empty, fmt.Errorf("error resolving overrides file: %w", err)
	}

	data, err := os.ReadFile(filePath) // #nosec G304 -- path comes from config
	if err != nil {
		return empty, fmt.Errorf("error reading overrides file %s: %w", filePath, err)
	}

	var overrides RuleOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return empty, fmt.Errorf("error parsing overrides file %s: %w", filePath, err)
	}
	if overrides.ShortClass == nil {
		overrides.ShortClass = map[string]string{}
	}

	// Reject groups outside the expense-side taxonomy up front so a typo in
	// the file cannot silently reroute revenue.
	for code, group := range overrides.ShortClass {
		g := models.AccountGroup(group)
		if g != models.GroupCOGS && g != models.GroupOPEX {
			return empty, fmt.Errorf("overrides file %s: short class %q maps to unknown group %q",
				filePath, code, group)
		}
	}

	s.logger.Info("Loaded classification overrides",
		logging.Field{Key: logging.FieldFile, Value: filePath},
		logging.Field{Key: logging.FieldCount, Value: len(overrides.ShortClass)})
	return overrides, nil
}

// SaveOverrides writes the override set back to the configured file.
func (s *RuleStore) SaveOverrides(overrides RuleOverrides) error {
	filename := s.OverridesFile
	if filename == "" {
		filename = "classification.yaml"
	}

	data, err := yaml.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("error marshaling overrides: %w", err)
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("error creating directory for overrides file: %w", err)
		}
	}
	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("error writing overrides file %s: %w", filename, err)
	}
	return nil
}
