package config

import (
	"encoding/json"
	"fmt"
	"go/token"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the converter configuration
type Config struct {
	TruthImport   string   `json:"truthImport,omitempty" yaml:"truthImport,omitempty"`
	TruthAlias    string   `json:"truthAlias,omitempty" yaml:"truthAlias,omitempty"`       // Local name for the import; empty uses the package name
	AssertEntry   string   `json:"assertEntry,omitempty" yaml:"assertEntry,omitempty"`     // Entry point replacing assert.X
	RequireEntry  string   `json:"requireEntry,omitempty" yaml:"requireEntry,omitempty"`   // Entry point replacing require.X
	ExpectedNames []string `json:"expectedNames,omitempty" yaml:"expectedNames,omitempty"` // Identifiers that hold expected values
	Exclude       []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`             // Directory names skipped when walking
	DryRun        *bool    `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
	Verbose       *bool    `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	NoColor       *bool    `json:"noColor,omitempty" yaml:"noColor,omitempty"`
}

// BoolPtr returns a pointer to a bool value
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetDryRun returns the dry run setting, defaulting to false
func (c *Config) GetDryRun() bool {
	return getBool(c.DryRun, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// Qualifier returns the identifier converted code uses to refer to the
// truth package.
func (c *Config) Qualifier() string {
	if c.TruthAlias != "" {
		return c.TruthAlias
	}
	return path.Base(c.TruthImport)
}

// ValidationError describes a configuration field with an unusable value.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Validate reports the first field that cannot be used to generate code.
func (c *Config) Validate() error {
	if c.TruthImport == "" {
		return ValidationError{Field: "truthImport", Message: "required field is empty"}
	}
	if c.TruthAlias != "" && !token.IsIdentifier(c.TruthAlias) {
		return ValidationError{Field: "truthAlias", Message: fmt.Sprintf("%q is not a Go identifier", c.TruthAlias)}
	}
	if !token.IsIdentifier(c.Qualifier()) {
		return ValidationError{Field: "truthImport", Message: fmt.Sprintf("package name %q is not a Go identifier; set truthAlias", c.Qualifier())}
	}
	if !token.IsExported(c.AssertEntry) {
		return ValidationError{Field: "assertEntry", Message: "must be an exported identifier"}
	}
	if !token.IsExported(c.RequireEntry) {
		return ValidationError{Field: "requireEntry", Message: "must be an exported identifier"}
	}
	return nil
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".truthconv.json",
	"truthconv.json",
	".truthconv.yaml",
	".truthconv.yml",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	// Search for config file in current directory
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// loadConfigFromFile loads configuration from a specific file. YAML is
// used for .yaml and .yml files, JSON otherwise.
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.TruthImport != "" {
		result.TruthImport = other.TruthImport
	}
	if other.TruthAlias != "" {
		result.TruthAlias = other.TruthAlias
	}
	if other.AssertEntry != "" {
		result.AssertEntry = other.AssertEntry
	}
	if other.RequireEntry != "" {
		result.RequireEntry = other.RequireEntry
	}
	if len(other.ExpectedNames) > 0 {
		result.ExpectedNames = other.ExpectedNames
	}
	if len(other.Exclude) > 0 {
		result.Exclude = other.Exclude
	}

	// Boolean flags - only override if explicitly set in other config
	if other.DryRun != nil {
		result.DryRun = other.DryRun
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	return &result
}

// SaveConfig saves the configuration to a file, as YAML for .yaml and
// .yml paths and JSON otherwise.
func (c *Config) SaveConfig(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
