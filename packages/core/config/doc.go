// Package config handles configuration loading for the truth converter.
//
// It provides functionality for:
//   - Loading configuration from .truthconv.json or .truthconv.yaml files
//   - Default configuration values
//   - Merging command-line overrides over file settings
package config
