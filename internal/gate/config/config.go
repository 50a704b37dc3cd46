// Package config holds the gate configuration: where the version
// declarations live and what a release tag looks like. Configuration is
// read from a TOML file at the repository root and falls back to the
// defaults of the fmi-bd2cmake layout when the file is absent.
package config

import (
	"fmt"
	"os"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/fmi-build-tools/relgate/internal/gate/source"
)

// ConfigFormatVersion is the supported config file format version.
const ConfigFormatVersion = "0.1"

// DefaultConfigFile is the default name of the gate config file.
const DefaultConfigFile = "relgate.toml"

// ManifestConfig holds project manifest related configuration
type ManifestConfig struct {
	Path   string `toml:"path" validate:"required"`                        // Manifest file path
	Format string `toml:"format" validate:"omitempty,oneof=pyproject setuppy"` // Manifest format; inferred from the file name when empty
}

// PackageConfig holds package source related configuration
type PackageConfig struct {
	Path string `toml:"path" validate:"required"` // File carrying the __version__ declaration
}

// ConfigParam holds all configuration parameters for the release gate
type ConfigParam struct {
	// Configuration version
	FormatVersion string `toml:"format_version"` // Version of this configuration file format

	// Tag configuration
	TagPrefix string `toml:"tag_prefix" validate:"required"` // Literal prefix of a release tag

	// Manifest configuration
	Manifest ManifestConfig `toml:"manifest"`

	// Package source configuration
	Package PackageConfig `toml:"package"`
}

var cfg *ConfigParam

// Config returns the current configuration
func Config() *ConfigParam {
	return cfg
}

// ManifestFormat returns the configured manifest format, inferring it from
// the manifest file name when not set explicitly.
func (c *ConfigParam) ManifestFormat() source.Format {
	if c.Manifest.Format != "" {
		return source.Format(c.Manifest.Format)
	}
	return source.DetectFormat(c.Manifest.Path)
}

// DefaultConfig returns the configuration for the stock fmi-bd2cmake
// repository layout.
func DefaultConfig() *ConfigParam {
	return &ConfigParam{
		FormatVersion: ConfigFormatVersion,
		TagPrefix:     source.DefaultTagPrefix,
		Manifest: ManifestConfig{
			Path:   "setup.py",
			Format: string(source.FormatSetupPy),
		},
		Package: PackageConfig{
			Path: "fmi_bd2cmake/__init__.py",
		},
	}
}

// ValidateConfig checks if all required configuration values are present and valid
func ValidateConfig(cfg *ConfigParam) error {
	// Check if the config file format version is supported
	if cfg.FormatVersion != ConfigFormatVersion {
		return fmt.Errorf("unsupported config file format version: %s", cfg.FormatVersion)
	}

	if cfg.TagPrefix == "" {
		cfg.TagPrefix = source.DefaultTagPrefix
	}

	if err := V().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %v", err)
	}

	return nil
}

// LoadConfig loads configuration from a file. An empty filename loads the
// default config file from the working directory, falling back to the
// built-in defaults when that file does not exist.
func LoadConfig(filename string) error {
	if filename == "" {
		filename = DefaultConfigFile
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			cfg = DefaultConfig()
			return nil
		}
	}

	// Read and parse the config file
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	c := &ConfigParam{}
	if _, err := toml.Decode(string(content), c); err != nil {
		return fmt.Errorf("error parsing config file: %v", err)
	}

	// Validate the configuration
	if err := ValidateConfig(c); err != nil {
		return fmt.Errorf("invalid configuration: %v", err)
	}

	cfg = c
	return nil
}

// TestInit sets up the default configuration for tests.
func TestInit(t *testing.T) {
	t.Helper()
	cfg = DefaultConfig()
}
