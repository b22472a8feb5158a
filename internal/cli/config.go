package cli

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/toyz/modelmeta/internal/errors"
	"github.com/toyz/modelmeta/internal/extractor"
	"github.com/toyz/modelmeta/internal/generator"
	"github.com/toyz/modelmeta/internal/loader"
	"github.com/toyz/modelmeta/internal/utils"
)

const (
	// ConfigName is the base name of the configuration file, without extension
	ConfigName = ".modelmeta"
	// EnvPrefix prefixes every configuration environment variable
	EnvPrefix = "MODELMETA"
	// DefaultModuleDir is where the build leaves the type-descriptor module, relative to the project
	DefaultModuleDir = "bin/Debug/net5.0"
)

// Config holds the configuration for the generator pipeline
type Config struct {
	// ContextMarker is matched against the direct base type of candidate roots
	ContextMarker string `mapstructure:"context_marker"`

	// CollectionMarker is matched against the canonical name of root properties
	CollectionMarker string `mapstructure:"collection_marker"`

	Module ModuleConfig `mapstructure:"module"`
	Build  BuildConfig  `mapstructure:"build"`
	Output OutputConfig `mapstructure:"output"`

	// Verbose enables detailed logging and error reporting
	Verbose bool `mapstructure:"verbose"`

	// Quiet only shows errors and final results
	Quiet bool `mapstructure:"quiet"`

	// LogLevel names a console level (silent, error, warn, info, verbose,
	// debug) and wins over Verbose and Quiet when set
	LogLevel string `mapstructure:"log_level"`
}

// ModuleConfig locates the type-descriptor module of a project
type ModuleConfig struct {
	Format string `mapstructure:"format"`
	Dir    string `mapstructure:"dir"`
}

// BuildConfig describes the command that emits the type-descriptor module
type BuildConfig struct {
	// Command is split like a shell command line; {project} expands to the
	// project file. Empty skips the build.
	Command string `mapstructure:"command"`
}

// OutputConfig controls the generated files
type OutputConfig struct {
	Dir        string   `mapstructure:"dir"`
	Extension  string   `mapstructure:"extension"`
	Usings     []string `mapstructure:"usings"`
	LineEnding string   `mapstructure:"line_ending"`
	Attribute  string   `mapstructure:"attribute"`
	// Marker is written above every metadata field; empty writes none
	Marker string `mapstructure:"marker"`
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("context_marker", extractor.DefaultContextMarker)
	v.SetDefault("collection_marker", extractor.DefaultCollectionMarker)

	v.SetDefault("module.format", string(loader.FormatMsgpack))
	v.SetDefault("module.dir", DefaultModuleDir)

	v.SetDefault("build.command", "")

	v.SetDefault("output.dir", ".")
	v.SetDefault("output.extension", generator.DefaultExtension)
	v.SetDefault("output.line_ending", string(utils.LineEndingLF))
	v.SetDefault("output.attribute", generator.DefaultAttribute)
	v.SetDefault("output.marker", generator.DefaultMarker)

	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("log_level", "")
}

// NewViper creates a viper instance with defaults, the configuration file
// search path and MODELMETA_* environment binding
func NewViper(configDirs ...string) *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Keys without a default are only visible to Unmarshal when bound
	_ = v.BindEnv("output.usings")

	SetDefaults(v)

	v.SetConfigName(ConfigName)
	for _, dir := range configDirs {
		if dir != "" {
			v.AddConfigPath(dir)
		}
	}
	return v
}

// LoadConfig reads the first .modelmeta.{yaml,toml,...} found in configDirs
// over the defaults, then applies the environment
func LoadConfig(configDirs ...string) (*Config, error) {
	v := NewViper(configDirs...)

	if len(configDirs) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return nil, errors.WrapConfigurationError(ConfigName, "read", err)
			}
		}
	}

	return LoadWithViper(v)
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.WrapConfigurationError(ConfigName, "decode", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks values that cannot be fixed up by defaults
func (c *Config) Validate() error {
	if _, err := loader.ParseFormat(c.Module.Format); err != nil {
		return errors.WrapConfigurationError("module.format", "validate", err)
	}
	if _, err := utils.ParseLineEnding(c.Output.LineEnding); err != nil {
		return errors.WrapConfigurationError("output.line_ending", "validate", err)
	}
	if strings.TrimSpace(c.ContextMarker) == "" {
		return errors.WrapConfigurationError("context_marker", "validate", fmt.Errorf("marker cannot be empty"))
	}
	if strings.TrimSpace(c.CollectionMarker) == "" {
		return errors.WrapConfigurationError("collection_marker", "validate", fmt.Errorf("marker cannot be empty"))
	}
	if c.LogLevel != "" {
		if _, err := utils.ParseDiagnosticLevel(c.LogLevel); err != nil {
			return errors.WrapConfigurationError("log_level", "validate", err)
		}
	}
	if c.Verbose && c.Quiet {
		return errors.WrapConfigurationError("verbose", "validate", fmt.Errorf("verbose and quiet are mutually exclusive"))
	}
	return nil
}

// DiagnosticLevel returns the console level selected by LogLevel, or by
// Verbose and Quiet when no level is named
func (c *Config) DiagnosticLevel() utils.DiagnosticLevel {
	if c.LogLevel != "" {
		if level, err := utils.ParseDiagnosticLevel(c.LogLevel); err == nil {
			return level
		}
	}
	switch {
	case c.Quiet:
		return utils.DiagnosticError
	case c.Verbose:
		return utils.DiagnosticVerbose
	default:
		return utils.DiagnosticInfo
	}
}

// IsVerbose reports whether verbose output and error chains are shown
func (c *Config) IsVerbose() bool {
	return c.DiagnosticLevel() >= utils.DiagnosticVerbose
}

// ModuleFormat returns the validated module format
func (c *Config) ModuleFormat() loader.Format {
	format, _ := loader.ParseFormat(c.Module.Format)
	return format
}

// LineEnding returns the validated output line ending
func (c *Config) LineEnding() utils.LineEnding {
	ending, _ := utils.ParseLineEnding(c.Output.LineEnding)
	return ending
}

// ExtractorOptions returns the root and collection recognition options
func (c *Config) ExtractorOptions() extractor.Options {
	return extractor.Options{
		ContextMarker:    c.ContextMarker,
		CollectionMarker: c.CollectionMarker,
	}
}

// GeneratorOptions returns the rendering options
func (c *Config) GeneratorOptions() generator.Options {
	return generator.Options{
		Usings:    c.Output.Usings,
		Extension: c.Output.Extension,
		Attribute: c.Output.Attribute,
		Marker:    c.Output.Marker,
		NoMarker:  strings.TrimSpace(c.Output.Marker) == "",
	}
}
