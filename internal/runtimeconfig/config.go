package runtimeconfig

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goliatone/go-nb2hugo/internal/markdown"
	"gopkg.in/yaml.v3"
)

var (
	ErrContentDirRequired       = errors.New("nb2hugo config: converter content directory is required")
	ErrOutputDirRequired        = errors.New("nb2hugo config: converter output directory is required")
	ErrPatternInvalid           = errors.New("nb2hugo config: converter pattern is invalid")
	ErrMarkdownExtensionUnknown = errors.New("nb2hugo config: markdown extension is unknown")
	ErrLoggingProviderUnknown   = errors.New("nb2hugo config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("nb2hugo config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("nb2hugo config: logging format is invalid")
	ErrConfigFormatUnknown      = errors.New("nb2hugo config: unsupported config file extension")
)

// Config is the full runtime configuration for the converter and its CLIs.
type Config struct {
	Converter   ConverterConfig   `toml:"converter" yaml:"converter" json:"converter"`
	FrontMatter FrontMatterConfig `toml:"frontmatter" yaml:"frontmatter" json:"frontmatter"`
	Markdown    MarkdownConfig    `toml:"markdown" yaml:"markdown" json:"markdown"`
	Logging     LoggingConfig     `toml:"logging" yaml:"logging" json:"logging"`
}

// ConverterConfig controls notebook discovery and output.
type ConverterConfig struct {
	ContentDir      string `toml:"content_dir" yaml:"content_dir" json:"content_dir"`
	OutputDir       string `toml:"output_dir" yaml:"output_dir" json:"output_dir"`
	Pattern         string `toml:"pattern" yaml:"pattern" json:"pattern"`
	Recursive       bool   `toml:"recursive" yaml:"recursive" json:"recursive"`
	ValidateSchema  bool   `toml:"validate_schema" yaml:"validate_schema" json:"validate_schema"`
	DefaultLanguage string `toml:"default_language" yaml:"default_language" json:"default_language"`
	SkipOutputs     bool   `toml:"skip_outputs" yaml:"skip_outputs" json:"skip_outputs"`
}

// FrontMatterConfig controls the front matter splitter.
type FrontMatterConfig struct {
	// StrictDivider reports a warning when the first raw cell lacks the
	// <!--eofm--> divider.
	StrictDivider bool `toml:"strict_divider" yaml:"strict_divider" json:"strict_divider"`
}

// MarkdownConfig mirrors interfaces.ParseOptions for the preview renderer.
type MarkdownConfig struct {
	Extensions []string `toml:"extensions" yaml:"extensions" json:"extensions"`
	HardWraps  bool     `toml:"hard_wraps" yaml:"hard_wraps" json:"hard_wraps"`
	SafeMode   bool     `toml:"safe_mode" yaml:"safe_mode" json:"safe_mode"`
}

// LoggingConfig selects and tunes the logger provider.
type LoggingConfig struct {
	Provider  string   `toml:"provider" yaml:"provider" json:"provider"`
	Level     string   `toml:"level" yaml:"level" json:"level"`
	Format    string   `toml:"format" yaml:"format" json:"format"`
	AddSource bool     `toml:"add_source" yaml:"add_source" json:"add_source"`
	Focus     []string `toml:"focus" yaml:"focus" json:"focus"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Converter: ConverterConfig{
			ContentDir:     "notebooks",
			OutputDir:      "content",
			Pattern:        "*.ipynb",
			Recursive:      true,
			ValidateSchema: true,
		},
		Markdown: MarkdownConfig{
			Extensions: []string{"gfm"},
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate checks the configuration for contradictions.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Converter.ContentDir) == "" {
		return ErrContentDirRequired
	}
	if strings.TrimSpace(cfg.Converter.OutputDir) == "" {
		return ErrOutputDirRequired
	}
	if pattern := strings.TrimSpace(cfg.Converter.Pattern); pattern != "" {
		if _, err := filepath.Match(pattern, "probe.ipynb"); err != nil {
			return fmt.Errorf("%w: %s", ErrPatternInvalid, pattern)
		}
	}
	for _, ext := range cfg.Markdown.Extensions {
		if !markdown.KnownExtension(ext) {
			return fmt.Errorf("%w: %s", ErrMarkdownExtensionUnknown, ext)
		}
	}

	provider := NormalizeProvider(cfg.Logging.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// LoadFile reads a config file on top of DefaultConfig. The decoder is
// picked from the extension: .toml, .yaml/.yml or .json.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %s", ErrConfigFormatUnknown, path)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NormalizeProvider lowercases provider and maps blank to "console".
func NormalizeProvider(provider string) string {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if provider == "" {
		return "console"
	}
	return provider
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger", "none":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
