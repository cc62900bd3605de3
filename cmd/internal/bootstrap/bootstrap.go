package bootstrap

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-nb2hugo"
	"github.com/goliatone/go-nb2hugo/internal/converter"
	"github.com/goliatone/go-nb2hugo/internal/di"
	"github.com/goliatone/go-nb2hugo/internal/logging"
	"github.com/goliatone/go-nb2hugo/pkg/interfaces"
)

// Options captures the flags shared by the nb2hugo CLIs. Pointer fields are
// only applied when set so config file values survive.
type Options struct {
	ConfigPath     string
	ContentDir     string
	OutputDir      string
	Pattern        string
	StrictDivider  *bool
	LogLevel       string
	LogFormat      string
	LogProvider    string
	LogWriter      io.Writer
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the nb2hugo module with the services the CLIs use.
type Module struct {
	Module    *nb2hugo.Module
	Converter *converter.Service
	Logger    interfaces.Logger
}

// RegisterFlags binds the shared flags on fs and returns a function that
// reports the Options after parsing.
func RegisterFlags(fs *flag.FlagSet) func() Options {
	var (
		configPath    = fs.String("config", "", "Path to a TOML, YAML or JSON config file")
		contentDir    = fs.String("content-dir", "", "Directory notebooks are read from (overrides config)")
		outputDir     = fs.String("output-dir", "", "Directory markdown is written to (overrides config)")
		pattern       = fs.String("pattern", "", "Glob pattern for notebook discovery (overrides config)")
		strictDivider = fs.Bool("strict-divider", false, "Warn when the first raw cell has no <!--eofm--> divider")
		logLevel      = fs.String("log-level", "", "Log level: trace, debug, info, warn, error")
		logFormat     = fs.String("log-format", "", "gologger format: console, json, pretty")
		logProvider   = fs.String("log-provider", "", "Logger provider: console, gologger, none")
	)

	return func() Options {
		opts := Options{
			ConfigPath:  *configPath,
			ContentDir:  *contentDir,
			OutputDir:   *outputDir,
			Pattern:     *pattern,
			LogLevel:    *logLevel,
			LogFormat:   *logFormat,
			LogProvider: *logProvider,
		}
		fs.Visit(func(f *flag.Flag) {
			if f.Name == "strict-divider" {
				value := *strictDivider
				opts.StrictDivider = &value
			}
		})
		return opts
	}
}

// ResolveConfig loads the config file, when given, and applies overrides.
func ResolveConfig(opts Options) (nb2hugo.Config, error) {
	cfg := nb2hugo.DefaultConfig()
	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		loaded, err := nb2hugo.LoadConfig(path)
		if err != nil {
			return nb2hugo.Config{}, err
		}
		cfg = loaded
	}

	override := func(target *string, value string) {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			*target = trimmed
		}
	}
	override(&cfg.Converter.ContentDir, opts.ContentDir)
	override(&cfg.Converter.OutputDir, opts.OutputDir)
	override(&cfg.Converter.Pattern, opts.Pattern)
	override(&cfg.Logging.Level, opts.LogLevel)
	override(&cfg.Logging.Format, opts.LogFormat)
	override(&cfg.Logging.Provider, opts.LogProvider)
	if opts.StrictDivider != nil {
		cfg.FrontMatter.StrictDivider = *opts.StrictDivider
	}

	if err := cfg.Validate(); err != nil {
		return nb2hugo.Config{}, err
	}
	return cfg, nil
}

// BuildModule constructs an nb2hugo module for CLI use.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := ResolveConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("resolve config: %w", err)
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}
	if opts.LogWriter != nil {
		diOpts = append(diOpts, di.WithLogWriter(opts.LogWriter))
	}

	module, err := nb2hugo.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise nb2hugo module: %w", err)
	}

	return &Module{
		Module:    module,
		Converter: module.Container().ConverterService(),
		Logger:    logging.CommandsLogger(module.Container().LoggerProvider()),
	}, nil
}
