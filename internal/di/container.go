package di

import (
	"fmt"
	"io"
	"io/fs"

	command "github.com/goliatone/go-command"
	convertcmd "github.com/goliatone/go-nb2hugo/internal/commands/convert"
	"github.com/goliatone/go-nb2hugo/internal/converter"
	"github.com/goliatone/go-nb2hugo/internal/exporter"
	"github.com/goliatone/go-nb2hugo/internal/logging"
	"github.com/goliatone/go-nb2hugo/internal/logging/console"
	"github.com/goliatone/go-nb2hugo/internal/logging/gologger"
	"github.com/goliatone/go-nb2hugo/internal/markdown"
	"github.com/goliatone/go-nb2hugo/internal/runtimeconfig"
	"github.com/goliatone/go-nb2hugo/pkg/interfaces"
)

// Option mutates the container before services are built.
type Option func(*Container)

// Container wires the converter runtime from a Config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logWriter      io.Writer
	filesystem     fs.FS
	preprocessors  []interfaces.Preprocessor
	registry       convertcmd.CommandRegistry
	convertOpts    []convertcmd.Option
	cron           *cronSchedule

	converter *converter.Service
	parser    interfaces.MarkdownParser
	commands  *convertcmd.HandlerSet
}

// WithLoggerProvider overrides the provider selected from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithLogWriter sets where the console provider writes.
func WithLogWriter(w io.Writer) Option {
	return func(c *Container) {
		c.logWriter = w
	}
}

// WithFilesystem reads notebooks from filesystem instead of the content directory.
func WithFilesystem(filesystem fs.FS) Option {
	return func(c *Container) {
		c.filesystem = filesystem
	}
}

// WithPreprocessors adds steps that run after the front matter splitter.
func WithPreprocessors(steps ...interfaces.Preprocessor) Option {
	return func(c *Container) {
		c.preprocessors = append(c.preprocessors, steps...)
	}
}

// WithCommandRegistry registers the convert handlers with reg.
func WithCommandRegistry(reg convertcmd.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// WithConvertCommandOptions forwards options to the convert command registration.
func WithConvertCommandOptions(opts ...convertcmd.Option) Option {
	return func(c *Container) {
		c.convertOpts = append(c.convertOpts, opts...)
	}
}

type cronSchedule struct {
	registrar convertcmd.CronRegistrar
	config    command.HandlerConfig
	message   convertcmd.ConvertDirectoryCommand
}

// WithCronRegistrar schedules msg on the directory handler through reg once
// the commands are built. A nil reg leaves scheduling off.
func WithCronRegistrar(reg convertcmd.CronRegistrar, cfg command.HandlerConfig, msg convertcmd.ConvertDirectoryCommand) Option {
	return func(c *Container) {
		if reg == nil {
			c.cron = nil
			return
		}
		c.cron = &cronSchedule{registrar: reg, config: cfg, message: msg}
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureConverter(); err != nil {
		return nil, err
	}
	c.parser = markdown.NewGoldmarkParser(interfaces.ParseOptions{
		Extensions: append([]string(nil), cfg.Markdown.Extensions...),
		HardWraps:  cfg.Markdown.HardWraps,
		SafeMode:   cfg.Markdown.SafeMode,
	})
	if err := c.configureCommands(); err != nil {
		return nil, err
	}

	logging.WithFields(logging.ModuleLogger(c.loggerProvider, ""), map[string]any{
		"content_dir":    cfg.Converter.ContentDir,
		"output_dir":     cfg.Converter.OutputDir,
		"strict_divider": cfg.FrontMatter.StrictDivider,
	}).Debug("container.configured")
	return c, nil
}

// LoggerProvider returns the active logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// ConverterService returns the notebook converter.
func (c *Container) ConverterService() *converter.Service {
	return c.converter
}

// MarkdownParser returns the preview renderer.
func (c *Container) MarkdownParser() interfaces.MarkdownParser {
	return c.parser
}

// Commands returns the convert command handlers.
func (c *Container) Commands() *convertcmd.HandlerSet {
	return c.commands
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}

	logCfg := c.Config.Logging
	switch runtimeconfig.NormalizeProvider(logCfg.Provider) {
	case "none":
		c.loggerProvider = noopProvider{}
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure gologger: %w", err)
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{Writer: c.logWriter}
		if level, ok := console.ParseLevel(logCfg.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureConverter() error {
	conv := c.Config.Converter
	opts := []converter.Option{
		converter.WithLogger(c.loggerProvider),
		converter.WithPreprocessors(c.preprocessors...),
	}
	if c.filesystem != nil {
		opts = append(opts, converter.WithFilesystem(c.filesystem))
	}

	svc, err := converter.NewService(converter.Config{
		ContentDir:     conv.ContentDir,
		OutputDir:      conv.OutputDir,
		Pattern:        conv.Pattern,
		Recursive:      conv.Recursive,
		ValidateSchema: conv.ValidateSchema,
		StrictDivider:  c.Config.FrontMatter.StrictDivider,
		Exporter: exporter.Config{
			DefaultLanguage: conv.DefaultLanguage,
			SkipOutputs:     conv.SkipOutputs,
		},
	}, opts...)
	if err != nil {
		return err
	}
	c.converter = svc
	return nil
}

func (c *Container) configureCommands() error {
	set, err := convertcmd.RegisterConvertCommands(c.registry, c.converter, c.loggerProvider, c.convertOpts...)
	if err != nil {
		return fmt.Errorf("di: register convert commands: %w", err)
	}
	c.commands = set

	if c.cron == nil {
		return nil
	}
	if err := c.cron.message.Validate(); err != nil {
		return fmt.Errorf("di: schedule convert directory: %w", err)
	}
	if err := convertcmd.RegisterConvertCron(c.cron.registrar, set.Directory, c.cron.config, c.cron.message); err != nil {
		return fmt.Errorf("di: schedule convert directory: %w", err)
	}
	return nil
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger {
	return logging.NoOp()
}
