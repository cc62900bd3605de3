package convertcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-nb2hugo/internal/commands"
	"github.com/goliatone/go-nb2hugo/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// HandlerSet groups the handlers built by RegisterConvertCommands.
type HandlerSet struct {
	Notebook  *ConvertNotebookHandler
	Directory *ConvertDirectoryHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	notebookObserver  NotebookObserver
	directoryObserver DirectoryObserver
	notebookOpts      []commands.HandlerOption[ConvertNotebookCommand]
	directoryOpts     []commands.HandlerOption[ConvertDirectoryCommand]
}

// WithNotebookObserver receives every converted notebook result.
func WithNotebookObserver(fn NotebookObserver) Option {
	return func(cfg *options) {
		cfg.notebookObserver = fn
	}
}

// WithDirectoryObserver receives every directory run result.
func WithDirectoryObserver(fn DirectoryObserver) Option {
	return func(cfg *options) {
		cfg.directoryObserver = fn
	}
}

// WithNotebookHandlerOptions forwards options to the ConvertNotebookHandler constructor.
func WithNotebookHandlerOptions(opts ...commands.HandlerOption[ConvertNotebookCommand]) Option {
	return func(cfg *options) {
		cfg.notebookOpts = append(cfg.notebookOpts, opts...)
	}
}

// WithDirectoryHandlerOptions forwards options to the ConvertDirectoryHandler constructor.
func WithDirectoryHandlerOptions(opts ...commands.HandlerOption[ConvertDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.directoryOpts = append(cfg.directoryOpts, opts...)
	}
}

// RegisterConvertCommands builds the convert handlers and registers them with
// reg when it is non-nil.
func RegisterConvertCommands(reg CommandRegistry, service Converter, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("convert command registration: service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "convert")

	notebookHandler := NewConvertNotebookHandler(service, logger, cfg.notebookObserver, cfg.notebookOpts...)
	directoryHandler := NewConvertDirectoryHandler(service, logger, cfg.directoryObserver, cfg.directoryOpts...)

	if reg != nil {
		if err := reg.RegisterCommand(notebookHandler); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(directoryHandler); err != nil {
			return nil, err
		}
	}

	return &HandlerSet{
		Notebook:  notebookHandler,
		Directory: directoryHandler,
	}, nil
}

// RegisterConvertCron schedules periodic directory conversions. The handler
// runs with a background context.
func RegisterConvertCron(reg CronRegistrar, handler *ConvertDirectoryHandler, cfg command.HandlerConfig, msg ConvertDirectoryCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
