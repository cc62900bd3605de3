package convertcmd

import (
	"context"
	"errors"
	"fmt"

	command "github.com/goliatone/go-command"
	"github.com/goliatone/go-nb2hugo/internal/commands"
	"github.com/goliatone/go-nb2hugo/internal/converter"
	"github.com/goliatone/go-nb2hugo/internal/logging"
	"github.com/goliatone/go-nb2hugo/pkg/interfaces"
)

const (
	notebookOperation  = "convert.notebook"
	directoryOperation = "convert.directory"
)

// ErrConversionFailed is returned when a directory run could not convert
// every notebook it discovered.
var ErrConversionFailed = errors.New("convert command: one or more notebooks failed")

var (
	_ command.Commander[ConvertNotebookCommand]  = (*ConvertNotebookHandler)(nil)
	_ command.Commander[ConvertDirectoryCommand] = (*ConvertDirectoryHandler)(nil)
)

// Converter is the part of converter.Service the handlers need.
type Converter interface {
	Convert(ctx context.Context, path string, opts converter.Options) (*converter.Result, error)
	ConvertDirectory(ctx context.Context, dir string, opts converter.Options) (*converter.DirectoryResult, error)
}

// NotebookObserver receives the result of a successful notebook conversion.
type NotebookObserver func(ctx context.Context, result *converter.Result)

// DirectoryObserver receives the result of a directory run, including runs
// where some notebooks failed.
type DirectoryObserver func(ctx context.Context, result *converter.DirectoryResult)

// ConvertNotebookHandler converts one notebook via the shared command handler.
type ConvertNotebookHandler struct {
	inner *commands.Handler[ConvertNotebookCommand]
}

// NewConvertNotebookHandler creates a handler bound to service. observer may be nil.
func NewConvertNotebookHandler(service Converter, logger interfaces.Logger, observer NotebookObserver, opts ...commands.HandlerOption[ConvertNotebookCommand]) *ConvertNotebookHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ConvertNotebookCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := service.Convert(ctx, msg.Path, converter.Options{DryRun: msg.DryRun})
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"output_path":   result.OutputPath,
			"notebook_id":   result.NotebookID,
			"warning_count": len(result.Warnings),
			"dry_run":       msg.DryRun,
		}).Info("convert.command.notebook.completed")
		if observer != nil {
			observer(ctx, result)
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ConvertNotebookCommand]{
		commands.WithLogger[ConvertNotebookCommand](baseLogger),
		commands.WithOperation[ConvertNotebookCommand](notebookOperation),
		commands.WithMessageFields(func(msg ConvertNotebookCommand) map[string]any {
			fields := map[string]any{"path": msg.Path}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ConvertNotebookCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ConvertNotebookHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ConvertNotebookCommand].
func (h *ConvertNotebookHandler) Execute(ctx context.Context, msg ConvertNotebookCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ConvertDirectoryHandler converts a notebook tree via the shared command handler.
type ConvertDirectoryHandler struct {
	inner *commands.Handler[ConvertDirectoryCommand]
}

// NewConvertDirectoryHandler creates a handler bound to service. observer may be nil.
func NewConvertDirectoryHandler(service Converter, logger interfaces.Logger, observer DirectoryObserver, opts ...commands.HandlerOption[ConvertDirectoryCommand]) *ConvertDirectoryHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ConvertDirectoryCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		result, err := service.ConvertDirectory(ctx, msg.Directory, converter.Options{DryRun: msg.DryRun})
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"converted_count": len(result.Results),
				"error_count":     len(result.Errors),
				"warning_count":   len(result.Warnings()),
				"dry_run":         msg.DryRun,
			}).Info("convert.command.directory.completed")
			if observer != nil {
				observer(ctx, result)
			}
		}
		if err != nil {
			return err
		}
		if result != nil && len(result.Errors) > 0 {
			return fmt.Errorf("%w: %w", ErrConversionFailed, errors.Join(result.Errors...))
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ConvertDirectoryCommand]{
		commands.WithLogger[ConvertDirectoryCommand](baseLogger),
		commands.WithOperation[ConvertDirectoryCommand](directoryOperation),
		commands.WithMessageFields(func(msg ConvertDirectoryCommand) map[string]any {
			fields := map[string]any{"directory": msg.Directory}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ConvertDirectoryCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ConvertDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ConvertDirectoryCommand].
func (h *ConvertDirectoryHandler) Execute(ctx context.Context, msg ConvertDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
