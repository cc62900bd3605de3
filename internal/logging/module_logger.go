package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-nb2hugo/pkg/interfaces"
)

const (
	rootModule        = "nb2hugo"
	frontMatterModule = "nb2hugo.frontmatter"
	pipelineModule    = "nb2hugo.pipeline"
	converterModule   = "nb2hugo.converter"
	commandsModule    = "nb2hugo.commands"
)

const (
	fieldNotebookPath = "notebook_path"
	fieldNotebookID   = "notebook_id"
	fieldAction       = "action"
)

// ModuleLogger returns a logger scoped to module. A nil provider, or one that
// returns nil, yields the no-op logger. The module name is attached as the
// "module" field so entries can be filtered per component.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if strings.TrimSpace(module) == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// FrontMatterLogger is used by the front matter splitter.
func FrontMatterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, frontMatterModule)
}

// PipelineLogger is used by the preprocessor chain.
func PipelineLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, pipelineModule)
}

// ConverterLogger is used by the notebook converter service.
func ConverterLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, converterModule)
}

// CommandsLogger is used by command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithNotebookContext adds the notebook path, id and action to logger.
// Blank values are skipped.
func WithNotebookContext(logger interfaces.Logger, path, notebookID, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldNotebookPath] = trimmed
	}
	if trimmed := strings.TrimSpace(notebookID); trimmed != "" {
		fields[fieldNotebookID] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that discards everything.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
