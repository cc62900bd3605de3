package nb2hugo

import (
	"context"

	convertcmd "github.com/goliatone/go-nb2hugo/internal/commands/convert"
	"github.com/goliatone/go-nb2hugo/internal/converter"
	"github.com/goliatone/go-nb2hugo/internal/di"
	"github.com/goliatone/go-nb2hugo/internal/frontmatter"
	"github.com/goliatone/go-nb2hugo/internal/logging"
	"github.com/goliatone/go-nb2hugo/pkg/interfaces"
)

// Divider marks the end of the front matter inside the first raw cell.
const Divider = frontmatter.Divider

var (
	ErrNoFrontMatter  = frontmatter.ErrNoFrontMatter
	ErrDividerMissing = frontmatter.ErrDividerMissing
)

type (
	Notebook     = interfaces.Notebook
	Cell         = interfaces.Cell
	Resources    = interfaces.Resources
	Preprocessor = interfaces.Preprocessor

	ConvertOptions  = converter.Options
	Result          = converter.Result
	DirectoryResult = converter.DirectoryResult

	ConvertNotebookCommand  = convertcmd.ConvertNotebookCommand
	ConvertDirectoryCommand = convertcmd.ConvertDirectoryCommand
)

// Module is the top level converter facade.
type Module struct {
	container *di.Container
}

// New constructs a Module from cfg and optional container overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Logger returns a logger scoped to module.
func (m *Module) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(m.container.LoggerProvider(), module)
}

// Convert converts one notebook relative to the content directory.
func (m *Module) Convert(ctx context.Context, path string, opts ConvertOptions) (*Result, error) {
	return m.container.ConverterService().Convert(ctx, path, opts)
}

// ConvertDirectory converts every notebook under dir.
func (m *Module) ConvertDirectory(ctx context.Context, dir string, opts ConvertOptions) (*DirectoryResult, error) {
	return m.container.ConverterService().ConvertDirectory(ctx, dir, opts)
}

// Commands returns the go-command handlers for conversion.
func (m *Module) Commands() *convertcmd.HandlerSet {
	return m.container.Commands()
}

// MarkdownParser returns the goldmark renderer used for previews.
func (m *Module) MarkdownParser() interfaces.MarkdownParser {
	return m.container.MarkdownParser()
}

// FrontMatterPreprocessor returns a standalone splitter for callers running
// their own pipeline.
func (m *Module) FrontMatterPreprocessor(opts ...frontmatter.Option) Preprocessor {
	base := []frontmatter.Option{
		frontmatter.WithLogger(logging.FrontMatterLogger(m.container.LoggerProvider())),
		frontmatter.WithStrictDivider(m.container.Config.FrontMatter.StrictDivider),
	}
	return frontmatter.New(append(base, opts...)...)
}
