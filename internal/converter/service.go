package converter

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-nb2hugo/internal/exporter"
	"github.com/goliatone/go-nb2hugo/internal/frontmatter"
	"github.com/goliatone/go-nb2hugo/internal/identity"
	"github.com/goliatone/go-nb2hugo/internal/logging"
	"github.com/goliatone/go-nb2hugo/internal/notebook"
	"github.com/goliatone/go-nb2hugo/internal/pipeline"
	"github.com/goliatone/go-nb2hugo/pkg/interfaces"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

var (
	ErrContentDirRequired = errors.New("converter: content directory is required")
	ErrOutputDirRequired  = errors.New("converter: output directory is required")
	ErrEmptySlug          = errors.New("converter: notebook name does not produce a slug")
	ErrOutputCollision    = errors.New("converter: output path already claimed in this run")
)

const outputExtension = ".md"

// Config controls where notebooks are read from and written to.
type Config struct {
	ContentDir     string
	OutputDir      string
	Pattern        string
	Recursive      bool
	ValidateSchema bool
	StrictDivider  bool
	Exporter       exporter.Config
}

// Options tune a single conversion call.
type Options struct {
	// DryRun renders markdown without touching OutputDir.
	DryRun bool
}

// Result describes one converted notebook. Notebook is the preprocessed
// notebook the markdown was exported from.
type Result struct {
	SourcePath string
	OutputPath string
	NotebookID uuid.UUID
	RunID      string
	Checksum   string
	Markdown   []byte
	Warnings   []error
	Written    bool
	Notebook   *interfaces.Notebook
}

// DirectoryResult collects the outcome of ConvertDirectory. A notebook that
// fails to convert is recorded in Errors and does not stop the run.
type DirectoryResult struct {
	Results []*Result
	Errors  []error
}

// Warnings returns every warning across Results.
func (r *DirectoryResult) Warnings() []error {
	if r == nil {
		return nil
	}
	var out []error
	for _, result := range r.Results {
		out = append(out, result.Warnings...)
	}
	return out
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger provider used for converter and splitter logs.
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(s *Service) {
		s.provider = provider
	}
}

// WithFilesystem reads notebooks from filesystem instead of ContentDir on disk.
func WithFilesystem(filesystem fs.FS) Option {
	return func(s *Service) {
		s.fs = filesystem
	}
}

// WithPreprocessors appends steps that run after the front matter splitter.
func WithPreprocessors(steps ...interfaces.Preprocessor) Option {
	return func(s *Service) {
		s.extras = append(s.extras, steps...)
	}
}

// WithExporter replaces the markdown exporter.
func WithExporter(exp interfaces.Exporter) Option {
	return func(s *Service) {
		if exp != nil {
			s.exporter = exp
		}
	}
}

// Service converts notebooks into Hugo markdown files.
type Service struct {
	cfg      Config
	provider interfaces.LoggerProvider
	logger   interfaces.Logger
	fs       fs.FS
	loader   *notebook.Loader
	exporter interfaces.Exporter
	extras   []interfaces.Preprocessor
}

// NewService validates cfg and builds a Service.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	if strings.TrimSpace(cfg.ContentDir) == "" {
		return nil, ErrContentDirRequired
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return nil, ErrOutputDirRequired
	}

	s := &Service{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	basePath := cfg.ContentDir
	if abs, err := filepath.Abs(cfg.ContentDir); err == nil {
		basePath = abs
	}
	if s.fs == nil {
		s.fs = os.DirFS(basePath)
	}
	if s.exporter == nil {
		s.exporter = exporter.NewMarkdownExporter(cfg.Exporter)
	}
	s.logger = logging.ConverterLogger(s.provider)
	s.loader = notebook.NewLoader(s.fs, notebook.LoaderConfig{
		BasePath:  basePath,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
	})
	return s, nil
}

// Convert loads the notebook at name (relative to ContentDir), splits its
// front matter and writes the exported markdown.
func (s *Service) Convert(ctx context.Context, name string, opts Options) (*Result, error) {
	ctx, runID := logging.ContextWithRunID(ctx)

	loaded, err := s.loader.LoadFile(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("converter: load %s: %w", name, err)
	}
	return s.convertLoaded(ctx, runID, loaded, opts, nil)
}

// ConvertDirectory converts every notebook discovered under dir.
func (s *Service) ConvertDirectory(ctx context.Context, dir string, opts Options) (*DirectoryResult, error) {
	ctx, runID := logging.ContextWithRunID(ctx)
	logger := logging.WithFields(s.logger.WithContext(ctx), map[string]any{
		"directory": dir,
		"run_id":    runID,
		"dry_run":   opts.DryRun,
	})

	paths, err := s.loader.Discover(ctx, dir, notebook.LoadParams{})
	if err != nil {
		return nil, fmt.Errorf("converter: discover %s: %w", dir, err)
	}
	logger.Debug("converter.directory.discovered", "count", len(paths))

	out := &DirectoryResult{}
	claimed := make(map[string]string, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		loaded, err := s.loader.LoadFile(ctx, p)
		if err == nil {
			var result *Result
			result, err = s.convertLoaded(ctx, runID, loaded, opts, claimed)
			if err == nil {
				out.Results = append(out.Results, result)
				continue
			}
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return out, err
		}
		out.Errors = append(out.Errors, fmt.Errorf("converter: %s: %w", p, err))
	}

	logger.Info("converter.directory.completed",
		"converted", len(out.Results),
		"failed", len(out.Errors),
		"warnings", len(out.Warnings()),
	)
	return out, nil
}

// convertLoaded runs one notebook through the pipeline. claimed maps output
// paths to the notebook that took them earlier in the same run; nil disables
// the check.
func (s *Service) convertLoaded(ctx context.Context, runID string, loaded *notebook.Loaded, opts Options, claimed map[string]string) (*Result, error) {
	id := identity.NotebookUUID(loaded.Path)
	logger := logging.WithNotebookContext(s.logger.WithContext(ctx), loaded.Path, id.String(), "convert")

	if s.cfg.ValidateSchema {
		if err := notebook.ValidateStructure(loaded.Source); err != nil {
			logger.Error("converter.notebook.invalid", "error", err)
			return nil, err
		}
	}

	result := &Result{
		SourcePath: loaded.Path,
		NotebookID: id,
		RunID:      runID,
		Checksum:   hex.EncodeToString(loaded.Checksum),
	}

	res := interfaces.Resources{
		NotebookID: id,
		Path:       loaded.Path,
		Name:       notebookName(loaded.Path),
		Metadata: map[string]any{
			"run_id":   runID,
			"checksum": result.Checksum,
		},
	}

	chain := pipeline.New(
		pipeline.WithLogger(logging.PipelineLogger(s.provider)),
		pipeline.WithPreprocessors(s.splitter(logger, result)),
		pipeline.WithPreprocessors(s.extras...),
	)
	nb, _, err := chain.Run(ctx, loaded.Notebook, res)
	if err != nil {
		return nil, err
	}

	markdown, err := s.exporter.Export(nb)
	if err != nil {
		return nil, fmt.Errorf("converter: export %s: %w", loaded.Path, err)
	}
	result.Markdown = markdown
	result.Notebook = nb

	target, err := s.outputPath(loaded.Path)
	if err != nil {
		return nil, err
	}
	if claimed != nil {
		if owner, ok := claimed[target]; ok {
			logger.Error("converter.notebook.collision", "output_path", target, "claimed_by", owner)
			return nil, fmt.Errorf("%w: %s already written by %s", ErrOutputCollision, target, owner)
		}
		claimed[target] = loaded.Path
	}
	result.OutputPath = target

	if opts.DryRun {
		logger.Info("converter.notebook.dry_run", "output_path", target, "warnings", len(result.Warnings))
		return result, nil
	}

	if err := writeFile(target, markdown); err != nil {
		logger.Error("converter.notebook.write_failed", "output_path", target, "error", err)
		return nil, err
	}
	result.Written = true
	logger.Info("converter.notebook.converted", "output_path", target, "warnings", len(result.Warnings))
	return result, nil
}

// splitter builds the front matter step for one notebook, collecting its
// warnings on result.
func (s *Service) splitter(logger interfaces.Logger, result *Result) interfaces.Preprocessor {
	return frontmatter.New(
		frontmatter.WithLogger(logging.FrontMatterLogger(s.provider)),
		frontmatter.WithStrictDivider(s.cfg.StrictDivider),
		frontmatter.WithWarningHandler(func(_ context.Context, err error) {
			result.Warnings = append(result.Warnings, err)
			logger.Warn("converter.notebook.warning", "error", err)
		}),
	)
}

// outputPath mirrors the notebook's directory under OutputDir and names the
// file after the slugged notebook name.
func (s *Service) outputPath(rel string) (string, error) {
	name := notebookName(rel)
	slugged, err := slug.Normalize(name)
	if err != nil {
		return "", fmt.Errorf("converter: slug %q: %w", name, err)
	}
	if slugged == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptySlug, name)
	}

	dir := path.Dir(rel)
	if dir == "." {
		dir = ""
	}
	return filepath.Join(s.cfg.OutputDir, filepath.FromSlash(dir), slugged+outputExtension), nil
}

func notebookName(rel string) string {
	base := path.Base(rel)
	return strings.TrimSuffix(base, path.Ext(base))
}

func writeFile(target string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("converter: create %s: %w", filepath.Dir(target), err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("converter: write %s: %w", target, err)
	}
	return nil
}
