package frontmatter

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-nb2hugo/internal/logging"
	"github.com/goliatone/go-nb2hugo/pkg/interfaces"
)

const (
	// Divider separates front matter from notebook content inside a raw cell.
	Divider = "<!--eofm-->"
	// Delimiter opens and closes the emitted TOML block.
	Delimiter = "+++"
)

var (
	// ErrNoFrontMatter is reported when a notebook has no raw cell at all.
	ErrNoFrontMatter = errors.New("frontmatter: notebook does not have a front matter")
	// ErrDividerMissing is reported in strict mode when the first raw cell
	// carries no divider.
	ErrDividerMissing = errors.New("frontmatter: first raw cell has no divider")
)

// WarningHandler receives non-fatal diagnostics raised while splitting.
type WarningHandler func(ctx context.Context, err error)

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// WithLogger sets the logger used by the default warning handler.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *Preprocessor) {
		if logger == nil {
			logger = logging.NoOp()
		}
		p.logger = logger
	}
}

// WithWarningHandler routes diagnostics to fn instead of the logger.
func WithWarningHandler(fn WarningHandler) Option {
	return func(p *Preprocessor) {
		p.warn = fn
	}
}

// WithStrictDivider also reports ErrDividerMissing when the first raw cell
// lacks the divider. The notebook is still returned unchanged.
func WithStrictDivider(strict bool) Option {
	return func(p *Preprocessor) {
		p.strict = strict
	}
}

// Preprocessor implements interfaces.Preprocessor for the front matter split.
type Preprocessor struct {
	logger interfaces.Logger
	warn   WarningHandler
	strict bool
}

var _ interfaces.Preprocessor = (*Preprocessor)(nil)

// New returns a Preprocessor. Without options, diagnostics are logged at
// WARN through a no-op logger.
func New(opts ...Option) *Preprocessor {
	p := &Preprocessor{logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Preprocess replaces the cells of nb with [front matter cell] + content
// cells. res is returned as received.
func (p *Preprocessor) Preprocess(ctx context.Context, nb *interfaces.Notebook, res interfaces.Resources) (*interfaces.Notebook, interfaces.Resources, error) {
	if nb == nil {
		return nb, res, nil
	}

	result := Split(nb.Cells)
	switch {
	case !result.RawCellFound:
		p.report(ctx, res, ErrNoFrontMatter)
	case !result.DividerFound && p.strict:
		p.report(ctx, res, ErrDividerMissing)
	}

	cells := make([]interfaces.Cell, 0, len(result.Content)+1)
	if result.FrontMatter != "" {
		cells = append(cells, interfaces.NewRawCell(Wrap(result.FrontMatter)))
	}
	nb.Cells = append(cells, result.Content...)
	return nb, res, nil
}

func (p *Preprocessor) report(ctx context.Context, res interfaces.Resources, err error) {
	if p.warn != nil {
		p.warn(ctx, err)
		return
	}
	logger := p.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	logging.WithNotebookContext(logger, res.Path, "", "frontmatter").
		Warn("frontmatter.split.warning", "error", err)
}

// SplitResult is the outcome of scanning a cell list for the divider.
type SplitResult struct {
	// FrontMatter is the text before the divider, untrimmed.
	FrontMatter string
	// Content is the cell list that follows the front matter. When no divider
	// is found it is the input list itself.
	Content []interfaces.Cell
	// RawCellFound reports whether any raw cell was reached by the scan.
	RawCellFound bool
	// DividerFound reports whether the first raw cell held the divider.
	DividerFound bool
}

// Split scans cells for the first raw cell and splits it on the divider.
//
// Only the first raw cell is consulted. Non-raw cells ahead of it are
// skipped and, when the divider is found, dropped along with it. If that cell
// has no divider the cells come back unchanged with empty front matter.
func Split(cells []interfaces.Cell) SplitResult {
	for index, cell := range cells {
		if !cell.IsRaw() {
			continue
		}

		before, after, found := strings.Cut(cell.Source, Divider)
		if !found {
			return SplitResult{Content: cells, RawCellFound: true}
		}

		rest := cells[index+1:]
		content := make([]interfaces.Cell, 0, len(rest)+1)
		if strings.TrimSpace(after) != "" {
			content = append(content, interfaces.NewRawCell(after))
		}
		content = append(content, rest...)

		return SplitResult{
			FrontMatter:  before,
			Content:      content,
			RawCellFound: true,
			DividerFound: true,
		}
	}
	return SplitResult{Content: cells}
}

// Wrap encloses front matter text in TOML delimiter lines.
func Wrap(frontMatter string) string {
	return Delimiter + "\n" + frontMatter + "\n" + Delimiter + "\n"
}
