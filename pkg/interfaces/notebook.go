package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// CellKind identifies the nbformat cell type.
type CellKind string

const (
	CellRaw      CellKind = "raw"
	CellCode     CellKind = "code"
	CellMarkdown CellKind = "markdown"
)

// Cell is a single notebook cell. Cells have no identity beyond their
// position in Notebook.Cells; ID is only carried through for nbformat 4.5
// round trips.
type Cell struct {
	Kind           CellKind
	ID             string
	Metadata       map[string]any
	Source         string
	ExecutionCount *int
	Outputs        []Output
	Attachments    map[string]any
}

// Output captures one entry of a code cell's outputs list.
type Output struct {
	OutputType     string
	Name           string
	Text           string
	Data           map[string]any
	Metadata       map[string]any
	ExecutionCount *int
	EName          string
	EValue         string
	Traceback      []string
}

// Notebook is the in-memory document handed to preprocessors. Preprocessors
// replace Cells wholesale rather than editing individual entries.
type Notebook struct {
	Cells       []Cell
	Metadata    map[string]any
	Format      int
	FormatMinor int
}

// Resources carries per-run context alongside the notebook. Preprocessors
// must return it unchanged unless they own a field.
type Resources struct {
	NotebookID uuid.UUID
	Path       string
	Name       string
	Metadata   map[string]any
}

// Preprocessor transforms a notebook before export.
type Preprocessor interface {
	Preprocess(ctx context.Context, nb *Notebook, res Resources) (*Notebook, Resources, error)
}

// PreprocessorFunc adapts a function to the Preprocessor interface.
type PreprocessorFunc func(ctx context.Context, nb *Notebook, res Resources) (*Notebook, Resources, error)

// Preprocess calls f.
func (f PreprocessorFunc) Preprocess(ctx context.Context, nb *Notebook, res Resources) (*Notebook, Resources, error) {
	return f(ctx, nb, res)
}

// NewRawCell builds a raw cell with empty metadata.
func NewRawCell(source string) Cell {
	return Cell{
		Kind:     CellRaw,
		Metadata: map[string]any{},
		Source:   source,
	}
}

// IsRaw reports whether the cell holds unrendered text.
func (c Cell) IsRaw() bool {
	return c.Kind == CellRaw
}
