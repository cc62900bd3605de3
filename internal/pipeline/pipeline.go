package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-nb2hugo/internal/logging"
	"github.com/goliatone/go-nb2hugo/pkg/interfaces"
)

// ErrNilNotebook is returned when Run receives no notebook.
var ErrNilNotebook = errors.New("pipeline: notebook is required")

// Pipeline runs preprocessors in order, feeding each the previous output.
type Pipeline struct {
	steps  []interfaces.Preprocessor
	logger interfaces.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithPreprocessors appends steps to the pipeline. Nil steps are ignored.
func WithPreprocessors(steps ...interfaces.Preprocessor) Option {
	return func(p *Pipeline) {
		for _, step := range steps {
			if step != nil {
				p.steps = append(p.steps, step)
			}
		}
	}
}

// New builds a pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Len reports the number of steps.
func (p *Pipeline) Len() int {
	return len(p.steps)
}

// Run applies every step. The first step error stops the run. A nil ctx is
// treated as context.Background().
func (p *Pipeline) Run(ctx context.Context, nb *interfaces.Notebook, res interfaces.Resources) (*interfaces.Notebook, interfaces.Resources, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if nb == nil {
		return nil, res, ErrNilNotebook
	}

	logger := logging.WithNotebookContext(p.logger.WithContext(ctx), res.Path, "", "preprocess")
	for i, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, res, err
		}

		name := fmt.Sprintf("%T", step)
		logger.Debug("pipeline.step.start", "step", i, "preprocessor", name, "cells", len(nb.Cells))

		out, outRes, err := step.Preprocess(ctx, nb, res)
		if err != nil {
			logger.Error("pipeline.step.failed", "step", i, "preprocessor", name, "error", err)
			return nil, res, fmt.Errorf("pipeline: step %d (%s): %w", i, name, err)
		}
		if out == nil {
			return nil, res, fmt.Errorf("pipeline: step %d (%s): %w", i, name, ErrNilNotebook)
		}
		nb, res = out, outRes

		logger.Debug("pipeline.step.done", "step", i, "preprocessor", name, "cells", len(nb.Cells))
	}
	return nb, res, nil
}
