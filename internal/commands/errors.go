package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-nb2hugo/internal/converter"
	"github.com/goliatone/go-nb2hugo/internal/notebook"
)

const (
	commandValidationCode   = "NB2HUGO_COMMAND_VALIDATION_FAILED"
	commandContextCanceled  = "NB2HUGO_COMMAND_CANCELED"
	commandContextTimeout   = "NB2HUGO_COMMAND_TIMEOUT"
	commandContextErrorCode = "NB2HUGO_COMMAND_CONTEXT_ERROR"
	commandExecuteFailed    = "NB2HUGO_COMMAND_FAILED"
	notebookRejectedCode    = "NB2HUGO_NOTEBOOK_REJECTED"
)

// rejectedNotebookErrors are failures caused by the notebook itself rather
// than the runtime.
var rejectedNotebookErrors = []error{
	notebook.ErrNotebookInvalid,
	notebook.ErrStructureInvalid,
	converter.ErrEmptySlug,
	converter.ErrOutputCollision,
}

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(commandValidationCode)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(commandContextCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(commandContextTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(commandContextErrorCode)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	if isNotebookRejection(err) {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "notebook rejected").
			WithTextCode(notebookRejectedCode)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "notebook command failed").
		WithTextCode(commandExecuteFailed)
}

func isNotebookRejection(err error) bool {
	for _, target := range rejectedNotebookErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
