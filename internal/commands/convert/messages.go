package convertcmd

import (
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	convertNotebookMessageType  = "nb2hugo.convert.notebook"
	convertDirectoryMessageType = "nb2hugo.convert.directory"

	notebookExtension = ".ipynb"
)

// ConvertNotebookCommand converts a single notebook, addressed relative to
// the converter's content directory.
type ConvertNotebookCommand struct {
	// Path selects the .ipynb file to convert.
	Path string `json:"path"`
	// DryRun renders markdown without writing it.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ConvertNotebookCommand) Type() string { return convertNotebookMessageType }

// Validate ensures the path names a notebook before handlers execute.
func (cmd ConvertNotebookCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			path := strings.TrimSpace(value.(string))
			if path == "" {
				return validation.NewError("nb2hugo.convert.notebook.path_required", "path is required")
			}
			if !strings.EqualFold(filepath.Ext(path), notebookExtension) {
				return validation.NewError("nb2hugo.convert.notebook.path_extension", "path must point to an .ipynb file")
			}
			return nil
		})),
	)
}

// ConvertDirectoryCommand converts every notebook found under Directory.
type ConvertDirectoryCommand struct {
	// Directory selects the folder to walk, relative to the content directory.
	Directory string `json:"directory"`
	// DryRun renders markdown without writing it.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ConvertDirectoryCommand) Type() string { return convertDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd ConvertDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("nb2hugo.convert.directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
