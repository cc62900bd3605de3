package notebook

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/nbformat.v4.schema.json
var nbformatSchema []byte

const schemaResource = "nbformat.v4.schema.json"

// ErrStructureInvalid wraps structural validation failures.
var ErrStructureInvalid = errors.New("notebook: structure validation failed")

// ValidationIssue is one schema violation, located by JSON pointer.
type ValidationIssue struct {
	Location string
	Message  string
}

// StructureError lists every issue found in a notebook file.
type StructureError struct {
	Issues []ValidationIssue
}

func (e *StructureError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := issue.Location
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return ErrStructureInvalid.Error() + ": " + strings.Join(parts, "; ")
}

func (e *StructureError) Unwrap() error {
	return ErrStructureInvalid
}

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func structureSchema() (*jsonschema.Schema, error) {
	compiledOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft7
		if err := compiler.AddResource(schemaResource, bytes.NewReader(nbformatSchema)); err != nil {
			compileErr = fmt.Errorf("notebook: load schema: %w", err)
			return
		}
		compiledSchema, compileErr = compiler.Compile(schemaResource)
	})
	return compiledSchema, compileErr
}

// ValidateStructure checks that data is shaped like an nbformat v4 notebook.
// Cell contents, including any front matter, are not inspected.
func ValidateStructure(data []byte) error {
	schema, err := structureSchema()
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrNotebookInvalid, err)
	}

	if err := schema.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return &StructureError{Issues: collectIssues(validationErr)}
		}
		return fmt.Errorf("%w: %v", ErrStructureInvalid, err)
	}
	return nil
}

func collectIssues(err *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
