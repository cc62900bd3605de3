package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestNotebookUUIDIsStable(t *testing.T) {
	first := NotebookUUID("posts/intro.ipynb")
	second := NotebookUUID("posts/./intro.ipynb")
	if first == uuid.Nil {
		t.Fatal("expected non-nil id")
	}
	if first != second {
		t.Fatalf("expected cleaned paths to share an id, got %s and %s", first, second)
	}
	if other := NotebookUUID("posts/other.ipynb"); other == first {
		t.Fatal("expected different notebooks to get different ids")
	}
}

func TestBlankKeysMapToNil(t *testing.T) {
	if UUID("  ") != uuid.Nil || NotebookUUID("") != uuid.Nil {
		t.Fatal("expected uuid.Nil for blank input")
	}
}
