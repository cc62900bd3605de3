package notebook

import (
	"encoding/json"
	"errors"
	"os"
	"reflect"
	"testing"

	"github.com/goliatone/go-nb2hugo/pkg/interfaces"
)

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}

func TestDecodeJoinsMultilineFields(t *testing.T) {
	nb, err := Decode(readFixture(t, "testdata/post.ipynb"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if nb.Format != 4 || nb.FormatMinor != 5 {
		t.Fatalf("unexpected format %d.%d", nb.Format, nb.FormatMinor)
	}
	if len(nb.Cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(nb.Cells))
	}

	first := nb.Cells[0]
	if first.Kind != interfaces.CellRaw {
		t.Fatalf("expected raw first cell, got %q", first.Kind)
	}
	wantSource := "title = \"Hello Notebook\"\ndate = 2024-05-01\ntags = [\"go\", \"jupyter\"]\n<!--eofm-->\nShort intro shown before the first cell."
	if first.Source != wantSource {
		t.Fatalf("unexpected raw source %q", first.Source)
	}

	if nb.Cells[1].Source != "## Setup" {
		t.Fatalf("expected string source to decode verbatim, got %q", nb.Cells[1].Source)
	}

	code := nb.Cells[2]
	if code.ID != "c0ffee" || code.ExecutionCount == nil || *code.ExecutionCount != 1 {
		t.Fatalf("unexpected code cell header %+v", code)
	}
	if len(code.Outputs) != 2 || code.Outputs[0].Text != "hello\nworld\n" {
		t.Fatalf("unexpected outputs %+v", code.Outputs)
	}
	if text, ok := MimeText(code.Outputs[1].Data, "text/plain"); !ok || text != "42" {
		t.Fatalf("expected text/plain 42, got %q %v", text, ok)
	}
}

func TestDecodeRejectsLegacyFormat(t *testing.T) {
	_, err := Decode(readFixture(t, "testdata/legacy.ipynb"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`{"cells": [`))
	if !errors.Is(err, ErrNotebookInvalid) {
		t.Fatalf("expected ErrNotebookInvalid, got %v", err)
	}
}

func TestEncodeRoundTripPreservesCells(t *testing.T) {
	nb, err := Decode(readFixture(t, "testdata/post.ipynb"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	data, err := Encode(nb)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := ValidateStructure(data); err != nil {
		t.Fatalf("encoded notebook failed validation: %v", err)
	}

	again, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode encoded: %v", err)
	}
	if len(again.Cells) != len(nb.Cells) {
		t.Fatalf("cell count changed: %d vs %d", len(again.Cells), len(nb.Cells))
	}
	for i := range nb.Cells {
		if again.Cells[i].Kind != nb.Cells[i].Kind || again.Cells[i].Source != nb.Cells[i].Source {
			t.Fatalf("cell %d changed: %+v vs %+v", i, again.Cells[i], nb.Cells[i])
		}
	}
}

func TestEncodeWritesLineLists(t *testing.T) {
	nb := &interfaces.Notebook{Cells: []interfaces.Cell{interfaces.NewRawCell("+++\ntitle = 1\n+++\n")}}

	data, err := Encode(nb)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var doc struct {
		Cells []struct {
			Source []string `json:"source"`
		} `json:"cells"`
		NBFormat int `json:"nbformat"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.NBFormat != MinFormat {
		t.Fatalf("expected default nbformat, got %d", doc.NBFormat)
	}
	want := []string{"+++\n", "title = 1\n", "+++\n"}
	if !reflect.DeepEqual(doc.Cells[0].Source, want) {
		t.Fatalf("unexpected source lines %q", doc.Cells[0].Source)
	}
}

func TestSplitLines(t *testing.T) {
	cases := map[string][]string{
		"":        {},
		"a":       {"a"},
		"a\n":     {"a\n"},
		"a\nb":    {"a\n", "b"},
		"\n\nx\n": {"\n", "\n", "x\n"},
	}
	for input, want := range cases {
		if got := SplitLines(input); !reflect.DeepEqual(got, want) {
			t.Fatalf("SplitLines(%q) = %q, want %q", input, got, want)
		}
	}
}
