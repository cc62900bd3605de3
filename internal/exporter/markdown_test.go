package exporter

import (
	"testing"

	"github.com/goliatone/go-nb2hugo/pkg/interfaces"
)

func intPtr(v int) *int { return &v }

func TestExportRendersCells(t *testing.T) {
	nb := &interfaces.Notebook{
		Metadata: map[string]any{"language_info": map[string]any{"name": "python"}},
		Cells: []interfaces.Cell{
			interfaces.NewRawCell("+++\ntitle = \"X\"\n\n+++\n"),
			{Kind: interfaces.CellMarkdown, Source: "## Setup\n"},
			{
				Kind:           interfaces.CellCode,
				Source:         "print(1)\n1/0",
				ExecutionCount: intPtr(1),
				Outputs: []interfaces.Output{
					{OutputType: "stream", Name: "stdout", Text: "1\n"},
					{OutputType: "error", EName: "ZeroDivisionError", EValue: "division by zero"},
				},
			},
			{Kind: interfaces.CellKind("widget"), Source: "ignored"},
		},
	}

	got, err := NewMarkdownExporter(Config{}).Export(nb)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	want := "+++\ntitle = \"X\"\n\n+++\n\n" +
		"## Setup\n\n" +
		"```python\nprint(1)\n1/0\n```\n\n" +
		"```\n1\n```\n\n" +
		"```\nZeroDivisionError: division by zero\n```\n"
	if string(got) != want {
		t.Fatalf("unexpected markdown\nwant: %q\ngot:  %q", want, string(got))
	}
}

func TestExportUsesKernelspecThenDefault(t *testing.T) {
	cell := interfaces.Cell{Kind: interfaces.CellCode, Source: "x"}

	nb := &interfaces.Notebook{
		Metadata: map[string]any{"kernelspec": map[string]any{"language": "julia"}},
		Cells:    []interfaces.Cell{cell},
	}
	got, _ := NewMarkdownExporter(Config{DefaultLanguage: "text"}).Export(nb)
	if string(got) != "```julia\nx\n```\n" {
		t.Fatalf("expected kernelspec language, got %q", got)
	}

	nb.Metadata = nil
	got, _ = NewMarkdownExporter(Config{DefaultLanguage: "text"}).Export(nb)
	if string(got) != "```text\nx\n```\n" {
		t.Fatalf("expected default language, got %q", got)
	}
}

func TestExportSkipOutputs(t *testing.T) {
	nb := &interfaces.Notebook{Cells: []interfaces.Cell{{
		Kind:    interfaces.CellCode,
		Source:  "x",
		Outputs: []interfaces.Output{{OutputType: "execute_result", Data: map[string]any{"text/plain": []any{"4", "2"}}}},
	}}}

	got, _ := NewMarkdownExporter(Config{}).Export(nb)
	if string(got) != "```\nx\n```\n\n```\n42\n```\n" {
		t.Fatalf("expected result output, got %q", got)
	}

	got, _ = NewMarkdownExporter(Config{SkipOutputs: true}).Export(nb)
	if string(got) != "```\nx\n```\n" {
		t.Fatalf("expected outputs to be skipped, got %q", got)
	}
}

func TestExportEmptyNotebook(t *testing.T) {
	got, err := NewMarkdownExporter(Config{}).Export(&interfaces.Notebook{})
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty export, got %q %v", got, err)
	}
}
