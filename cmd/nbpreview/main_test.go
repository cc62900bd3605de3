package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-nb2hugo/internal/notebook"
	"github.com/goliatone/go-nb2hugo/pkg/interfaces"
)

const postNotebook = `{
 "cells": [
  {"cell_type": "raw", "metadata": {}, "source": "title = \"Preview\"\ndraft = true\n<!--eofm-->"},
  {"cell_type": "markdown", "metadata": {}, "source": "Some *emphasis*."}
 ],
 "metadata": {},
 "nbformat": 4,
 "nbformat_minor": 5
}`

func previewArgs(t *testing.T, extra ...string) []string {
	t.Helper()
	content := t.TempDir()
	if err := os.WriteFile(filepath.Join(content, "post.ipynb"), []byte(postNotebook), 0o644); err != nil {
		t.Fatalf("write notebook: %v", err)
	}
	args := []string{
		"-content-dir", content,
		"-output-dir", t.TempDir(),
		"-log-provider", "none",
		"-file", "post.ipynb",
	}
	return append(args, extra...)
}

func TestRunPreviewRendersFrontMatterAndHTML(t *testing.T) {
	var stdout bytes.Buffer
	if err := runPreview(previewArgs(t), &stdout); err != nil {
		t.Fatalf("runPreview returned error: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{
		"Path: post.ipynb",
		`"title": "Preview"`,
		`"draft": true`,
		"<p>Some <em>emphasis</em>.</p>",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRunPreviewMarkdownBody(t *testing.T) {
	var stdout bytes.Buffer
	if err := runPreview(previewArgs(t, "-render-html=false"), &stdout); err != nil {
		t.Fatalf("runPreview returned error: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "Markdown Body:") || !strings.Contains(out, "Some *emphasis*.") {
		t.Fatalf("expected markdown body, got:\n%s", out)
	}
	if strings.Contains(out, "<p>") {
		t.Fatalf("expected no html when rendering is disabled, got:\n%s", out)
	}
}

func TestRunPreviewEmitsPreprocessedNotebook(t *testing.T) {
	target := filepath.Join(t.TempDir(), "post.preprocessed.ipynb")

	var stdout bytes.Buffer
	if err := runPreview(previewArgs(t, "-emit-notebook", target), &stdout); err != nil {
		t.Fatalf("runPreview returned error: %v", err)
	}
	if !strings.Contains(stdout.String(), "Preprocessed: "+target) {
		t.Fatalf("expected emitted path in output, got:\n%s", stdout.String())
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read emitted notebook: %v", err)
	}
	nb, err := notebook.Decode(data)
	if err != nil {
		t.Fatalf("decode emitted notebook: %v", err)
	}
	if len(nb.Cells) != 2 || nb.Cells[0].Kind != interfaces.CellRaw {
		t.Fatalf("expected front matter cell followed by markdown, got %+v", nb.Cells)
	}
	if !strings.HasPrefix(nb.Cells[0].Source, "+++\n") || strings.Contains(nb.Cells[0].Source, "<!--eofm-->") {
		t.Fatalf("expected wrapped front matter without divider, got %q", nb.Cells[0].Source)
	}
}

func TestRunPreviewRequiresFile(t *testing.T) {
	if err := runPreview([]string{"-log-provider", "none"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error when -file is missing")
	}
}
