package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const draftNotebook = `{
 "cells": [
  {"cell_type": "raw", "metadata": {}, "source": "title = \"Draft\"\n<!--eofm-->"},
  {"cell_type": "markdown", "metadata": {}, "source": "Hello."}
 ],
 "metadata": {},
 "nbformat": 4,
 "nbformat_minor": 5
}`

const scratchNotebook = `{
 "cells": [{"cell_type": "markdown", "metadata": {}, "source": "scratch"}],
 "metadata": {},
 "nbformat": 4,
 "nbformat_minor": 5
}`

func writeNotebooks(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range map[string]string{
		"draft.ipynb":   draftNotebook,
		"scratch.ipynb": scratchNotebook,
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestRunConvertSingleFile(t *testing.T) {
	content := writeNotebooks(t)
	output := t.TempDir()
	var stdout bytes.Buffer

	err := runConvert([]string{
		"-content-dir", content,
		"-output-dir", output,
		"-log-provider", "none",
		"-file", "draft.ipynb",
	}, &stdout)
	if err != nil {
		t.Fatalf("runConvert returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(output, "draft.md"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if want := "+++\ntitle = \"Draft\"\n\n+++\n\nHello.\n"; string(data) != want {
		t.Fatalf("unexpected output %q", data)
	}
	if !strings.Contains(stdout.String(), "wrote draft.ipynb") {
		t.Fatalf("expected summary line, got %q", stdout.String())
	}
}

func TestRunConvertDirectoryDryRunReportsWarnings(t *testing.T) {
	content := writeNotebooks(t)
	output := t.TempDir()
	var stdout bytes.Buffer

	err := runConvert([]string{
		"-content-dir", content,
		"-output-dir", output,
		"-log-provider", "none",
		"-dry-run",
	}, &stdout)
	if err != nil {
		t.Fatalf("runConvert returned error: %v", err)
	}

	out := stdout.String()
	if !strings.Contains(out, "converted 2 notebook(s), 0 failed, 1 warning(s)") {
		t.Fatalf("unexpected summary %q", out)
	}
	if !strings.Contains(out, "warning: frontmatter: notebook does not have a front matter") {
		t.Fatalf("expected missing front matter warning, got %q", out)
	}
	entries, err := os.ReadDir(output)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected dry run to write nothing, got %d entries", len(entries))
	}
}

func TestRunConvertRejectsFileAndDirectory(t *testing.T) {
	err := runConvert([]string{"-file", "a.ipynb", "-directory", "posts"}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error when both -file and -directory are set")
	}
}
