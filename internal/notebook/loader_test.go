package notebook

import (
	"context"
	"testing"
	"testing/fstest"
	"time"
)

const minimalNotebook = `{"cells": [], "metadata": {}, "nbformat": 4, "nbformat_minor": 5}`

func testFS() fstest.MapFS {
	modified := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	file := func(data string) *fstest.MapFile {
		return &fstest.MapFile{Data: []byte(data), ModTime: modified}
	}
	return fstest.MapFS{
		"posts/b.ipynb":        file(minimalNotebook),
		"posts/a.ipynb":        file(minimalNotebook),
		"posts/notes.md":       file("# not a notebook"),
		"posts/drafts/c.ipynb": file(minimalNotebook),

		"posts/.ipynb_checkpoints/a-checkpoint.ipynb": file(minimalNotebook),
	}
}

func TestLoaderLoadFileComputesChecksum(t *testing.T) {
	loader := NewLoader(testFS(), LoaderConfig{})

	loaded, err := loader.LoadFile(context.Background(), "posts/a.ipynb")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Path != "posts/a.ipynb" {
		t.Fatalf("unexpected path %q", loaded.Path)
	}
	if len(loaded.Checksum) != 32 {
		t.Fatalf("expected sha256 checksum, got %d bytes", len(loaded.Checksum))
	}
	if loaded.Notebook == nil || loaded.Notebook.Format != 4 {
		t.Fatalf("expected decoded notebook, got %+v", loaded.Notebook)
	}
	if loaded.ModTime.IsZero() {
		t.Fatal("expected modification time")
	}
}

func TestLoaderDiscoverRespectsRecursion(t *testing.T) {
	loader := NewLoader(testFS(), LoaderConfig{Recursive: true})

	paths, err := loader.Discover(context.Background(), "posts", LoadParams{})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{"posts/a.ipynb", "posts/b.ipynb", "posts/drafts/c.ipynb"}
	if len(paths) != len(want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, paths)
		}
	}

	flat := false
	paths, err = loader.Discover(context.Background(), "posts", LoadParams{Recursive: &flat})
	if err != nil {
		t.Fatalf("Discover flat: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected top-level notebooks only, got %v", paths)
	}
}

func TestLoaderDiscoverHonoursPattern(t *testing.T) {
	loader := NewLoader(testFS(), LoaderConfig{Recursive: true})

	paths, err := loader.Discover(context.Background(), ".", LoadParams{Pattern: "a*.ipynb"})
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(paths) != 1 || paths[0] != "posts/a.ipynb" {
		t.Fatalf("expected only a.ipynb, got %v", paths)
	}
}

func TestLoaderRejectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewLoader(testFS(), LoaderConfig{}).LoadFile(ctx, "posts/a.ipynb"); err == nil {
		t.Fatal("expected context error")
	}
}

func TestLoaderRejectsEscapingPath(t *testing.T) {
	if _, err := NewLoader(testFS(), LoaderConfig{}).LoadFile(context.Background(), "../secret.ipynb"); err == nil {
		t.Fatal("expected escaping path to be rejected")
	}
}

func TestLoaderRejectsAbsolutePathWithoutBase(t *testing.T) {
	if _, err := NewLoader(testFS(), LoaderConfig{}).LoadFile(context.Background(), "/abs/a.ipynb"); err == nil {
		t.Fatal("expected absolute path without base to fail")
	}
}
