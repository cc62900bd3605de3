package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-nb2hugo/internal/logging"
	"github.com/goliatone/go-nb2hugo/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)

	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
	})

	logger := provider.GetLogger("nb2hugo.frontmatter")
	logger = logging.WithFields(logger, map[string]any{"module": "nb2hugo.frontmatter"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{"run_id": "run-1"})
	logger = logger.WithContext(ctx)

	logger.Warn("frontmatter.missing",
		"notebook_path", "posts/intro.ipynb",
		"error", errors.New("notebook does not have a front matter"),
	)

	got := strings.TrimSpace(buf.String())
	want := `2024-03-14T15:09:26.535897Z WARN frontmatter.missing error="notebook does not have a front matter" logger=nb2hugo.frontmatter module=nb2hugo.frontmatter notebook_path=posts/intro.ipynb run_id=run-1`
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{Writer: &buf, MinLevel: &minLevel})

	logger := provider.GetLogger("nb2hugo.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Info("included.info", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.info") {
		t.Fatalf("expected info log to be written, got %s", lines[0])
	}
}

func TestConsoleLogger_DanglingArgument(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf})

	provider.GetLogger("x").Info("msg", "k", 1, "orphan")

	got := buf.String()
	if !strings.Contains(got, "k=1") || !strings.Contains(got, "field_1=orphan") {
		t.Fatalf("expected paired and positional fields, got %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, ok := console.ParseLevel("WARNING"); !ok || lvl != console.LevelWarn {
		t.Fatalf("expected warn level, got %v %v", lvl, ok)
	}
	if _, ok := console.ParseLevel("loud"); ok {
		t.Fatal("expected unknown level to be rejected")
	}
}
