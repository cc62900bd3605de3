package markdown

import (
	"os"
	"strings"
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

func TestParseFrontMatterReadsTOMLBlock(t *testing.T) {
	fields, body, err := ParseFrontMatter(readFixture(t, "testdata/exported.md"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fields["title"] != "Hello Notebook" {
		t.Fatalf("expected title, got %#v", fields["title"])
	}
	tags, ok := fields["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "go" {
		t.Fatalf("expected tags, got %#v", fields["tags"])
	}
	if !strings.Contains(string(body), "## Setup") || strings.Contains(string(body), "+++") {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestParseFrontMatterWithoutBlock(t *testing.T) {
	fields, body, err := ParseFrontMatter([]byte("# Plain"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if len(fields) != 0 {
		t.Fatalf("expected no fields, got %#v", fields)
	}
	if string(body) != "# Plain" {
		t.Fatalf("expected body to be returned as is, got %q", body)
	}
}

func TestGoldmarkParser_Parse(t *testing.T) {
	html, err := NewGoldmarkParser(interfaces.ParseOptions{}).Parse([]byte("# Heading\n\nHello **world**"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "Heading</h1>") {
		t.Fatalf("expected <h1>Heading</h1>, got %q", got)
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Fatalf("expected <strong>, got %q", got)
	}
}

func TestGoldmarkParser_HardWraps(t *testing.T) {
	html, err := NewGoldmarkParser(interfaces.ParseOptions{}).ParseWithOptions([]byte("line one\nline two"), interfaces.ParseOptions{HardWraps: true})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if !strings.Contains(string(html), "line one<br>") {
		t.Fatalf("expected hard wraps, got %q", html)
	}
}

func TestGoldmarkParser_SafeModeDropsRawHTML(t *testing.T) {
	source := []byte("<div class=\"x\">raw</div>")

	unsafe, _ := NewGoldmarkParser(interfaces.ParseOptions{}).Parse(source)
	if !strings.Contains(string(unsafe), "<div class=\"x\">") {
		t.Fatalf("expected raw HTML by default, got %q", unsafe)
	}

	safe, _ := NewGoldmarkParser(interfaces.ParseOptions{SafeMode: true}).Parse(source)
	if strings.Contains(string(safe), "<div class=\"x\">") {
		t.Fatalf("expected raw HTML to be omitted, got %q", safe)
	}
}

func TestCollectExtensions(t *testing.T) {
	if got := collectExtensions(nil); len(got) != 1 {
		t.Fatalf("expected GFM default, got %d extensions", len(got))
	}
	if got := collectExtensions([]string{"table", "TABLE", "unknown", "footnote"}); len(got) != 2 {
		t.Fatalf("expected deduplicated known extensions, got %d", len(got))
	}
	if !KnownExtension(" Linkify ") || KnownExtension("emoji") {
		t.Fatal("unexpected KnownExtension result")
	}
}
