package exporter

import (
	"bytes"
	"strings"

	"github.com/goliatone/go-nb2hugo/internal/notebook"
	"github.com/goliatone/go-nb2hugo/pkg/interfaces"
)

const fence = "```"

// Config controls markdown export.
type Config struct {
	// DefaultLanguage tags code fences when the notebook metadata names no
	// language.
	DefaultLanguage string
	// SkipOutputs drops code cell outputs.
	SkipOutputs bool
}

// MarkdownExporter writes notebooks as Hugo content files. Raw and markdown
// cells are copied verbatim, so a leading front matter cell becomes the
// page's front matter.
type MarkdownExporter struct {
	cfg Config
}

var _ interfaces.Exporter = (*MarkdownExporter)(nil)

// NewMarkdownExporter returns an exporter using cfg.
func NewMarkdownExporter(cfg Config) *MarkdownExporter {
	return &MarkdownExporter{cfg: cfg}
}

// Export renders nb as markdown. Blocks are separated by a blank line and
// the output ends with a single newline.
func (e *MarkdownExporter) Export(nb *interfaces.Notebook) ([]byte, error) {
	if nb == nil {
		return nil, nil
	}

	language := e.language(nb.Metadata)
	blocks := make([]string, 0, len(nb.Cells))
	for _, cell := range nb.Cells {
		var block string
		switch cell.Kind {
		case interfaces.CellRaw, interfaces.CellMarkdown:
			block = cell.Source
		case interfaces.CellCode:
			block = e.codeBlock(cell, language)
		default:
			continue
		}
		if block = strings.TrimRight(block, "\n"); block != "" {
			blocks = append(blocks, block)
		}
	}

	if len(blocks) == 0 {
		return []byte{}, nil
	}
	var buf bytes.Buffer
	buf.WriteString(strings.Join(blocks, "\n\n"))
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (e *MarkdownExporter) codeBlock(cell interfaces.Cell, language string) string {
	parts := []string{}
	if source := strings.TrimRight(cell.Source, "\n"); source != "" {
		parts = append(parts, fenced(language, source))
	}
	if e.cfg.SkipOutputs {
		return strings.Join(parts, "\n\n")
	}
	for _, output := range cell.Outputs {
		if text := outputText(output); text != "" {
			parts = append(parts, fenced("", text))
		}
	}
	return strings.Join(parts, "\n\n")
}

func outputText(output interfaces.Output) string {
	var text string
	switch output.OutputType {
	case "stream":
		text = output.Text
	case "execute_result", "display_data":
		text, _ = notebook.MimeText(output.Data, "text/plain")
	case "error":
		text = output.EName + ": " + output.EValue
	}
	return strings.TrimRight(text, "\n")
}

func fenced(language, body string) string {
	return fence + language + "\n" + body + "\n" + fence
}

// language looks up language_info.name, then kernelspec.language.
func (e *MarkdownExporter) language(metadata map[string]any) string {
	if name := nestedString(metadata, "language_info", "name"); name != "" {
		return name
	}
	if name := nestedString(metadata, "kernelspec", "language"); name != "" {
		return name
	}
	return e.cfg.DefaultLanguage
}

func nestedString(metadata map[string]any, section, key string) string {
	inner, ok := metadata[section].(map[string]any)
	if !ok {
		return ""
	}
	value, _ := inner[key].(string)
	return strings.TrimSpace(value)
}
