package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-nb2hugo/pkg/interfaces"
)

const (
	// MinFormat is the oldest nbformat major version the codec accepts.
	MinFormat = 4
	// DefaultFormatMinor is written when a notebook carries no minor version.
	DefaultFormatMinor = 5
)

var (
	ErrNotebookInvalid   = errors.New("notebook: invalid nbformat document")
	ErrUnsupportedFormat = errors.New("notebook: unsupported nbformat version")
)

// multiline decodes nbformat text fields, which may be a string or a list of
// line strings.
type multiline string

func (m *multiline) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = multiline(s)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	*m = multiline(strings.Join(lines, ""))
	return nil
}

type wireNotebook struct {
	Cells         []wireCell     `json:"cells"`
	Metadata      map[string]any `json:"metadata"`
	NBFormat      int            `json:"nbformat"`
	NBFormatMinor int            `json:"nbformat_minor"`
}

type wireCell struct {
	CellType       string         `json:"cell_type"`
	ID             string         `json:"id"`
	Metadata       map[string]any `json:"metadata"`
	Source         multiline      `json:"source"`
	ExecutionCount *int           `json:"execution_count"`
	Outputs        []wireOutput   `json:"outputs"`
	Attachments    map[string]any `json:"attachments"`
}

type wireOutput struct {
	OutputType     string         `json:"output_type"`
	Name           string         `json:"name"`
	Text           multiline      `json:"text"`
	Data           map[string]any `json:"data"`
	Metadata       map[string]any `json:"metadata"`
	ExecutionCount *int           `json:"execution_count"`
	EName          string         `json:"ename"`
	EValue         string         `json:"evalue"`
	Traceback      []string       `json:"traceback"`
}

// Decode parses an nbformat v4 JSON document.
func Decode(data []byte) (*interfaces.Notebook, error) {
	var wire wireNotebook
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotebookInvalid, err)
	}
	if wire.NBFormat < MinFormat {
		return nil, fmt.Errorf("%w: nbformat %d", ErrUnsupportedFormat, wire.NBFormat)
	}

	nb := &interfaces.Notebook{
		Cells:       make([]interfaces.Cell, 0, len(wire.Cells)),
		Metadata:    orEmpty(wire.Metadata),
		Format:      wire.NBFormat,
		FormatMinor: wire.NBFormatMinor,
	}
	for _, wc := range wire.Cells {
		nb.Cells = append(nb.Cells, decodeCell(wc))
	}
	return nb, nil
}

func decodeCell(wc wireCell) interfaces.Cell {
	cell := interfaces.Cell{
		Kind:           interfaces.CellKind(wc.CellType),
		ID:             wc.ID,
		Metadata:       orEmpty(wc.Metadata),
		Source:         string(wc.Source),
		ExecutionCount: wc.ExecutionCount,
		Attachments:    wc.Attachments,
	}
	if len(wc.Outputs) > 0 {
		cell.Outputs = make([]interfaces.Output, 0, len(wc.Outputs))
		for _, wo := range wc.Outputs {
			cell.Outputs = append(cell.Outputs, interfaces.Output{
				OutputType:     wo.OutputType,
				Name:           wo.Name,
				Text:           string(wo.Text),
				Data:           wo.Data,
				Metadata:       wo.Metadata,
				ExecutionCount: wo.ExecutionCount,
				EName:          wo.EName,
				EValue:         wo.EValue,
				Traceback:      wo.Traceback,
			})
		}
	}
	return cell
}

// Encode writes nb as nbformat v4 JSON. Keys are sorted and text fields are
// split into line lists, matching what Jupyter itself writes.
func Encode(nb *interfaces.Notebook) ([]byte, error) {
	if nb == nil {
		return nil, fmt.Errorf("%w: nil notebook", ErrNotebookInvalid)
	}

	format, minor := nb.Format, nb.FormatMinor
	if format < MinFormat {
		format, minor = MinFormat, DefaultFormatMinor
	}

	cells := make([]map[string]any, 0, len(nb.Cells))
	for _, cell := range nb.Cells {
		cells = append(cells, encodeCell(cell))
	}

	doc := map[string]any{
		"cells":          cells,
		"metadata":       orEmpty(nb.Metadata),
		"nbformat":       format,
		"nbformat_minor": minor,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("notebook: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeCell(cell interfaces.Cell) map[string]any {
	out := map[string]any{
		"cell_type": string(cell.Kind),
		"metadata":  orEmpty(cell.Metadata),
		"source":    SplitLines(cell.Source),
	}
	if cell.ID != "" {
		out["id"] = cell.ID
	}
	if len(cell.Attachments) > 0 {
		out["attachments"] = cell.Attachments
	}
	if cell.Kind == interfaces.CellCode {
		out["execution_count"] = cell.ExecutionCount
		outputs := make([]map[string]any, 0, len(cell.Outputs))
		for _, output := range cell.Outputs {
			outputs = append(outputs, encodeOutput(output))
		}
		out["outputs"] = outputs
	}
	return out
}

func encodeOutput(output interfaces.Output) map[string]any {
	out := map[string]any{"output_type": output.OutputType}
	switch output.OutputType {
	case "stream":
		out["name"] = output.Name
		out["text"] = SplitLines(output.Text)
	case "error":
		out["ename"] = output.EName
		out["evalue"] = output.EValue
		out["traceback"] = orEmptySlice(output.Traceback)
	default:
		out["data"] = orEmpty(output.Data)
		out["metadata"] = orEmpty(output.Metadata)
		if output.OutputType == "execute_result" {
			out["execution_count"] = output.ExecutionCount
		}
	}
	return out
}

// SplitLines splits s after every newline, keeping the newline on each line.
func SplitLines(s string) []string {
	lines := []string{}
	for s != "" {
		idx := strings.IndexByte(s, '\n')
		if idx < 0 {
			lines = append(lines, s)
			break
		}
		lines = append(lines, s[:idx+1])
		s = s[idx+1:]
	}
	return lines
}

// MimeText returns the text stored under mime in an output data bundle,
// joining line lists.
func MimeText(data map[string]any, mime string) (string, bool) {
	value, ok := data[mime]
	if !ok {
		return "", false
	}
	switch v := value.(type) {
	case string:
		return v, true
	case []any:
		var b strings.Builder
		for _, line := range v {
			s, ok := line.(string)
			if !ok {
				return "", false
			}
			b.WriteString(s)
		}
		return b.String(), true
	case []string:
		return strings.Join(v, ""), true
	default:
		return "", false
	}
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

func orEmptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
