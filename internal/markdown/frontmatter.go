package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// ParseFrontMatter splits source into its front matter fields and body.
// TOML (+++), YAML (---) and JSON blocks are recognised. A document without
// front matter yields an empty map and the full source as body.
func ParseFrontMatter(source []byte) (map[string]any, []byte, error) {
	fields := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &fields)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return fields, body, nil
}
