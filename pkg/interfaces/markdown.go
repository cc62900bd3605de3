package interfaces

// MarkdownParser converts markdown bytes into HTML. nbpreview uses it to
// show what Hugo would render for an exported notebook.
type MarkdownParser interface {
	// Parse converts markdown using the parser defaults.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts markdown using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises markdown rendering. Field names stay readable so
// they map cleanly onto config files and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// Exporter turns a processed notebook into the bytes written to disk.
type Exporter interface {
	Export(nb *Notebook) ([]byte, error)
}
