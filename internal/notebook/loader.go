package notebook

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-nb2hugo/pkg/interfaces"
)

const (
	defaultPattern = "*.ipynb"
	checkpointsDir = ".ipynb_checkpoints"
)

// LoaderConfig configures notebook discovery.
type LoaderConfig struct {
	// BasePath is the directory fs is rooted at. Absolute paths passed to the
	// loader are made relative to it.
	BasePath string
	// Pattern filters discovered files (defaults to "*.ipynb"). Patterns
	// containing "/" match the full relative path, others the base name.
	Pattern string
	// Recursive controls whether sub-directories are walked.
	Recursive bool
}

// LoadParams override loader defaults for a single call.
type LoadParams struct {
	Pattern   string
	Recursive *bool
}

// Loaded is a decoded notebook along with the bytes it was read from.
type Loaded struct {
	Path     string
	Notebook *interfaces.Notebook
	Source   []byte
	Checksum []byte
	ModTime  time.Time
}

// Loader reads notebooks from an fs.FS.
type Loader struct {
	fs        fs.FS
	basePath  string
	pattern   string
	recursive bool
}

// NewLoader returns a loader over filesystem.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = defaultPattern
	}
	basePath := strings.TrimSpace(cfg.BasePath)
	if basePath != "" {
		basePath = filepath.Clean(basePath)
	}
	return &Loader{
		fs:        filesystem,
		basePath:  basePath,
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// LoadFile reads and decodes one notebook.
func (l *Loader) LoadFile(ctx context.Context, name string) (*Loaded, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel, err := l.relative(name)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("notebook loader read %s: %w", rel, err)
	}
	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("notebook loader stat %s: %w", rel, err)
	}

	nb, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("notebook loader decode %s: %w", rel, err)
	}

	sum := sha256.Sum256(data)
	return &Loaded{
		Path:     rel,
		Notebook: nb,
		Source:   data,
		Checksum: sum[:],
		ModTime:  info.ModTime(),
	}, nil
}

// Discover lists matching notebook paths under dir without reading them.
func (l *Loader) Discover(ctx context.Context, dir string, params LoadParams) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := l.relative(dir)
	if err != nil {
		return nil, err
	}

	recursive := l.recursive
	if params.Recursive != nil {
		recursive = *params.Recursive
	}
	pattern := strings.TrimSpace(params.Pattern)
	if pattern == "" {
		pattern = l.pattern
	}

	var paths []string
	walkErr := fs.WalkDir(l.fs, root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if p == root {
				return nil
			}
			if !recursive || d.Name() == checkpointsDir {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if matches(pattern, p) {
			paths = append(paths, p)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("notebook loader walk %s: %w", root, walkErr)
	}

	sort.Strings(paths)
	return paths, nil
}

func matches(pattern, p string) bool {
	pattern = strings.ReplaceAll(filepath.ToSlash(pattern), "**/", "")
	target := path.Base(p)
	if strings.Contains(pattern, "/") {
		target = p
	}
	ok, err := path.Match(pattern, target)
	return err == nil && ok
}

func (l *Loader) relative(name string) (string, error) {
	clean := filepath.Clean(strings.TrimSpace(name))
	if filepath.IsAbs(clean) {
		if l.basePath == "" {
			return "", fmt.Errorf("notebook loader: absolute path %s provided without base path", name)
		}
		rel, err := filepath.Rel(l.basePath, clean)
		if err != nil {
			return "", fmt.Errorf("notebook loader: make relative %s: %w", name, err)
		}
		clean = rel
	}
	clean = filepath.ToSlash(clean)
	if clean == "" {
		clean = "."
	}
	if !fs.ValidPath(clean) {
		return "", fmt.Errorf("notebook loader: path %s escapes base path", name)
	}
	return clean, nil
}
