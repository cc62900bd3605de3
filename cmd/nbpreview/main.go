package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-nb2hugo"
	"github.com/goliatone/go-nb2hugo/cmd/internal/bootstrap"
	"github.com/goliatone/go-nb2hugo/internal/markdown"
	"github.com/goliatone/go-nb2hugo/internal/notebook"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runPreview(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("nbpreview: %v", err)
	}
}

func runPreview(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("nbpreview", flag.ExitOnError)
	options := bootstrap.RegisterFlags(fs)
	file := fs.String("file", "", "Notebook to preview, relative to the content directory")
	renderHTML := fs.Bool("render-html", true, "Render the markdown body into HTML")
	emitNotebook := fs.String("emit-notebook", "", "Write the preprocessed notebook to this .ipynb path")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*file) == "" {
		return errors.New("-file is required")
	}

	module, err := moduleBuilder(options())
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	result, err := module.Module.Convert(context.Background(), *file, nb2hugo.ConvertOptions{DryRun: true})
	if err != nil {
		return fmt.Errorf("convert notebook: %w", err)
	}

	emitTarget := strings.TrimSpace(*emitNotebook)
	if emitTarget != "" {
		encoded, err := notebook.Encode(result.Notebook)
		if err != nil {
			return fmt.Errorf("encode notebook: %w", err)
		}
		if err := os.WriteFile(emitTarget, encoded, 0o644); err != nil {
			return fmt.Errorf("write notebook: %w", err)
		}
	}

	fields, body, err := markdown.ParseFrontMatter(result.Markdown)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Path: %s\nNotebook: %s\nChecksum: %s\nOutput: %s\n", result.SourcePath, result.NotebookID, result.Checksum, result.OutputPath)
	if emitTarget != "" {
		fmt.Fprintf(stdout, "Preprocessed: %s\n", emitTarget)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(stdout, "Warning: %v\n", warning)
	}
	fmt.Fprintln(stdout)

	if len(fields) > 0 {
		encoded, err := json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return fmt.Errorf("encode frontmatter: %w", err)
		}
		fmt.Fprintf(stdout, "Frontmatter:\n%s\n\n", encoded)
	}

	if *renderHTML {
		html, err := module.Module.MarkdownParser().Parse(body)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		fmt.Fprintf(stdout, "Rendered HTML:\n%s\n", html)
		return nil
	}
	fmt.Fprintf(stdout, "Markdown Body:\n%s\n", body)
	return nil
}
