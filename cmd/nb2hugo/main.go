package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goliatone/go-nb2hugo/cmd/internal/bootstrap"
	convertcmd "github.com/goliatone/go-nb2hugo/internal/commands/convert"
	"github.com/goliatone/go-nb2hugo/internal/converter"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runConvert(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("nb2hugo: %v", err)
	}
}

func runConvert(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("nb2hugo", flag.ExitOnError)
	options := bootstrap.RegisterFlags(fs)
	file := fs.String("file", "", "Notebook to convert, relative to the content directory")
	directory := fs.String("directory", "", "Directory to convert, relative to the content directory (default: all)")
	dryRun := fs.Bool("dry-run", false, "Render markdown without writing files")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*file) != "" && strings.TrimSpace(*directory) != "" {
		return errors.New("-file and -directory are mutually exclusive")
	}

	module, err := moduleBuilder(options())
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	ctx := context.Background()

	if strings.TrimSpace(*file) != "" {
		handler := convertcmd.NewConvertNotebookHandler(module.Converter, module.Logger, func(_ context.Context, result *converter.Result) {
			printResult(stdout, result)
		})
		cmd := convertcmd.ConvertNotebookCommand{Path: *file, DryRun: *dryRun}
		if err := handler.Execute(ctx, cmd); err != nil {
			return fmt.Errorf("execute convert command: %w", err)
		}
		return nil
	}

	dir := strings.TrimSpace(*directory)
	if dir == "" {
		dir = "."
	}
	handler := convertcmd.NewConvertDirectoryHandler(module.Converter, module.Logger, func(_ context.Context, result *converter.DirectoryResult) {
		for _, r := range result.Results {
			printResult(stdout, r)
		}
		for _, err := range result.Errors {
			fmt.Fprintf(stdout, "failed: %v\n", err)
		}
		fmt.Fprintf(stdout, "converted %d notebook(s), %d failed, %d warning(s)\n",
			len(result.Results), len(result.Errors), len(result.Warnings()))
	})
	cmd := convertcmd.ConvertDirectoryCommand{Directory: dir, DryRun: *dryRun}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute convert command: %w", err)
	}
	return nil
}

func printResult(w io.Writer, result *converter.Result) {
	verb := "wrote"
	if !result.Written {
		verb = "dry-run"
	}
	fmt.Fprintf(w, "%s %s -> %s\n", verb, result.SourcePath, result.OutputPath)
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "  warning: %v\n", warning)
	}
}
