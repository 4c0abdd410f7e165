// Command marginalia applies the content-annotation engine to a static
// site: it rewrites Defined Terms into glossary links, formats dropcaps,
// and builds the internal page excerpts table popup previews read.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/haslan/marginalia"
	"github.com/haslan/marginalia/fs"
	mgoquery "github.com/haslan/marginalia/goquery"
	mhttp "github.com/haslan/marginalia/http"
	mslog "github.com/haslan/marginalia/slog"
)

func main() {
	ctx := context.Background()

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("marginalia"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'marginalia --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Annotator = mslog.NewLoggingAnnotator(mgoquery.NewAnnotator(), deps.Logger)
	deps.Dropcaps = mgoquery.NewDropcap()
	deps.Registries = func(location string) marginalia.RegistrySource {
		loader := &marginalia.RegistryLoader{
			Fetcher: glossaryFetcher(location),
			Parser:  mgoquery.NewGlossaryParser(),
		}
		return mslog.NewLoggingRegistrySource(loader, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// glossaryFetcher selects HTTP or file retrieval from the location's shape.
func glossaryFetcher(location string) marginalia.GlossaryFetcher {
	if strings.Contains(location, "://") {
		return mhttp.NewFetcher()
	}
	return fs.NewSource()
}
