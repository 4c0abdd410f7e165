package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/haslan/marginalia"
)

// Dependencies holds shared services and configuration for command
// execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// Annotator performs the scan-and-rewrite pass, wrapped with logging.
	Annotator marginalia.PageAnnotator

	// Dropcaps formats lead paragraphs when requested.
	Dropcaps marginalia.DropcapFormatter

	// Registries loads glossaries from files or URLs.
	Registries func(location string) marginalia.RegistrySource
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Annotate AnnotateCmd `cmd:"" help:"Annotate rendered pages with definition links"`
	Terms    TermsCmd    `cmd:"" help:"List the terms a glossary document defines"`
	Excerpts ExcerptsCmd `cmd:"" help:"Build the internal page excerpts table"`

	Verbose bool `short:"v" help:"Enable debug logging"`
}

// AnnotateCmd is the "annotate" subcommand.
type AnnotateCmd struct {
	Pages       []string `arg:"" help:"Rendered HTML pages to annotate"`
	Glossary    string   `short:"g" required:"" env:"MARGINALIA_GLOSSARY" help:"Glossary document (path or URL)"`
	Selector    []string `short:"s" help:"Content root selector (repeatable)"`
	SiteRoot    string   `short:"r" help:"Site root directory; page depth is inferred from it"`
	Depth       int      `short:"d" default:"0" help:"Page depth below site root when no site root is given"`
	Dropcap     bool     `help:"Apply the dropcap treatment to lead paragraphs"`
	All         bool     `help:"Annotate every non-overlapping match per text node"`
	Check       bool     `help:"Report matches without writing files"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent page limit"`
}

// TermsCmd is the "terms" subcommand.
type TermsCmd struct {
	Glossary string `arg:"" help:"Glossary document (path or URL)"`
}

// ExcerptsCmd is the "excerpts" subcommand.
type ExcerptsCmd struct {
	BaseURL     string  `arg:"" help:"Site base URL"`
	Out         string  `short:"o" default:"excerpts.yaml" help:"Output file"`
	RPS         float64 `default:"2" help:"Fetch rate limit per host"`
	Limit       int     `default:"200" help:"Maximum pages to visit"`
	Concurrency int     `short:"c" default:"4" help:"Concurrent fetch limit"`
}
