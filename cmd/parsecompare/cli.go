package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/parsecompare"
)

// DefaultPort is used when neither --port nor PORT is set.
const DefaultPort = 3000

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Comparer  parsecompare.ComparisonService
	Converter parsecompare.Converter
}

// Config holds the process-wide settings of the server. It is built once from
// the command line and environment and passed to the HTTP layer.
type Config struct {
	Port      int
	StaticDir string
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Serve   ServeCmd   `cmd:"" help:"Serve the comparison API and web client"`
	Compare CompareCmd `cmd:"" help:"Compare both engines on a single URL and print the result"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Port      int    `short:"p" env:"PORT" default:"3000" help:"Port to listen on"`
	StaticDir string `name:"static-dir" default:"static" help:"Directory of static files served at /"`
}

// CompareCmd is the "compare" subcommand.
type CompareCmd struct {
	URL       string `arg:"" help:"Page URL to compare"`
	UserAgent string `name:"user-agent" short:"u" help:"User-Agent for the shared fetch"`
	Markdown  bool   `short:"m" help:"Render successful content as Markdown"`
	NoImages  bool   `name:"no-images" help:"Drop images from Markdown output"`
}
