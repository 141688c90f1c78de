package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/parsecompare"
	"github.com/fwojciec/parsecompare/compare"
	"github.com/fwojciec/parsecompare/goquery"
	"github.com/fwojciec/parsecompare/htmltomarkdown"
	pchttp "github.com/fwojciec/parsecompare/http"
	"github.com/fwojciec/parsecompare/readability"
	pcslog "github.com/fwojciec/parsecompare/slog"
	"github.com/fwojciec/parsecompare/trafilatura"
)

// Engine names used in logs. They match the keys of the JSON result.
const (
	urlEngineName      = "postlight"
	documentEngineName = "defuddle"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// ComparisonService overrides the production wiring. Set before calling
	// Run(); used by end-to-end tests.
	ComparisonService parsecompare.ComparisonService
}

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
		kong.Name("parsecompare"),
		kong.Description("Compare two article extraction engines on the same page"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'parsecompare --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
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

	deps.Comparer = m.ComparisonService
	if deps.Comparer == nil {
		deps.Comparer = newComparer(deps.Logger)
	}
	var convOpts []htmltomarkdown.Option
	if cli.Compare.NoImages {
		convOpts = append(convOpts, htmltomarkdown.WithoutImages())
	}
	deps.Converter = htmltomarkdown.NewConverter(convOpts...)

	return kongCtx.Run()
}

// newComparer wires the production fetcher and engines, each wrapped with
// logging.
func newComparer(logger *slog.Logger) *compare.Comparer {
	return &compare.Comparer{
		Fetcher: pcslog.NewLoggingFetcher(pchttp.NewFetcher(), logger),
		URLEngine: pcslog.NewLoggingURLEngine(
			readability.NewEngine(),
			urlEngineName,
			logger,
		),
		DocumentEngine: pcslog.NewLoggingDocumentEngine(
			trafilatura.NewEngine(goquery.NewMetadataParser()),
			documentEngineName,
			logger,
		),
	}
}
