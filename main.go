package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"linkroute/canvas"
	"linkroute/config"
	"linkroute/diagram"
	"linkroute/export"
	"linkroute/importer"
	"linkroute/terminal"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("linkroute", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		format     = fs.String("format", "ascii", "Export format: json, ascii, png")
		outputFile = fs.String("o", "", "Output file (default: stdout)")
		view       = fs.Bool("view", false, "Show the routed scene in the terminal")
		verbose    = fs.Bool("v", false, "Log routing decisions to stderr")
		configFile = fs.String("config", "", "Routing options YAML, overrides the scene's options block")
		scale      = fs.Float64("scale", 0.25, "Cells per document unit for ascii output and the viewer")
		color      = fs.Bool("color", false, "ANSI colors in ascii output")
		validate   = fs.Bool("validate", false, "Check that lines in the text rendering join up")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: linkroute [options] scene.yaml\n\n")
		fmt.Fprintf(stderr, "Routes the links of a scene and writes the result.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  linkroute scene.yaml                     # Draw routes to stdout\n")
		fmt.Fprintf(stderr, "  linkroute -format json scene.yaml        # Routed points as JSON\n")
		fmt.Fprintf(stderr, "  linkroute -format png -o out.png scene.yaml\n")
		fmt.Fprintf(stderr, "  linkroute -view scene.yaml               # Move nodes and watch links reroute\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("exactly one scene file is required")
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := []diagram.Option{diagram.WithLogger(logger)}
	if *configFile != "" {
		o, err := config.Load(*configFile)
		if err != nil {
			return err
		}
		opts = append(opts, diagram.WithOptions(o))
	}

	doc, err := importer.NewImporterRegistry().ImportFile(fs.Arg(0), opts...)
	if err != nil {
		return err
	}
	st := doc.Stats()
	logger.Info("scene routed",
		"nodes", len(doc.Nodes()),
		"links", len(doc.Links()),
		"routes", st.Routes,
		"fallbacks", st.Fallbacks)

	render := canvas.DefaultRenderOptions()
	render.ScaleX, render.ScaleY = *scale, *scale
	if *validate {
		checkLines(doc, render, logger)
	}
	if *view {
		return terminal.Run(doc, render, logger)
	}

	exporter, err := newExporter(*format, render, *color)
	if err != nil {
		return err
	}
	out, err := exporter.Export(doc)
	if err != nil {
		return fmt.Errorf("exporting %s: %w", exporter.GetFormatName(), err)
	}

	if *outputFile == "" {
		_, err = stdout.Write(out)
		return err
	}
	if err := os.WriteFile(*outputFile, out, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Info("wrote output", "file", *outputFile, "format", exporter.GetFormatName())
	return nil
}

// checkLines logs every broken joint in the text rendering of doc.
func checkLines(doc *diagram.Document, render canvas.RenderOptions, logger *slog.Logger) {
	c, _ := canvas.Render(doc, render)
	errs := canvas.NewLineValidator().Validate(c)
	for _, e := range errs {
		logger.Warn("broken line", "x", e.X, "y", e.Y, "char", string(e.Char), "problem", e.Message)
	}
	if len(errs) > 0 {
		logger.Warn("line validation failed", "errors", len(errs))
	}
}

func newExporter(name string, render canvas.RenderOptions, color bool) (export.Exporter, error) {
	format, err := export.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	if format == export.FormatASCII {
		e := export.NewASCIIExporter()
		e.Options = render
		e.Color = color
		return e, nil
	}
	return export.NewExporter(format)
}
