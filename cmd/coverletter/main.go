package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"coverletter/internal/bootstrap"
	"coverletter/internal/cvsections"
	"coverletter/internal/ocr"
	"coverletter/internal/ocr/tesseract"
	"coverletter/internal/picker"
	"coverletter/internal/render"
	"coverletter/internal/shared/config"
	"coverletter/internal/shared/metrics"
)

type cliOptions struct {
	cvPath   string
	jdPath   string
	jdText   string
	html     bool
	sections bool
	metrics  bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		exitErr(err.Error())
	}

	cfg, err := config.Load()
	if err != nil {
		exitErr(err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, tesseract.New(cfg.OCRTessdataPrefix), os.Stdout, os.Stderr); err != nil {
		exitErr(err.Error())
	}
}

func parseFlags(args []string, output io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("coverletter", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.cvPath, "cv", "", "Path to resume file (pdf, png, jpg or jpeg)")
	fs.StringVar(&opts.jdPath, "jd", "", "Path to job description file (optional)")
	fs.StringVar(&opts.jdText, "jd-text", "", "Job description text (optional)")
	fs.BoolVar(&opts.html, "html", false, "Print the letter as HTML")
	fs.BoolVar(&opts.sections, "sections", false, "Print the resume sections found before the letter")
	fs.BoolVar(&opts.metrics, "metrics", false, "Print metrics to stderr on exit")
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	if strings.TrimSpace(opts.cvPath) == "" {
		return cliOptions{}, errors.New("resume path is required (-cv)")
	}
	if opts.jdPath != "" && opts.jdText != "" {
		return cliOptions{}, errors.New("use either -jd or -jd-text, not both")
	}
	return opts, nil
}

func run(ctx context.Context, cfg config.Config, opts cliOptions, rec ocr.Recognizer, stdout, stderr io.Writer) error {
	if opts.metrics {
		defer func() { _, _ = io.WriteString(stderr, metrics.Render()) }()
	}

	jobDescription := opts.jdText
	if opts.jdPath != "" {
		data, err := os.ReadFile(opts.jdPath)
		if err != nil {
			return fmt.Errorf("read job description: %w", err)
		}
		jobDescription = string(data)
	}

	app, err := bootstrap.Build(cfg, bootstrap.Options{
		Source:     picker.StaticSource(opts.cvPath),
		Recognizer: rec,
	})
	if err != nil {
		return err
	}
	defer app.Close(context.Background())

	snap, err := app.Import(ctx)
	if err != nil {
		return fmt.Errorf("import resume: %w", err)
	}
	if snap.ExtractionErr != nil {
		_, _ = fmt.Fprintf(stderr, "warning: %s\n", snap.ExtractedText)
	}

	if opts.sections {
		found := cvsections.Extract(snap.ExtractedText)
		for _, name := range cvsections.Names() {
			_, _ = fmt.Fprintf(stdout, "== %s ==\n%s\n\n", name, found[name])
		}
	}

	app.Session.SetJobDescription(jobDescription)
	if _, err := app.Session.Generate(ctx).Wait(ctx); err != nil {
		return fmt.Errorf("generate: %s", app.Session.Snapshot().Result)
	}
	letter := app.Session.Snapshot().Result

	out := render.Text(letter)
	if opts.html {
		if out, err = render.HTML(letter); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(stdout, out); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	if !strings.HasSuffix(out, "\n") {
		_, _ = io.WriteString(stdout, "\n")
	}
	return nil
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
