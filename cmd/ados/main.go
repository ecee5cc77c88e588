package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"ados/internal"
	"ados/internal/config"
	"ados/internal/pipeline"
	"ados/internal/server"
	"ados/internal/source"
	"ados/internal/store"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	loader := source.NewLoader(cfg)

	cmd := os.Args[1]
	switch cmd {
	case "serve":
		must(runServe(cfg, loader))
	case "load":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		url := fs.String("url", "", "published sheet url")
		input := fs.String("input", "", "local csv/xlsx path")
		_ = fs.Parse(os.Args[2:])
		records, label, err := loadRecords(cfg, loader, *url, *input)
		must(err)
		summary := pipeline.Summarize(records)
		fmt.Printf("load ok source=%s rows=%d documents=%d personnel=%d departments=%d\n",
			label, len(records), summary.DocumentCount, summary.PersonnelCount, summary.DepartmentCount)
	case "stats":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		url := fs.String("url", "", "published sheet url")
		input := fs.String("input", "", "local csv/xlsx path")
		_ = fs.Parse(os.Args[2:])
		records, label, err := loadRecords(cfg, loader, *url, *input)
		must(err)
		printStats(cfg, label, records)
	case "export:xlsx":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		url := fs.String("url", "", "published sheet url")
		input := fs.String("input", "", "local csv/xlsx path")
		out := fs.String("out", "", "output xlsx path")
		_ = fs.Parse(os.Args[2:])
		records, _, err := loadRecords(cfg, loader, *url, *input)
		must(err)
		path := outputPath(cfg, *out, "documents.xlsx")
		must(pipeline.ExportXLSX(records, path))
		fmt.Printf("exported %d rows to %s\n", len(records), path)
	case "export:pdf":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		url := fs.String("url", "", "published sheet url")
		input := fs.String("input", "", "local csv/xlsx path")
		out := fs.String("out", "", "output pdf path")
		_ = fs.Parse(os.Args[2:])
		records, _, err := loadRecords(cfg, loader, *url, *input)
		must(err)
		path := outputPath(cfg, *out, "documents.pdf")
		must(pipeline.ExportPDF(records, cfg.PDFSubjectMaxRunes, path))
		fmt.Printf("exported %d rows to %s\n", len(records), path)
	default:
		usage()
		os.Exit(1)
	}
}

// loadRecords resolves one source, in precedence order: explicit url,
// explicit file, configured url, configured file, bundled default.
func loadRecords(cfg config.Config, loader *source.Loader, url, input string) ([]internal.DocumentRecord, string, error) {
	ctx := context.Background()
	switch {
	case strings.TrimSpace(url) != "":
		records, err := loader.LoadURL(ctx, url)
		return records, url, err
	case strings.TrimSpace(input) != "":
		records, err := loader.LoadFile(input)
		return records, input, err
	case cfg.SheetURL != "":
		records, err := loader.LoadURL(ctx, cfg.SheetURL)
		return records, cfg.SheetURL, err
	case cfg.DataFile != "":
		records, err := loader.LoadFile(cfg.DataFile)
		return records, cfg.DataFile, err
	default:
		records, err := loader.LoadDefault()
		return records, "default", err
	}
}

func runServe(cfg config.Config, loader *source.Loader) error {
	lg := slog.New(slog.NewTextHandler(os.Stderr, nil))
	snapshot := store.New()

	records, label, err := loadRecords(cfg, loader, "", "")
	if err != nil {
		return fmt.Errorf("initial load: %w", err)
	}
	snapshot.Replace(records, label)
	lg.Info("initial snapshot loaded", "source", label, "records", len(records))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RefreshIntervalSec > 0 && cfg.SheetURL != "" {
		refresher := source.NewRefresher(loader, snapshot, cfg.SheetURL,
			time.Duration(cfg.RefreshIntervalSec)*time.Second, lg)
		go refresher.Run(ctx)
	}

	srv := server.New(cfg, lg, snapshot, loader)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

func printStats(cfg config.Config, label string, records []internal.DocumentRecord) {
	summary := pipeline.Summarize(records)
	latest := "-"
	if summary.LatestDocDate != nil {
		latest = summary.LatestDocDate.Format("2006-01-02")
	}
	fmt.Printf("source: %s\n", label)
	fmt.Printf("rows: %d  documents: %d  personnel: %d  departments: %d  latest: %s\n",
		len(records), summary.DocumentCount, summary.PersonnelCount, summary.DepartmentCount, latest)

	fmt.Println("top personnel:")
	for _, vc := range pipeline.TopN(records, pipeline.PersonnelOf, cfg.TopPersonnel) {
		fmt.Printf("  %4d  %s\n", vc.Count, vc.Value)
	}
	fmt.Println("types:")
	for _, vc := range pipeline.CategoryDistribution(records, pipeline.TypeOf) {
		fmt.Printf("  %4d  %s\n", vc.Count, vc.Value)
	}
	fmt.Println("monthly:")
	for _, b := range pipeline.MonthlyHistogram(records) {
		fmt.Printf("  %s %d\n", b.Month, b.Count)
	}
}

func outputPath(cfg config.Config, out, fallback string) string {
	if strings.TrimSpace(out) != "" {
		return out
	}
	return filepath.Join(cfg.OutputDir, fallback)
}

func usage() {
	fmt.Println("usage: ados <command>")
	fmt.Println("commands:")
	fmt.Println("  serve")
	fmt.Println("  load [--url=...] [--input=file.csv|file.xlsx]")
	fmt.Println("  stats [--url=...] [--input=...]")
	fmt.Println("  export:xlsx [--url=...] [--input=...] [--out=./out/documents.xlsx]")
	fmt.Println("  export:pdf  [--url=...] [--input=...] [--out=./out/documents.pdf]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
