// Package cli implements the command-line interface for ecomdash.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/Rinduprawa/project-ecommerce/internal/config"
	"github.com/Rinduprawa/project-ecommerce/internal/logctx"
	"github.com/Rinduprawa/project-ecommerce/pkg/export"
	"github.com/Rinduprawa/project-ecommerce/pkg/logging"
	"github.com/Rinduprawa/project-ecommerce/pkg/orders"
	"github.com/Rinduprawa/project-ecommerce/pkg/s3fetch"
)

const dateLayout = "2006-01-02"

// Run executes the CLI with the given arguments.
func Run(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: ecomdash <command> [options]\ncommands: report, export, fetch")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	switch args[0] {
	case "report":
		return runReport(cfg, args[1:])
	case "export":
		return runExport(cfg, args[1:])
	case "fetch":
		return runFetch(cfg, args[1:])
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

// rangeFlags holds the date-window flags shared by report and export.
type rangeFlags struct {
	start string
	end   string
}

func (rf *rangeFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&rf.start, "start", "", "range start date (YYYY-MM-DD, default: first approval date)")
	fs.StringVar(&rf.end, "end", "", "range end date (YYYY-MM-DD, default: last approval date)")
}

// resolve turns the flags into a concrete window, defaulting missing
// bounds to the dataset's observed approval span.
func (rf *rangeFlags) resolve(ds orders.Dataset) (start, end time.Time, err error) {
	min, max, ok := ds.ApprovedSpan()
	if !ok {
		// No approved orders at all: any window yields an empty subset.
		min, max = time.Time{}, time.Time{}
	}
	start, end = min, max

	if rf.start != "" {
		start, err = time.Parse(dateLayout, rf.start)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse --start: %w", err)
		}
	}
	if rf.end != "" {
		end, err = time.Parse(dateLayout, rf.end)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("parse --end: %w", err)
		}
	}
	return start, end, nil
}

func runReport(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	input := fs.String("input", cfg.Dataset, "dataset file (CSV, CSV.gz, or Parquet)")
	format := fs.String("format", cfg.Format, "dataset format: auto, csv, or parquet")
	top := fs.Int("top", cfg.Top, "rows shown per table")
	debug := fs.Bool("debug", cfg.Debug, "enable debug logging")
	pretty := fs.Bool("pretty", cfg.PrettyLogs, "human-friendly log output")
	var rf rangeFlags
	rf.register(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return errors.New("--input is required (or set ECOMDASH_DATASET)")
	}

	logging.Init(*debug, *pretty)

	ds, err := loadDataset(*input, *format)
	if err != nil {
		return err
	}

	start, end, err := rf.resolve(ds)
	if err != nil {
		return err
	}

	aggStart := time.Now()
	report := export.BuildReport(ds, start, end)
	logging.PhaseComplete(logging.WithPhase("aggregate"), "aggregate", time.Since(aggStart)).
		Rows(int64(report.Rows)).
		Count("customers", int64(len(report.RFM))).
		Log("report computed")

	return printReport(report, *top)
}

func runExport(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	input := fs.String("input", cfg.Dataset, "dataset file (CSV, CSV.gz, or Parquet)")
	format := fs.String("format", cfg.Format, "dataset format: auto, csv, or parquet")
	outDir := fs.String("out", "", "directory for CSV report files")
	xlsxPath := fs.String("xlsx", "", "optional xlsx workbook path")
	debug := fs.Bool("debug", cfg.Debug, "enable debug logging")
	pretty := fs.Bool("pretty", cfg.PrettyLogs, "human-friendly log output")
	var rf rangeFlags
	rf.register(fs)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		return errors.New("--input is required (or set ECOMDASH_DATASET)")
	}
	if *outDir == "" && *xlsxPath == "" {
		return errors.New("at least one of --out or --xlsx is required")
	}

	logging.Init(*debug, *pretty)

	ds, err := loadDataset(*input, *format)
	if err != nil {
		return err
	}

	start, end, err := rf.resolve(ds)
	if err != nil {
		return err
	}

	report := export.BuildReport(ds, start, end)
	log := logging.WithPhase("export")

	if *outDir != "" {
		wStart := time.Now()
		if err := export.WriteCSVDir(report, *outDir); err != nil {
			return err
		}
		logging.PhaseComplete(log, "export", time.Since(wStart)).
			Str("dir", *outDir).
			Log("CSV report written")
	}
	if *xlsxPath != "" {
		wStart := time.Now()
		if err := export.WriteXLSX(report, *xlsxPath); err != nil {
			return err
		}
		logging.PhaseComplete(log, "export", time.Since(wStart)).
			Str("path", *xlsxPath).
			Log("xlsx report written")
	}
	return nil
}

// uriList collects repeated --uri flags.
type uriList []string

func (u *uriList) String() string { return strings.Join(*u, ",") }

func (u *uriList) Set(v string) error {
	*u = append(*u, v)
	return nil
}

func runFetch(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	var uris uriList
	fs.Var(&uris, "uri", "dataset object URI (s3://bucket/key); repeatable")
	outDir := fs.String("out", cfg.DownloadDir, "download directory")
	concurrency := fs.Int("concurrency", cfg.FetchConcurrency, "parallel downloads")
	debug := fs.Bool("debug", cfg.Debug, "enable debug logging")
	pretty := fs.Bool("pretty", cfg.PrettyLogs, "human-friendly log output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if len(uris) == 0 {
		return errors.New("at least one --uri is required")
	}

	logging.Init(*debug, *pretty)
	log := logging.WithPhase("fetch")
	ctx := logctx.WithLogger(context.Background(), log)

	client, err := s3fetch.NewClient(ctx)
	if err != nil {
		return err
	}

	fetcher := s3fetch.NewFetcher(client, s3fetch.FetchConfig{
		URIs:        uris,
		DownloadDir: *outDir,
		Concurrency: *concurrency,
	})

	start := time.Now()
	localFiles, err := fetcher.Fetch(ctx)
	if err != nil {
		return err
	}

	logging.PhaseComplete(log, "fetch", time.Since(start)).
		Int("files", len(localFiles)).
		Str("dir", *outDir).
		Log("dataset fetched")
	return nil
}

// loadDataset reads a dataset file, detecting the format from the
// extension when format is "auto".
func loadDataset(path, format string) (orders.Dataset, error) {
	if format == "" || format == "auto" {
		if strings.HasSuffix(strings.ToLower(path), ".parquet") {
			format = "parquet"
		} else {
			format = "csv"
		}
	}

	log := logging.WithPhase("load")
	start := time.Now()

	var (
		ds  orders.Dataset
		err error
	)
	switch format {
	case "csv":
		ds, err = orders.OpenCSV(path)
	case "parquet":
		ds, err = orders.ReadParquetFile(path)
	default:
		return nil, fmt.Errorf("unknown dataset format: %s", format)
	}
	if err != nil {
		return nil, err
	}

	logging.PhaseComplete(log, "load", time.Since(start)).
		Str("path", path).
		Str("format", format).
		Rows(int64(len(ds))).
		Log("dataset loaded")
	return ds, nil
}
