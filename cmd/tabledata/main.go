package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"livingwage/internal/config"
	"livingwage/internal/dataprocessing"
	apperrors "livingwage/internal/errors"
	"livingwage/internal/exporter"
	"livingwage/internal/infrastructure"
	"livingwage/internal/tabledata"
	"livingwage/pkg/contracts"
	"livingwage/pkg/contracts/domain"
)

// directoryWidth is the column width for the directory table
const directoryWidth = 20

func main() {
	configFile := flag.String("config", "", "YAML config file (defaults to livingwage.yaml if present)")
	file := flag.String("file", "", "sunrise/sunset CSV or XLSX file (defaults to DataFiles/sunRiseSet.csv)")
	width := flag.Int("width", 0, "column width for the sunrise table (defaults to report.width)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *width > 0 {
		cfg.Report.Width = *width
	}

	paths, err := cfg.ResolvePaths()
	if err != nil {
		slog.Error("Failed to resolve paths", slog.String("error", err.Error()))
		os.Exit(1)
	}
	cfg.Logging.FilePath = paths.GetLogPath(cfg.Logging.FilePath)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", slog.String("error", err.Error()))
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	sunFile := *file
	if sunFile == "" {
		sunFile = paths.SunriseCSV
	}

	ctx := infrastructure.EnsureTraceID(context.Background())

	cfg.Tracing.FilePath = paths.GetLogPath(cfg.Tracing.FilePath)
	tracing, err := infrastructure.InitializeTracing(cfg.Tracing, contracts.Version)
	if err != nil {
		infrastructure.WithError(logger, err).WarnContext(ctx, "Failed to initialize tracing, spans are disabled")
		tracing = &infrastructure.Tracing{}
	}
	defer tracing.Shutdown(ctx)

	if err := run(ctx, sunFile, cfg.Report.Width, logger, os.Stdout); err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Table demo failed")
		tracing.Shutdown(ctx)
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
}

// run walks through the directory and sunrise examples, printing to out
func run(ctx context.Context, sunFile string, width int, logger *slog.Logger, out io.Writer) error {
	dir := tabledata.SampleDirectory()

	for _, name := range []string{"Fox, Susan", "Shoop, Libby"} {
		fmt.Fprintln(out, phoneOrMessage(name, dir))
	}

	loader := dataprocessing.NewLoader(logger, nil)
	fields, table, records, err := loader.LoadSunrise(ctx, sunFile)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, fields)
	if len(table) > 0 {
		fmt.Fprintln(out, formatRecord(table[0], fields))
	}
	if err := exporter.PrintTable(out, table, fields, width); err != nil {
		return err
	}

	for _, date := range []struct {
		month string
		day   int
	}{{"May", 15}, {"October", 31}} {
		rec, err := tabledata.LookupByDate(date.month, date.day, records)
		if err != nil {
			if !apperrors.IsType(err, apperrors.ErrTypeNotFound) {
				return err
			}
			fmt.Fprintf(out, "No data for %s %d\n", date.month, date.day)
			continue
		}
		fmt.Fprintf(out, "%s %d: sunrise %02d:%02d, sunset %02d:%02d, %.2f hours of daylight\n",
			rec.Month, rec.Day, rec.SunRiseHour, rec.SunRiseMinute, rec.SunSetHour, rec.SunSetMinute,
			tabledata.Daylight(rec))
	}

	olri := tabledata.CollectByBuilding("Olin-Rice", dir)
	if err := exporter.PrintTable(out, domain.DirectoryTable(olri), domain.DirectoryFields, directoryWidth); err != nil {
		return err
	}
	cc := tabledata.CollectByBuilding("Campus Center", dir)
	if err := exporter.PrintTable(out, domain.DirectoryTable(cc), domain.DirectoryFields, directoryWidth); err != nil {
		return err
	}

	march := tabledata.SelectByMonth("March", records)
	if err := exporter.PrintTable(out, tabledata.SunRows(march), fields, width); err != nil {
		return err
	}

	for _, hour := range []struct {
		label string
		hour  int
	}{{"6pm", 18}, {"10pm", 22}, {"4pm", 16}} {
		count, err := tabledata.CountSunsetsBefore(hour.hour, table)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Sunsets before %s = %d\n", hour.label, count)
	}

	return nil
}

// phoneOrMessage returns the phone number, or the "No entry" message for a
// missing name
func phoneOrMessage(name string, dir []domain.DirectoryEntry) string {
	phone, err := tabledata.LookupPhone(name, dir)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return appErr.Message
		}
		return err.Error()
	}
	return phone
}

func formatRecord(rec domain.Record, fields domain.FieldList) string {
	s := "{"
	for i, f := range fields {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s: %s", f, exporter.FormatValue(rec[f]))
	}
	return s + "}"
}
