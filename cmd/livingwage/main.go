package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"livingwage/internal/chart"
	"livingwage/internal/config"
	"livingwage/internal/dataprocessing"
	apperrors "livingwage/internal/errors"
	"livingwage/internal/exporter"
	"livingwage/internal/files"
	"livingwage/internal/infrastructure"
	"livingwage/internal/livingwage"
	"livingwage/pkg/contracts"
	"livingwage/pkg/contracts/domain"
)

// options holds the command line flags. Zero values defer to the configuration.
type options struct {
	configFile string
	file       string
	width      int
	states     string
	low        bool
	top        bool
	topN       int
	gaps       bool
	chart      string
	chartTop   int
	chartOut   string
	headless   bool
	exportCSV  string
	appendCSV  bool
	exportXLSX string
	metrics    bool
	metricsOut string
	list       bool
	version    bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("livingwage", flag.ContinueOnError)
	fs.StringVar(&opts.configFile, "config", "", "YAML config file (defaults to livingwage.yaml if present)")
	fs.StringVar(&opts.file, "file", "", "living wage CSV or XLSX file (defaults to DataFiles/wages.csv)")
	fs.IntVar(&opts.width, "width", 0, "column width for printed tables (defaults to report.width)")
	fs.StringVar(&opts.states, "state", "", "comma separated state names or abbreviations to look up")
	fs.BoolVar(&opts.low, "low", false, "print states paying the federal minimum wage")
	fs.BoolVar(&opts.top, "top", false, "print the most expensive states")
	fs.IntVar(&opts.topN, "top-n", 0, "number of expensive states (defaults to report.top_n)")
	fs.BoolVar(&opts.gaps, "gaps", false, "print states where minimum wage income misses the living wage")
	fs.StringVar(&opts.chart, "chart", "", "chart format: html, xlsx or none (defaults to report.chart_format)")
	fs.IntVar(&opts.chartTop, "chart-top", -1, "number of largest gap states to chart, 0 for all (defaults to report.chart_top)")
	fs.StringVar(&opts.chartOut, "chart-out", "", "chart output file (defaults to the reports directory)")
	fs.BoolVar(&opts.headless, "headless", false, "write the chart without opening a browser")
	fs.StringVar(&opts.exportCSV, "export-csv", "", "export the selected rows to CSV")
	fs.BoolVar(&opts.appendCSV, "append", false, "append rows to an existing -export-csv file instead of replacing it")
	fs.StringVar(&opts.exportXLSX, "export-xlsx", "", "export the selected rows to an XLSX workbook")
	fs.BoolVar(&opts.metrics, "metrics", false, "write Prometheus metrics to livingwage.prom in the reports directory")
	fs.StringVar(&opts.metricsOut, "metrics-out", "", "write Prometheus metrics to this textfile (implies -metrics)")
	fs.BoolVar(&opts.list, "list", false, "list the datasets in the data directory and exit")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}

// loadConfig reads the configuration and applies flag overrides
func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}

	if opts.width < 0 {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("width must be positive, got %d", opts.width))
	}
	if opts.width > 0 {
		cfg.Report.Width = opts.width
	}
	if opts.topN < 0 {
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("top-n must be positive, got %d", opts.topN))
	}
	if opts.topN > 0 {
		cfg.Report.TopN = opts.topN
	}
	if opts.chart != "" {
		format := strings.ToLower(opts.chart)
		switch format {
		case config.ChartFormatHTML, config.ChartFormatXLSX, config.ChartFormatNone:
			cfg.Report.ChartFormat = format
		default:
			return nil, apperrors.NewAppValidationError(fmt.Sprintf("unknown chart format %q", opts.chart))
		}
	}
	if opts.chartTop >= 0 {
		cfg.Report.ChartTop = opts.chartTop
	}
	if opts.headless {
		cfg.Report.Headless = true
	}
	return cfg, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if opts.version {
		fmt.Println(contracts.GetFullVersionString(config.AppName))
		return
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	paths, err := cfg.ResolvePaths()
	if err != nil {
		slog.Error("Failed to resolve paths", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", slog.String("error", err.Error()))
		os.Exit(1)
	}
	cfg.Logging.FilePath = paths.GetLogPath(cfg.Logging.FilePath)

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", slog.String("error", err.Error()))
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureTraceID(context.Background())

	cfg.Tracing.FilePath = paths.GetLogPath(cfg.Tracing.FilePath)
	tracing, err := infrastructure.InitializeTracing(cfg.Tracing, contracts.Version)
	if err != nil {
		infrastructure.WithError(logger, err).WarnContext(ctx, "Failed to initialize tracing, spans are disabled")
		tracing = &infrastructure.Tracing{}
	}
	defer tracing.Shutdown(ctx)

	logger.InfoContext(ctx, "Starting living wage report",
		slog.String("version", contracts.GetVersionString(config.AppName)),
		slog.String("config_file", opts.configFile))
	paths.LogPathResolution(logger)

	if opts.list {
		if err := listDatasets(paths, os.Stdout); err != nil {
			infrastructure.WithError(logger, err).ErrorContext(ctx, "Failed to list datasets")
			tracing.Shutdown(ctx)
			infrastructure.CloseLogFile()
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, cfg, paths, opts, logger, os.Stdout); err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Living wage report failed")
		tracing.Shutdown(ctx)
		infrastructure.CloseLogFile()
		os.Exit(1)
	}
}

// run loads the dataset, prints it and performs the requested queries, charts
// and exports. Tables and answers go to stdout.
func run(ctx context.Context, cfg *config.Config, paths *config.Paths, opts options, logger *slog.Logger, stdout io.Writer) (err error) {
	metrics := infrastructure.NewMetrics()
	width := cfg.Report.Width

	file := opts.file
	if file == "" {
		file = paths.WagesCSV
	}

	ctx, span := infrastructure.StartSpan(ctx, "livingwage.run", attribute.String("file", file))
	defer func() { infrastructure.EndSpan(span, err) }()

	loader := dataprocessing.NewLoader(logger, metrics)
	fields, table, records, err := loader.LoadWages(ctx, file)
	if err != nil {
		return err
	}

	if err := exporter.PrintTable(stdout, table, fields, width); err != nil {
		return err
	}

	analyzer := livingwage.NewAnalyzer(records, logger, metrics)
	selected := table

	if opts.states != "" {
		for _, state := range strings.Split(opts.states, ",") {
			state = strings.TrimSpace(state)
			if state == "" {
				continue
			}
			wage, err := analyzer.StateLivingWage(ctx, state)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "%s living wage is %s\n", state, exporter.FormatValue(wage))
		}
	}

	if opts.low {
		low := livingwage.Rows(analyzer.LowWageStates(ctx))
		fmt.Fprintln(stdout, "LOW WAGE STATES:")
		if err := exporter.PrintTable(stdout, low, fields, width); err != nil {
			return err
		}
		selected = low
	}

	if opts.top {
		fmt.Fprintln(stdout, "MOST EXPENSIVE STATES:")
		for i, name := range analyzer.ExpensiveStates(ctx, cfg.Report.TopN) {
			fmt.Fprintf(stdout, "%d. %s\n", i+1, name)
		}
	}

	if opts.gaps {
		gaps := livingwage.Rows(analyzer.GapStates(ctx))
		fmt.Fprintln(stdout, "GAP STATES:")
		if err := exporter.PrintTable(stdout, gaps, fields, width); err != nil {
			return err
		}
		selected = gaps
	}

	if cfg.Report.ChartFormat != config.ChartFormatNone {
		path, err := renderChart(ctx, cfg, paths, opts, analyzer, logger, metrics)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Chart written to %s\n", path)
	}

	if opts.exportCSV != "" || opts.exportXLSX != "" {
		if err := exportRows(ctx, paths, opts, selected, fields, logger, stdout); err != nil {
			return err
		}
	}

	if opts.metrics || opts.metricsOut != "" {
		out := opts.metricsOut
		if out == "" {
			out = paths.GetReportPath(config.MetricsTextfile)
		}
		if err := metrics.WriteTextfile(out); err != nil {
			return apperrors.NewStorageError("failed to write metrics", err)
		}
		logger.InfoContext(ctx, "Metrics written", slog.String("path", out))
	}

	return nil
}

// exportRows writes the selected rows to the requested CSV and XLSX files.
// With -append an existing CSV export gains rows without a second header.
func exportRows(ctx context.Context, paths *config.Paths, opts options, rows domain.Table, fields domain.FieldList,
	logger *slog.Logger, stdout io.Writer) (err error) {
	_, span := infrastructure.StartSpan(ctx, "livingwage.export", attribute.Int("rows", len(rows)))
	defer func() { infrastructure.EndSpan(span, err) }()

	if opts.exportCSV != "" {
		writer := exporter.NewCSVWriter(paths, logger)
		write := writer.WriteTable
		if opts.appendCSV && config.FileExists(paths.GetReportPath(opts.exportCSV)) {
			write = writer.AppendTable
		}
		path, err := write(opts.exportCSV, rows, fields)
		if err != nil {
			return err
		}
		span.SetAttributes(attribute.String("csv", path))
		fmt.Fprintf(stdout, "Exported %d rows to %s\n", len(rows), path)
	}

	if opts.exportXLSX != "" {
		path := paths.GetReportPath(opts.exportXLSX)
		if err := exporter.WriteWorkbook(path, "", rows, fields); err != nil {
			return err
		}
		span.SetAttributes(attribute.String("xlsx", path))
		fmt.Fprintf(stdout, "Exported %d rows to %s\n", len(rows), path)
	}
	return nil
}

// listDatasets prints the CSV and XLSX files found in the data directory
func listDatasets(paths *config.Paths, stdout io.Writer) error {
	datasets, err := files.NewDiscovery(paths.BaseDir).FindDataFiles(paths.DataDir)
	if err != nil {
		return err
	}
	for _, f := range datasets {
		fmt.Fprintf(stdout, "%-30s %10d  %s\n", f.Name, f.Size, f.ModTime.Format("2006-01-02 15:04"))
	}
	return nil
}

func renderChart(ctx context.Context, cfg *config.Config, paths *config.Paths, opts options,
	analyzer *livingwage.Analyzer, logger *slog.Logger, metrics *infrastructure.Metrics) (string, error) {
	var records []domain.WageRecord
	if cfg.Report.ChartTop > 0 {
		records = analyzer.LargestGaps(ctx, cfg.Report.ChartTop)
	} else {
		records = analyzer.GapStates(ctx)
	}

	renderer, err := chart.NewRenderer(cfg.Report.ChartFormat, logger, metrics)
	if err != nil {
		return "", err
	}

	out := opts.chartOut
	if out == "" {
		name := config.ChartHTMLFile
		if cfg.Report.ChartFormat == config.ChartFormatXLSX {
			name = config.ChartXLSXFile
		}
		out = paths.GetReportPath(name)
	}

	title := "Living and Minimum Wage in Gap States"
	if cfg.Report.ChartTop > 0 {
		title = fmt.Sprintf("Living and Minimum Wage in Top %d Gap States", len(records))
	}

	return renderer.Render(ctx, chart.BuildGapSeries(records), chart.Options{
		Title:    title,
		Path:     out,
		Headless: cfg.Report.Headless,
	})
}
