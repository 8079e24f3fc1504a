package chart

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/attribute"

	"livingwage/internal/config"
	apperrors "livingwage/internal/errors"
	"livingwage/internal/infrastructure"
	"livingwage/pkg/contracts/domain"
)

// SeriesSheet holds the chart data in the generated workbook
const SeriesSheet = "WageGap"

// XLSXRenderer writes the series to a workbook with a clustered column chart
type XLSXRenderer struct {
	logger  *slog.Logger
	metrics *infrastructure.Metrics
}

// NewXLSXRenderer creates a workbook renderer. metrics may be nil.
func NewXLSXRenderer(logger *slog.Logger, metrics *infrastructure.Metrics) *XLSXRenderer {
	return &XLSXRenderer{
		logger:  infrastructure.WithComponent(logger, "xlsx_chart"),
		metrics: metrics,
	}
}

// Render saves the workbook to opts.Path. Headless has no effect; the workbook
// is never opened. An empty series produces the header row without a chart.
func (r *XLSXRenderer) Render(ctx context.Context, series domain.GapSeries, opts Options) (path string, err error) {
	ctx, span := infrastructure.StartSpan(ctx, "chart.render",
		attribute.String("format", config.ChartFormatXLSX),
		attribute.Int("states", series.Len()))
	defer func() { infrastructure.EndSpan(span, err) }()

	if opts.Path == "" {
		return "", apperrors.NewAppValidationError("chart output path is required")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SeriesSheet); err != nil {
		return "", apperrors.NewRenderError("failed to name worksheet", err)
	}
	if err := writeSeries(f, series); err != nil {
		return "", err
	}

	if series.Len() == 0 {
		r.logger.WarnContext(ctx, "No states to chart, writing series header only",
			slog.String("path", opts.Path))
	} else if err := addGapChart(f, series, opts.title()); err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return "", apperrors.NewStorageError("failed to create chart directory", err)
	}
	if err := f.SaveAs(opts.Path); err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("failed to save %s", opts.Path), err)
	}

	if r.metrics != nil {
		r.metrics.ChartsRendered.WithLabelValues(config.ChartFormatXLSX).Inc()
	}
	r.logger.InfoContext(ctx, "Chart workbook written",
		slog.String("path", opts.Path),
		slog.Int("states", series.Len()))
	return opts.Path, nil
}

// addGapChart adds the clustered column chart over the series rows
func addGapChart(f *excelize.File, series domain.GapSeries, title string) error {
	last := series.Len() + 1
	ref := func(col string) string {
		return fmt.Sprintf("%s!$%s$2:$%s$%d", SeriesSheet, col, col, last)
	}

	err := f.AddChart(SeriesSheet, "E2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       SeriesSheet + "!$B$1",
				Categories: ref("A"),
				Values:     ref("B"),
				Fill:       excelize.Fill{Type: "pattern", Color: []string{MinimumWageColor}, Pattern: 1},
			},
			{
				Name:       SeriesSheet + "!$C$1",
				Categories: ref("A"),
				Values:     ref("C"),
				Fill:       excelize.Fill{Type: "pattern", Color: []string{LivingWageColor}, Pattern: 1},
			},
		},
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
		XAxis: excelize.ChartAxis{
			Title: []excelize.RichTextRun{{Text: XAxisTitle}},
		},
		YAxis: excelize.ChartAxis{
			Title:          []excelize.RichTextRun{{Text: YAxisTitle}},
			MajorGridLines: true,
		},
		Dimension: excelize.ChartDimension{Width: 1200, Height: 400},
	})
	if err != nil {
		return apperrors.NewRenderError("failed to add chart", err)
	}
	return nil
}

func writeSeries(f *excelize.File, series domain.GapSeries) error {
	header := []interface{}{"State", MinimumWageLabel, LivingWageLabel}
	if err := f.SetSheetRow(SeriesSheet, "A1", &header); err != nil {
		return apperrors.NewRenderError("failed to write series header", err)
	}
	for i := 0; i < series.Len(); i++ {
		row := []interface{}{series.Abbrevs[i], series.MinimumWage[i], series.LivingWage[i]}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.NewRenderError("invalid cell reference", err)
		}
		if err := f.SetSheetRow(SeriesSheet, cell, &row); err != nil {
			return apperrors.NewRenderError(fmt.Sprintf("failed to write series row %d", i+1), err)
		}
	}
	return nil
}

// NewRenderer returns the renderer for a chart format ("html" or "xlsx")
func NewRenderer(format string, logger *slog.Logger, metrics *infrastructure.Metrics) (Renderer, error) {
	switch format {
	case config.ChartFormatHTML:
		return NewHTMLRenderer(logger, metrics), nil
	case config.ChartFormatXLSX:
		return NewXLSXRenderer(logger, metrics), nil
	default:
		return nil, apperrors.NewAppValidationError(fmt.Sprintf("unsupported chart format %q", format))
	}
}
