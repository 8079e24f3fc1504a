package chart

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "livingwage/internal/errors"
	"livingwage/internal/infrastructure"
	logtest "livingwage/internal/shared/testutil"
	"livingwage/pkg/contracts/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func sampleSeries() domain.GapSeries {
	return BuildGapSeries([]domain.WageRecord{
		{State: "Arkansas", Abbrev: "AR", HourlyMinimumWage: 7.25, AnnualLivingWage: 45000},
		{State: "California", HourlyMinimumWage: 15, AnnualLivingWage: 90000},
		{State: "Guam", HourlyMinimumWage: 9.25, AnnualLivingWage: 41000},
	})
}

func TestBuildGapSeries(t *testing.T) {
	series := sampleSeries()

	require.Equal(t, 3, series.Len())
	assert.Equal(t, []string{"AR", "CA", "Guam"}, series.Abbrevs)
	assert.Equal(t, []float64{30160, 62400, 38480}, series.MinimumWage)
	assert.Equal(t, []float64{45000, 90000, 41000}, series.LivingWage)
	assert.Len(t, series.MinimumWage, series.Len())
	assert.Len(t, series.LivingWage, series.Len())
}

func TestBuildGapSeries_Empty(t *testing.T) {
	series := BuildGapSeries(nil)
	assert.Equal(t, 0, series.Len())
	assert.Empty(t, series.MinimumWage)
}

func TestNiceCeiling(t *testing.T) {
	tests := []struct {
		input    float64
		expected float64
	}{
		{0, 1},
		{90000, 100000},
		{45000, 50000},
		{20000, 20000},
		{21000, 25000},
		{3, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, niceCeiling(tt.input), "input %v", tt.input)
	}
}

func TestLayout(t *testing.T) {
	p := layout(sampleSeries(), DefaultTitle)

	require.Len(t, p.MinimumBars, 3)
	require.Len(t, p.LivingBars, 3)
	require.Len(t, p.XLabels, 3)

	for i := range p.MinimumBars {
		// Bars sit on the x-axis and the living wage bar follows the minimum wage bar
		assert.InDelta(t, p.PlotBottom, p.MinimumBars[i].Y+p.MinimumBars[i].Height, 1e-9)
		assert.InDelta(t, p.MinimumBars[i].X+p.MinimumBars[i].Width, p.LivingBars[i].X, 1e-9)
		assert.LessOrEqual(t, p.LivingBars[i].X+p.LivingBars[i].Width, p.PlotRight+1e-9)
	}

	// CA living wage is the tallest bar
	assert.Less(t, p.LivingBars[1].Y, p.LivingBars[0].Y)
	assert.Equal(t, "100000", p.YTicks[len(p.YTicks)-1].Label)
}

func TestHTMLRenderer_Render(t *testing.T) {
	metrics := infrastructure.NewMetrics()
	r := NewHTMLRenderer(discardLogger(), metrics)

	var opened string
	r.open = func(path string) error {
		opened = path
		return nil
	}

	path := filepath.Join(t.TempDir(), "charts", "gap.html")
	got, err := r.Render(context.Background(), sampleSeries(), Options{Path: path})
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, path, opened)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	for _, want := range []string{DefaultTitle, XAxisTitle, YAxisTitle, MinimumWageLabel, LivingWageLabel, ">AR<", ">Guam<", "#0000FF", "#008000"} {
		assert.Contains(t, html, want)
	}
	assert.Equal(t, 6+2, strings.Count(html, "<rect"), "two bars per state plus two legend keys")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ChartsRendered.WithLabelValues("html")))
}

func TestHTMLRenderer_Headless(t *testing.T) {
	r := NewHTMLRenderer(discardLogger(), nil)
	r.open = func(string) error {
		t.Fatal("headless render must not open a browser")
		return nil
	}

	path := filepath.Join(t.TempDir(), "gap.html")
	_, err := r.Render(context.Background(), sampleSeries(), Options{Path: path, Headless: true, Title: "Custom"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>Custom</title>")
}

func TestHTMLRenderer_OpenFailureIsNotFatal(t *testing.T) {
	logger, handler := logtest.NewTestLogger(t)
	r := NewHTMLRenderer(logger, nil)
	r.open = func(string) error { return errors.New("no display") }

	path := filepath.Join(t.TempDir(), "gap.html")
	got, err := r.Render(context.Background(), sampleSeries(), Options{Path: path})
	require.NoError(t, err)
	assert.FileExists(t, got)
	logtest.AssertLogged(t, handler, slog.LevelWarn, "Failed to open chart in browser")
	logtest.AssertNoErrors(t, handler)
}

func TestHTMLRenderer_RequiresPath(t *testing.T) {
	r := NewHTMLRenderer(discardLogger(), nil)
	_, err := r.Render(context.Background(), sampleSeries(), Options{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestXLSXRenderer_Render(t *testing.T) {
	metrics := infrastructure.NewMetrics()
	r := NewXLSXRenderer(discardLogger(), metrics)

	path := filepath.Join(t.TempDir(), "gap.xlsx")
	got, err := r.Render(context.Background(), sampleSeries(), Options{Path: path})
	require.NoError(t, err)
	assert.Equal(t, path, got)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SeriesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"State", MinimumWageLabel, LivingWageLabel}, rows[0])
	assert.Equal(t, []string{"CA", "62400", "90000"}, rows[2][:3])

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ChartsRendered.WithLabelValues("xlsx")))
}

func TestRenderers_EmptySeries(t *testing.T) {
	tests := []struct {
		name     string
		renderer Renderer
		file     string
	}{
		{"html", NewHTMLRenderer(discardLogger(), nil), "gap.html"},
		{"xlsx", NewXLSXRenderer(discardLogger(), nil), "gap.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			got, err := tt.renderer.Render(context.Background(), BuildGapSeries(nil), Options{Path: path, Headless: true})
			require.NoError(t, err)
			assert.Equal(t, path, got)
			assert.FileExists(t, path)
		})
	}
}

func TestXLSXRenderer_EmptySeriesWritesHeaderOnly(t *testing.T) {
	logger, handler := logtest.NewTestLogger(t)
	path := filepath.Join(t.TempDir(), "gap.xlsx")

	_, err := NewXLSXRenderer(logger, nil).Render(context.Background(), domain.GapSeries{}, Options{Path: path})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SeriesSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"State", MinimumWageLabel, LivingWageLabel}}, rows)
	logtest.AssertLogged(t, handler, slog.LevelWarn, "No states to chart")
}

func TestRenderers_Spans(t *testing.T) {
	recorder := logtest.NewSpanRecorder(t)
	dir := t.TempDir()

	_, err := NewXLSXRenderer(discardLogger(), nil).Render(context.Background(), sampleSeries(), Options{Path: filepath.Join(dir, "gap.xlsx")})
	require.NoError(t, err)
	_, err = NewHTMLRenderer(discardLogger(), nil).Render(context.Background(), sampleSeries(), Options{})
	require.Error(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "chart.render", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("format", "xlsx"))
	assert.Contains(t, spans[1].Attributes(), attribute.String("format", "html"))
}

func TestNewRenderer(t *testing.T) {
	r, err := NewRenderer("html", discardLogger(), nil)
	require.NoError(t, err)
	assert.IsType(t, &HTMLRenderer{}, r)

	r, err = NewRenderer("xlsx", discardLogger(), nil)
	require.NoError(t, err)
	assert.IsType(t, &XLSXRenderer{}, r)

	_, err = NewRenderer("png", discardLogger(), nil)
	assert.Error(t, err)
}
