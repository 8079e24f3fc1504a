package chart

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/browser"
	"go.opentelemetry.io/otel/attribute"

	"livingwage/internal/config"
	apperrors "livingwage/internal/errors"
	"livingwage/internal/infrastructure"
	"livingwage/pkg/contracts/domain"
)

// Figure geometry in pixels, a 12x4 inch figure at 100 dpi
const (
	figureWidth  = 1200
	figureHeight = 400
	marginLeft   = 90
	marginRight  = 20
	marginTop    = 40
	marginBottom = 60
	yTicks       = 5
)

// HTMLRenderer writes the chart as an SVG page and opens it in the browser
type HTMLRenderer struct {
	logger  *slog.Logger
	metrics *infrastructure.Metrics
	open    func(path string) error
}

// NewHTMLRenderer creates an HTML renderer. metrics may be nil.
func NewHTMLRenderer(logger *slog.Logger, metrics *infrastructure.Metrics) *HTMLRenderer {
	return &HTMLRenderer{
		logger:  infrastructure.WithComponent(logger, "html_chart"),
		metrics: metrics,
		open:    browser.OpenFile,
	}
}

type bar struct {
	X, Y, Width, Height float64
	Value               float64
}

type tick struct {
	Y     float64
	Label string
}

type label struct {
	X    float64
	Text string
}

type page struct {
	Title            string
	Width, Height    int
	PlotLeft         float64
	PlotRight        float64
	PlotTop          float64
	PlotBottom       float64
	MinimumBars      []bar
	LivingBars       []bar
	XLabels          []label
	YTicks           []tick
	XAxisTitle       string
	YAxisTitle       string
	MinimumLabel     string
	LivingLabel      string
	MinimumColor     string
	LivingColor      string
	Opacity          float64
	LegendX, LegendY float64
	CenterX          float64
	YTitleY          float64
}

// Render writes the chart page to opts.Path and opens it unless headless
func (r *HTMLRenderer) Render(ctx context.Context, series domain.GapSeries, opts Options) (path string, err error) {
	ctx, span := infrastructure.StartSpan(ctx, "chart.render",
		attribute.String("format", config.ChartFormatHTML),
		attribute.Int("states", series.Len()))
	defer func() { infrastructure.EndSpan(span, err) }()

	if opts.Path == "" {
		return "", apperrors.NewAppValidationError("chart output path is required")
	}

	var buf bytes.Buffer
	if err := chartTemplate.Execute(&buf, layout(series, opts.title())); err != nil {
		return "", apperrors.NewRenderError("failed to render chart page", err)
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return "", apperrors.NewStorageError("failed to create chart directory", err)
	}
	if err := os.WriteFile(opts.Path, buf.Bytes(), 0644); err != nil {
		return "", apperrors.NewStorageError(fmt.Sprintf("failed to write %s", opts.Path), err)
	}

	if r.metrics != nil {
		r.metrics.ChartsRendered.WithLabelValues(config.ChartFormatHTML).Inc()
	}
	r.logger.InfoContext(ctx, "Chart written",
		slog.String("path", opts.Path),
		slog.Int("states", series.Len()))

	if opts.Headless {
		return opts.Path, nil
	}
	if err := r.open(opts.Path); err != nil {
		span.AddEvent("browser open failed")
		r.logger.WarnContext(ctx, "Failed to open chart in browser",
			slog.String("path", opts.Path),
			slog.String("error", err.Error()))
	}
	return opts.Path, nil
}

// layout positions two bars and a gap per state, matching a bar width of 2
// units on a 6-unit stride.
func layout(series domain.GapSeries, title string) page {
	p := page{
		Title:        title,
		Width:        figureWidth,
		Height:       figureHeight,
		PlotLeft:     marginLeft,
		PlotRight:    figureWidth - marginRight,
		PlotTop:      marginTop,
		PlotBottom:   figureHeight - marginBottom,
		XAxisTitle:   XAxisTitle,
		YAxisTitle:   YAxisTitle,
		MinimumLabel: MinimumWageLabel,
		LivingLabel:  LivingWageLabel,
		MinimumColor: "#" + MinimumWageColor,
		LivingColor:  "#" + LivingWageColor,
		Opacity:      BarOpacity,
		LegendX:      figureWidth - marginRight - 150,
		LegendY:      marginTop + 10,
		CenterX:      marginLeft + float64(figureWidth-marginLeft-marginRight)/2,
		YTitleY:      marginTop + float64(figureHeight-marginTop-marginBottom)/2,
	}

	maxValue := 0.0
	for i := 0; i < series.Len(); i++ {
		maxValue = math.Max(maxValue, math.Max(series.MinimumWage[i], series.LivingWage[i]))
	}
	top := niceCeiling(maxValue)

	plotWidth := p.PlotRight - p.PlotLeft
	plotHeight := p.PlotBottom - p.PlotTop

	units := 3.0 * 2.0 * float64(series.Len())
	if units == 0 {
		units = 1
	}
	unit := plotWidth / units
	barWidth := 2 * unit

	scale := func(v float64) float64 {
		return plotHeight * v / top
	}

	for i := 0; i < series.Len(); i++ {
		x := p.PlotLeft + float64(i)*6*unit + unit
		hMin := scale(series.MinimumWage[i])
		hLiv := scale(series.LivingWage[i])
		p.MinimumBars = append(p.MinimumBars, bar{X: x, Y: p.PlotBottom - hMin, Width: barWidth, Height: hMin, Value: series.MinimumWage[i]})
		p.LivingBars = append(p.LivingBars, bar{X: x + barWidth, Y: p.PlotBottom - hLiv, Width: barWidth, Height: hLiv, Value: series.LivingWage[i]})
		p.XLabels = append(p.XLabels, label{X: x + barWidth, Text: series.Abbrevs[i]})
	}

	for i := 0; i <= yTicks; i++ {
		v := top * float64(i) / yTicks
		p.YTicks = append(p.YTicks, tick{Y: p.PlotBottom - scale(v), Label: fmt.Sprintf("%.0f", v)})
	}

	return p
}

// niceCeiling rounds v up to 1, 2, 2.5 or 5 times a power of ten
func niceCeiling(v float64) float64 {
	if v <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if m*exp >= v {
			return m * exp
		}
	}
	return 10 * exp
}

var chartTemplate = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 1em; }
text { font-size: 12px; }
.title { font-size: 16px; font-weight: bold; }
</style>
</head>
<body>
<svg xmlns="http://www.w3.org/2000/svg" width="{{.Width}}" height="{{.Height}}" viewBox="0 0 {{.Width}} {{.Height}}">
<text class="title" x="{{.CenterX}}" y="24" text-anchor="middle">{{.Title}}</text>
{{- range .YTicks}}
<line x1="{{$.PlotLeft}}" y1="{{.Y}}" x2="{{$.PlotRight}}" y2="{{.Y}}" stroke="#ddd"/>
<text x="{{$.PlotLeft}}" y="{{.Y}}" dx="-6" dy="4" text-anchor="end">{{.Label}}</text>
{{- end}}
<line x1="{{.PlotLeft}}" y1="{{.PlotBottom}}" x2="{{.PlotRight}}" y2="{{.PlotBottom}}" stroke="#000"/>
<line x1="{{.PlotLeft}}" y1="{{.PlotTop}}" x2="{{.PlotLeft}}" y2="{{.PlotBottom}}" stroke="#000"/>
<g fill="{{.MinimumColor}}" fill-opacity="{{.Opacity}}">
{{- range .MinimumBars}}
<rect x="{{.X}}" y="{{.Y}}" width="{{.Width}}" height="{{.Height}}" data-value="{{printf "%.2f" .Value}}"/>
{{- end}}
</g>
<g fill="{{.LivingColor}}" fill-opacity="{{.Opacity}}">
{{- range .LivingBars}}
<rect x="{{.X}}" y="{{.Y}}" width="{{.Width}}" height="{{.Height}}" data-value="{{printf "%.2f" .Value}}"/>
{{- end}}
</g>
{{- range .XLabels}}
<text x="{{.X}}" y="{{$.PlotBottom}}" dy="16" text-anchor="middle">{{.Text}}</text>
{{- end}}
<text x="{{.CenterX}}" y="{{.Height}}" dy="-12" text-anchor="middle">{{.XAxisTitle}}</text>
<text x="20" y="{{.YTitleY}}" text-anchor="middle" transform="rotate(-90 20 {{.YTitleY}})">{{.YAxisTitle}}</text>
<g transform="translate({{.LegendX}} {{.LegendY}})">
<rect x="0" y="0" width="14" height="10" fill="{{.MinimumColor}}" fill-opacity="{{.Opacity}}"/>
<text x="20" y="10">{{.MinimumLabel}}</text>
<rect x="0" y="18" width="14" height="10" fill="{{.LivingColor}}" fill-opacity="{{.Opacity}}"/>
<text x="20" y="28">{{.LivingLabel}}</text>
</g>
</svg>
</body>
</html>
`))
