package chart

import (
	"context"

	"livingwage/internal/livingwage"
	"livingwage/pkg/contracts/domain"
)

// Chart labels
const (
	DefaultTitle     = "Living and Minimum Wage in Top 10 Gap States"
	XAxisTitle       = "States"
	YAxisTitle       = "Yearly Salary ($)"
	MinimumWageLabel = "Minimum Wage"
	LivingWageLabel  = "Living Wage"

	MinimumWageColor = "0000FF"
	LivingWageColor  = "008000"
	BarOpacity       = 0.8
)

// Options controls a single render
type Options struct {
	Title    string
	Path     string // output file
	Headless bool   // write the file without opening it
}

// Renderer draws a wage gap series and returns the path it wrote
type Renderer interface {
	Render(ctx context.Context, series domain.GapSeries, opts Options) (string, error)
}

// BuildGapSeries builds the three parallel chart sequences from records in
// input order: the state abbreviation (falling back to the state text), the
// two-earner minimum wage income and the annual living wage.
func BuildGapSeries(records []domain.WageRecord) domain.GapSeries {
	series := domain.GapSeries{
		Abbrevs:     make([]string, 0, len(records)),
		MinimumWage: make([]float64, 0, len(records)),
		LivingWage:  make([]float64, 0, len(records)),
	}
	for _, rec := range records {
		label := rec.Abbrev
		if label == "" {
			if abbr, ok := domain.StateAbbrev(rec.State); ok {
				label = abbr
			} else {
				label = rec.State
			}
		}
		series.Abbrevs = append(series.Abbrevs, label)
		series.MinimumWage = append(series.MinimumWage, livingwage.AnnualWage(rec.HourlyMinimumWage))
		series.LivingWage = append(series.LivingWage, rec.AnnualLivingWage)
	}
	return series
}

func (o Options) title() string {
	if o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}
