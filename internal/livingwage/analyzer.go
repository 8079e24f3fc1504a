package livingwage

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "livingwage/internal/errors"
	"livingwage/internal/infrastructure"
	"livingwage/pkg/contracts/domain"
)

// Analyzer runs the wage queries over one loaded dataset, logging each query
// and counting lookup outcomes.
type Analyzer struct {
	records []domain.WageRecord
	logger  *slog.Logger
	metrics *infrastructure.Metrics
}

// NewAnalyzer creates an analyzer over records. metrics may be nil.
func NewAnalyzer(records []domain.WageRecord, logger *slog.Logger, metrics *infrastructure.Metrics) *Analyzer {
	return &Analyzer{
		records: records,
		logger:  infrastructure.WithComponent(logger, "analyzer"),
		metrics: metrics,
	}
}

// Records returns the dataset the analyzer was built with
func (a *Analyzer) Records() []domain.WageRecord {
	return a.records
}

// StateLivingWage looks up one state and records the outcome
func (a *Analyzer) StateLivingWage(ctx context.Context, state string) (float64, error) {
	ctx, span := infrastructure.StartSpan(ctx, "livingwage.state_living_wage", attribute.String("state", state))
	wage, err := StateLivingWage(state, a.records)
	defer infrastructure.EndSpan(span, err)

	outcome := infrastructure.LookupFound
	switch {
	case apperrors.IsType(err, apperrors.ErrTypeNotFound):
		outcome = infrastructure.LookupNotFound
	case apperrors.IsType(err, apperrors.ErrTypeAmbiguous):
		outcome = infrastructure.LookupAmbiguous
	}
	span.SetAttributes(attribute.String("outcome", outcome))
	if a.metrics != nil {
		a.metrics.LookupsTotal.WithLabelValues(outcome).Inc()
	}

	if err != nil {
		a.logger.WarnContext(ctx, "State lookup failed",
			slog.String("state", state),
			slog.String("outcome", outcome),
			slog.String("error", err.Error()))
		return 0, err
	}

	a.logger.DebugContext(ctx, "State lookup",
		slog.String("state", state),
		slog.Float64("annual_living_wage", wage))
	return wage, nil
}

// LowWageStates filters to federal minimum wage states
func (a *Analyzer) LowWageStates(ctx context.Context) []domain.WageRecord {
	ctx, span := a.startQuery(ctx, "livingwage.low_wage_states")
	out := LowWageStates(a.records)
	endQuery(span, len(out))
	a.logger.InfoContext(ctx, "Low wage states selected",
		slog.Int("matched", len(out)),
		slog.Int("total", len(a.records)))
	return out
}

// ExpensiveStates returns the n most expensive state names
func (a *Analyzer) ExpensiveStates(ctx context.Context, n int) []string {
	ctx, span := a.startQuery(ctx, "livingwage.expensive_states", attribute.Int("requested", n))
	out := ExpensiveStates(a.records, n)
	endQuery(span, len(out))
	a.logger.InfoContext(ctx, "Expensive states ranked",
		slog.Int("requested", n),
		slog.Any("states", out))
	return out
}

// GapStates filters to states where minimum wage income misses the living wage
func (a *Analyzer) GapStates(ctx context.Context) []domain.WageRecord {
	ctx, span := a.startQuery(ctx, "livingwage.gap_states")
	out := GapStates(a.records)
	endQuery(span, len(out))
	a.logger.InfoContext(ctx, "Gap states selected",
		slog.Int("matched", len(out)),
		slog.Int("total", len(a.records)))
	return out
}

// LargestGaps returns the n states with the widest shortfall
func (a *Analyzer) LargestGaps(ctx context.Context, n int) []domain.WageRecord {
	ctx, span := a.startQuery(ctx, "livingwage.largest_gaps", attribute.Int("requested", n))
	out := LargestGaps(a.records, n)
	endQuery(span, len(out))
	a.logger.InfoContext(ctx, "Largest gaps selected",
		slog.Int("requested", n),
		slog.Int("selected", len(out)))
	return out
}

func (a *Analyzer) startQuery(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.Int("total", len(a.records)))
	return infrastructure.StartSpan(ctx, name, attrs...)
}

func endQuery(span trace.Span, matched int) {
	span.SetAttributes(attribute.Int("matched", matched))
	span.End()
}
