package livingwage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"livingwage/internal/infrastructure"
	logtest "livingwage/internal/shared/testutil"
)

func TestAnalyzer_StateLivingWageMetrics(t *testing.T) {
	metrics := infrastructure.NewMetrics()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	records := append(sampleRecords(), wage("Texas", "TX", 8, 50000))
	a := NewAnalyzer(records, logger, metrics)
	ctx := context.Background()

	got, err := a.StateLivingWage(ctx, "CA")
	require.NoError(t, err)
	assert.Equal(t, 90000.0, got)

	_, err = a.StateLivingWage(ctx, "Minnesota")
	assert.ErrorIs(t, err, ErrStateNotFound)

	_, err = a.StateLivingWage(ctx, "Texas")
	assert.ErrorIs(t, err, ErrAmbiguousState)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LookupsTotal.WithLabelValues(infrastructure.LookupFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LookupsTotal.WithLabelValues(infrastructure.LookupNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.LookupsTotal.WithLabelValues(infrastructure.LookupAmbiguous)))
}

func TestAnalyzer_Queries(t *testing.T) {
	a := NewAnalyzer(sampleRecords(), slog.New(slog.NewJSONHandler(io.Discard, nil)), nil)
	ctx := context.Background()

	assert.Len(t, a.Records(), 4)
	assert.Equal(t, []string{"Arkansas", "Texas"}, states(a.LowWageStates(ctx)))
	assert.Equal(t, []string{"California", "Washington"}, a.ExpensiveStates(ctx, 2))
	assert.Len(t, a.GapStates(ctx), 3)
	assert.Equal(t, []string{"California"}, states(a.LargestGaps(ctx, 1)))
}

func TestAnalyzer_LogsFailedLookups(t *testing.T) {
	logger, handler := logtest.NewTestLogger(t)
	a := NewAnalyzer(sampleRecords(), logger, nil)

	_, err := a.StateLivingWage(context.Background(), "Minnesota")
	require.Error(t, err)

	rec := logtest.AssertLogged(t, handler, slog.LevelWarn, "State lookup failed")
	assert.Equal(t, "analyzer", rec.Attrs["component"])
	assert.Equal(t, infrastructure.LookupNotFound, rec.Attrs["outcome"])
	logtest.AssertNoErrors(t, handler)
}

func TestAnalyzer_Spans(t *testing.T) {
	recorder := logtest.NewSpanRecorder(t)
	a := NewAnalyzer(sampleRecords(), slog.New(slog.NewJSONHandler(io.Discard, nil)), nil)
	ctx := context.Background()

	a.LowWageStates(ctx)
	a.LargestGaps(ctx, 2)
	_, err := a.StateLivingWage(ctx, "Minnesota")
	require.Error(t, err)

	assert.Equal(t, []string{
		"livingwage.low_wage_states",
		"livingwage.largest_gaps",
		"livingwage.state_living_wage",
	}, logtest.SpanNames(recorder))

	low, ok := logtest.EndedSpan(recorder, "livingwage.low_wage_states")
	require.True(t, ok)
	assert.Contains(t, low.Attributes(), attribute.Int("matched", 2))
	assert.Contains(t, low.Attributes(), attribute.Int("total", len(sampleRecords())))

	lookup, ok := logtest.EndedSpan(recorder, "livingwage.state_living_wage")
	require.True(t, ok)
	assert.Equal(t, codes.Error, lookup.Status().Code)
	assert.Contains(t, lookup.Attributes(), attribute.String("outcome", infrastructure.LookupNotFound))
}
