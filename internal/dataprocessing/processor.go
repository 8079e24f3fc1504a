package dataprocessing

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	apperrors "livingwage/internal/errors"
	"livingwage/internal/infrastructure"
	"livingwage/internal/validation"
	"livingwage/pkg/contracts/domain"
)

// Dataset labels used in logs and metrics
const (
	DatasetWages   = "wages"
	DatasetSunrise = "sunrise"
)

// Loader wraps the package readers with file checks, structured logging and metrics.
type Loader struct {
	logger  *slog.Logger
	metrics *infrastructure.Metrics
	files   *validation.FileValidator
}

// NewLoader creates a loader. metrics may be nil.
func NewLoader(logger *slog.Logger, metrics *infrastructure.Metrics) *Loader {
	logger = infrastructure.WithComponent(logger, "loader")
	return &Loader{
		logger:  logger,
		metrics: metrics,
		files:   validation.NewFileValidator(logger),
	}
}

// LoadTable validates and reads a CSV or XLSX file
func (l *Loader) LoadTable(ctx context.Context, path, dataset string) (fields domain.FieldList, table domain.Table, err error) {
	ctx, span := infrastructure.StartSpan(ctx, "dataprocessing.load_table",
		attribute.String("dataset", dataset),
		attribute.String("path", path))
	defer func() { infrastructure.EndSpan(span, err) }()

	if err = l.files.ValidateDataFile(path); err != nil {
		return nil, nil, err
	}

	start := time.Now()
	fields, table, err = Load(path)
	if err != nil {
		l.logger.ErrorContext(ctx, "Failed to load table",
			slog.String("dataset", dataset),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, nil, err
	}

	span.SetAttributes(attribute.Int("rows", len(table)))
	if l.metrics != nil {
		l.metrics.RowsLoaded.WithLabelValues(dataset).Add(float64(len(table)))
	}
	l.logger.InfoContext(ctx, "Loaded table",
		slog.String("dataset", dataset),
		slog.String("path", path),
		slog.Int("fields", len(fields)),
		slog.Int("rows", len(table)),
		slog.Duration("elapsed", time.Since(start)))

	return fields, table, nil
}

// LoadWages reads the living wage file, coerces the two wage fields and parses
// typed records. The coerced table is returned alongside for printing.
func (l *Loader) LoadWages(ctx context.Context, path string) (fields domain.FieldList, table domain.Table, records []domain.WageRecord, err error) {
	ctx, span := infrastructure.StartSpan(ctx, "dataprocessing.load_wages", attribute.String("path", path))
	defer func() { infrastructure.EndSpan(span, err) }()

	fields, table, err = l.LoadTable(ctx, path, DatasetWages)
	if err != nil {
		return nil, nil, nil, err
	}

	if err = CoerceFloats(table, domain.FieldHourlyMinimumWage, domain.FieldAnnualLivingWage); err != nil {
		l.recordCoercionFailure(ctx, err)
		return nil, nil, nil, err
	}
	span.AddEvent("coerced")

	records, err = ParseWageRecords(table)
	if err != nil {
		l.logger.ErrorContext(ctx, "Invalid living wage record", slog.String("error", err.Error()))
		return nil, nil, nil, err
	}
	span.SetAttributes(attribute.Int("records", len(records)))

	return fields, table, records, nil
}

// LoadSunrise reads the sunrise/sunset file and parses typed records
func (l *Loader) LoadSunrise(ctx context.Context, path string) (fields domain.FieldList, table domain.Table, records []domain.SunRecord, err error) {
	ctx, span := infrastructure.StartSpan(ctx, "dataprocessing.load_sunrise", attribute.String("path", path))
	defer func() { infrastructure.EndSpan(span, err) }()

	fields, table, err = l.LoadTable(ctx, path, DatasetSunrise)
	if err != nil {
		return nil, nil, nil, err
	}

	records, err = ParseSunRecords(table)
	if err != nil {
		l.logger.ErrorContext(ctx, "Invalid sunrise record", slog.String("error", err.Error()))
		return nil, nil, nil, err
	}

	return fields, table, records, nil
}

func (l *Loader) recordCoercionFailure(ctx context.Context, err error) {
	field := "unknown"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if f, ok := appErr.Context["field"].(string); ok {
			field = f
		}
	}
	if l.metrics != nil {
		l.metrics.CoercionFailures.WithLabelValues(field).Inc()
	}
	l.logger.ErrorContext(ctx, "Numeric coercion failed",
		slog.String("field", field),
		slog.String("error", err.Error()))
}
