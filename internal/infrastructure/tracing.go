package infrastructure

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"livingwage/internal/config"
)

// TracerName is the instrumentation scope of every span started here
const TracerName = "livingwage"

// Tracing owns the installed tracer provider and the file spans are written to
type Tracing struct {
	provider *sdktrace.TracerProvider
	file     *os.File
}

// InitializeTracing installs a global tracer provider for the configured exporter.
// With the "none" exporter nothing is installed and spans stay no-ops.
func InitializeTracing(cfg config.TracingConfig, version string) (*Tracing, error) {
	t := &Tracing{}

	var w io.Writer
	switch cfg.Exporter {
	case config.TraceExporterNone:
		return t, nil
	case config.TraceExporterStderr:
		w = os.Stderr
	case config.TraceExporterFile:
		f, err := openLogFile(cfg.FilePath)
		if err != nil {
			return nil, err
		}
		t.file = f
		w = f
	default:
		return nil, fmt.Errorf("unsupported trace exporter: %s", cfg.Exporter)
	}

	tp, err := NewTracerProvider(w, cfg.SampleRatio, version)
	if err != nil {
		t.Shutdown(context.Background())
		return nil, err
	}
	t.provider = tp
	otel.SetTracerProvider(tp)
	return t, nil
}

// NewTracerProvider builds a provider that writes each span to w as JSON when it ends
func NewTracerProvider(w io.Writer, sampleRatio float64, version string) (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(config.AppName),
		semconv.ServiceVersion(version),
	)

	return sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
	), nil
}

// Shutdown flushes the provider and closes the trace file
func (t *Tracing) Shutdown(ctx context.Context) error {
	var err error
	if t.provider != nil {
		err = t.provider.Shutdown(ctx)
		t.provider = nil
	}
	if t.file != nil {
		if cerr := t.file.Close(); err == nil {
			err = cerr
		}
		t.file = nil
	}
	return err
}

// StartSpan starts an internal span on the current global tracer provider
func StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...))
}

// EndSpan marks the span as failed when err is set, then ends it
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
