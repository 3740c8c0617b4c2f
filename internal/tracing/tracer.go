// Package tracing wires OpenTelemetry spans around saved-search persistence.
// Tracing is off by default; when enabled, spans go to a JSONL file, stdout,
// or an OTLP collector.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/tagsearch/internal/log"
)

// Exporter names accepted in Config.Exporter.
const (
	ExporterNone   = "none"
	ExporterFile   = "file"
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"
)

const (
	defaultServiceName  = "tagsearch"
	defaultOTLPEndpoint = "localhost:4317"
)

// Config configures tracing.
type Config struct {
	// Enabled controls whether tracing is active. When false a no-op tracer
	// is used.
	Enabled bool `mapstructure:"enabled"`

	// Exporter is one of "none", "file", "stdout", "otlp".
	Exporter string `mapstructure:"exporter"`

	// FilePath is the JSONL output for the file exporter.
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector address for the otlp exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate is the fraction of traces kept, 0 < rate <= 1.
	SampleRate float64 `mapstructure:"sample_rate"`

	// ServiceName identifies tagsearch in exported traces.
	ServiceName string `mapstructure:"service_name"`
}

// DefaultConfig returns tracing disabled with file export ready to enable.
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		Exporter:     ExporterFile,
		OTLPEndpoint: defaultOTLPEndpoint,
		SampleRate:   1.0,
		ServiceName:  defaultServiceName,
	}
}

// Validate checks the exporter name and sample rate.
func (c Config) Validate() error {
	switch c.Exporter {
	case ExporterNone, ExporterFile, ExporterStdout, ExporterOTLP, "":
	default:
		return fmt.Errorf("tracing.exporter must be one of none, file, stdout, otlp (got %q)", c.Exporter)
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be between 0 and 1 (got %v)", c.SampleRate)
	}
	return nil
}

// Provider owns the tracer provider and its exporter.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	enabled  bool
}

// NewProvider builds a provider from cfg. A disabled config yields a no-op
// provider.
func NewProvider(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{tracer: noop.NewTracerProvider().Tracer("noop")}, nil
	}

	exporter, err := newExporter(cfg)
	if err != nil {
		return nil, err
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = defaultServiceName
	}
	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}

	opts := []sdktrace.TracerProviderOption{
		// Schemaless avoids schema URL conflicts with resource.Default().
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRate))),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}
	provider := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(provider)

	log.Info(log.CatTrace, "Tracing enabled", "exporter", cfg.Exporter, "sample_rate", sampleRate)
	return &Provider{
		provider: provider,
		tracer:   provider.Tracer(serviceName),
		enabled:  true,
	}, nil
}

func newExporter(cfg Config) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case ExporterFile:
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("tracing.file_path required for file exporter")
		}
		exp, err := NewFileExporter(cfg.FilePath)
		if err != nil {
			return nil, fmt.Errorf("create file exporter: %w", err)
		}
		return exp, nil
	case ExporterStdout:
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		return exp, nil
	case ExporterOTLP:
		endpoint := cfg.OTLPEndpoint
		if endpoint == "" {
			endpoint = defaultOTLPEndpoint
		}
		exp, err := otlptracegrpc.New(context.Background(),
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
		return exp, nil
	case ExporterNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}
}

// Tracer returns the tracer. It is a no-op tracer when disabled.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Enabled reports whether spans are recorded.
func (p *Provider) Enabled() bool {
	return p.enabled
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider == nil {
		return nil
	}
	log.Debug(log.CatTrace, "Flushing spans")
	return p.provider.Shutdown(ctx)
}
