package tracing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// FileExporter appends spans to a JSONL file, one span per line, for
// inspection with jq.
type FileExporter struct {
	mu   sync.Mutex
	file *os.File
}

var _ sdktrace.SpanExporter = (*FileExporter)(nil)

// NewFileExporter opens path for appending, creating parent directories.
func NewFileExporter(path string) (*FileExporter, error) {
	clean := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(clean), 0o750); err != nil {
		return nil, fmt.Errorf("create trace directory: %w", err)
	}
	file, err := os.OpenFile(clean, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) // #nosec G304 -- path is cleaned above
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	return &FileExporter{file: file}, nil
}

// ExportSpans writes one JSON object per span.
func (e *FileExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	if len(spans) == 0 {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.file == nil {
		return fmt.Errorf("trace file closed")
	}

	enc := json.NewEncoder(e.file)
	for _, span := range spans {
		if err := enc.Encode(toRecord(span)); err != nil {
			return fmt.Errorf("encode span: %w", err)
		}
	}
	return nil
}

// Shutdown closes the file. Further exports fail.
func (e *FileExporter) Shutdown(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.file == nil {
		return nil
	}
	err := e.file.Close()
	e.file = nil
	return err
}

// SpanRecord is one line of the trace file.
type SpanRecord struct {
	TraceID      string         `json:"trace_id"`
	SpanID       string         `json:"span_id"`
	ParentSpanID string         `json:"parent_span_id,omitempty"`
	Name         string         `json:"name"`
	StartTime    string         `json:"start_time"`
	DurationMs   float64        `json:"duration_ms"`
	Status       string         `json:"status"`
	StatusMsg    string         `json:"status_message,omitempty"`
	Attributes   map[string]any `json:"attributes,omitempty"`
	Events       []EventRecord  `json:"events,omitempty"`
}

// EventRecord is a span event inside a SpanRecord.
type EventRecord struct {
	Name       string         `json:"name"`
	Timestamp  string         `json:"timestamp"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

func toRecord(span sdktrace.ReadOnlySpan) SpanRecord {
	sc := span.SpanContext()
	rec := SpanRecord{
		TraceID:    sc.TraceID().String(),
		SpanID:     sc.SpanID().String(),
		Name:       span.Name(),
		StartTime:  span.StartTime().Format(time.RFC3339Nano),
		DurationMs: float64(span.EndTime().Sub(span.StartTime()).Microseconds()) / 1000.0,
		Status:     statusName(span.Status().Code),
		StatusMsg:  span.Status().Description,
		Attributes: attrMap(span.Attributes()),
	}
	if span.Parent().IsValid() {
		rec.ParentSpanID = span.Parent().SpanID().String()
	}
	for _, evt := range span.Events() {
		rec.Events = append(rec.Events, EventRecord{
			Name:       evt.Name,
			Timestamp:  evt.Time.Format(time.RFC3339Nano),
			Attributes: attrMap(evt.Attributes),
		})
	}
	return rec
}

func statusName(code codes.Code) string {
	switch code {
	case codes.Ok:
		return "OK"
	case codes.Error:
		return "ERROR"
	default:
		return "UNSET"
	}
}

func attrMap(kvs []attribute.KeyValue) map[string]any {
	if len(kvs) == 0 {
		return nil
	}
	out := make(map[string]any, len(kvs))
	for _, kv := range kvs {
		out[string(kv.Key)] = kv.Value.AsInterface()
	}
	return out
}
