package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/tagsearch/internal/searches/domain"
)

// TracedStore wraps a domain.Store and records one span per call.
type TracedStore struct {
	next    domain.Store
	tracer  trace.Tracer
	backend string
}

var _ domain.Store = (*TracedStore)(nil)

// WrapStore returns next unchanged when tracer is nil.
func WrapStore(next domain.Store, tracer trace.Tracer, backend string) domain.Store {
	if tracer == nil {
		return next
	}
	return &TracedStore{next: next, tracer: tracer, backend: backend}
}

func (s *TracedStore) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String(AttrStoreBackend, s.backend))
	return s.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// LoadAll implements domain.Store.
func (s *TracedStore) LoadAll(ctx context.Context) (map[string]string, error) {
	ctx, span := s.start(ctx, SpanStoreLoad)
	out, err := s.next.LoadAll(ctx)
	if err == nil {
		span.SetAttributes(attribute.Int(AttrSearchCount, len(out)))
	}
	finish(span, err)
	return out, err
}

// Put implements domain.Store.
func (s *TracedStore) Put(ctx context.Context, tag, query string) error {
	ctx, span := s.start(ctx, SpanStorePut,
		attribute.String(AttrTag, tag),
		attribute.Int(AttrQueryLength, len(query)),
	)
	err := s.next.Put(ctx, tag, query)
	finish(span, err)
	return err
}

// Remove implements domain.Store.
func (s *TracedStore) Remove(ctx context.Context, tag string) error {
	ctx, span := s.start(ctx, SpanStoreRemove, attribute.String(AttrTag, tag))
	err := s.next.Remove(ctx, tag)
	finish(span, err)
	return err
}

// Close implements domain.Store.
func (s *TracedStore) Close() error {
	return s.next.Close()
}
