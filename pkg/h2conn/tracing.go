package h2conn

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/albertbausili/h2conn/internal/stream"
)

// tracingListener opens one span per stream lifetime: started when the
// stream becomes active, ended when it is removed from the connection.
type tracingListener struct {
	tracer trace.Tracer
	spans  map[uint32]trace.Span
}

func newTracingListener() *tracingListener {
	return &tracingListener{
		tracer: otel.Tracer("h2conn"),
		spans:  make(map[uint32]trace.Span),
	}
}

func (t *tracingListener) StreamAdded(*stream.Stream) {}

func (t *tracingListener) StreamActive(s *stream.Stream) {
	_, span := t.tracer.Start(context.Background(), "h2.stream",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.Int64("h2.stream_id", int64(s.ID())),
			attribute.Int("h2.weight", s.Weight()),
		),
	)
	t.spans[s.ID()] = span
}

func (t *tracingListener) StreamHalfClosed(s *stream.Stream) {
	if span, ok := t.spans[s.ID()]; ok {
		span.AddEvent("half-closed", trace.WithAttributes(
			attribute.String("h2.state", s.State().String()),
		))
	}
}

func (t *tracingListener) StreamInactive(*stream.Stream) {}

func (t *tracingListener) StreamRemoved(s *stream.Stream) {
	span, ok := t.spans[s.ID()]
	if !ok {
		return
	}
	delete(t.spans, s.ID())
	span.SetStatus(codes.Ok, "")
	span.End()
}

func (t *tracingListener) StreamPriorityChanged(s, _ *stream.Stream) {
	if span, ok := t.spans[s.ID()]; ok {
		span.AddEvent("priority changed", trace.WithAttributes(
			attribute.Int("h2.weight", s.Weight()),
		))
	}
}

func (t *tracingListener) StreamPrioritySubtreeChanged(s, subtreeRoot *stream.Stream) {
	if span, ok := t.spans[s.ID()]; ok {
		span.AddEvent("priority subtree restructured", trace.WithAttributes(
			attribute.Int64("h2.subtree_root_id", int64(subtreeRoot.ID())),
		))
	}
}
