package middleware

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/jsonedit/pkg/server"
	"github.com/vango-dev/jsonedit/pkg/value"
)

// Default tracer name.
const defaultTracerName = "jsonedit"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "jsonedit").
	TracerName string

	// TracerProvider overrides the global provider.
	TracerProvider trace.TracerProvider

	// Filter determines which events to trace.
	// Return true to trace the event, false to skip.
	// If nil, all events are traced.
	Filter func(e *server.Event) bool

	// AttributeExtractor extracts custom attributes from the event.
	// Called for each traced event.
	AttributeExtractor func(e *server.Event) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(e *server.Event) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(e *server.Event) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

func newOTelConfig(opts []OTelOption) OTelConfig {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	if config.TracerProvider != nil {
		config.tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		config.tracer = otel.Tracer(config.TracerName)
	}
	return config
}

// OpenTelemetry creates middleware that traces every dispatched event.
//
// The span is named "jsonedit.<event>" and carries the session ID, the
// event type, the target HID and the sequence number. The handler runs with
// an event whose Context holds the span.
func OpenTelemetry(opts ...OTelOption) server.Middleware {
	config := newOTelConfig(opts)

	return func(e *server.Event, next func(*server.Event) error) error {
		if config.Filter != nil && !config.Filter(e) {
			return next(e)
		}

		attrs := []attribute.KeyValue{
			attribute.String("jsonedit.event_type", e.Type),
			attribute.String("jsonedit.event_target", e.HID),
			attribute.Int64("jsonedit.event_seq", int64(e.Seq)),
		}
		if e.Session != nil {
			attrs = append(attrs, attribute.String("jsonedit.session_id", e.Session.ID))
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(e)...)
		}

		ctx, span := config.tracer.Start(
			e.Context(),
			fmt.Sprintf("jsonedit.%s", e.Type),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attrs...),
			trace.WithTimestamp(time.Now()),
		)
		defer span.End()

		err := next(e.WithContext(ctx))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	}
}

// TraceCommit wraps a commit callback in a "jsonedit.commit" span, a child
// of the event span when the commit happens during a traced dispatch.
func TraceCommit(fn func(ctx context.Context, v value.Value) error, opts ...OTelOption) func(ctx context.Context, v value.Value) error {
	config := newOTelConfig(opts)

	return func(ctx context.Context, v value.Value) error {
		ctx, span := config.tracer.Start(ctx, "jsonedit.commit",
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(
				attribute.String("jsonedit.kind", v.Kind().String()),
				attribute.Int("jsonedit.len", v.Len()),
			))
		defer span.End()

		var err error
		if fn != nil {
			err = fn(ctx, v)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	}
}

// SpanFromEvent returns the span of the event being dispatched, or a
// non-recording span when the event is not traced.
func SpanFromEvent(e *server.Event) trace.Span {
	return trace.SpanFromContext(e.Context())
}
