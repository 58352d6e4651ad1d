package pubsub

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "folio-pubsub"

// TracingConfig selects whether load events are traced and where spans go.
type TracingConfig struct {
	Enabled     bool
	ServiceName string
	ZipkinURL   string
	// SampleRatio is the fraction of root traces kept, in [0, 1].
	SampleRatio float64
}

// DefaultTracingConfig returns tracing disabled with a local Zipkin endpoint.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "folio",
		ZipkinURL:   "http://localhost:9411/api/v2/spans",
		SampleRatio: 1,
	}
}

func (c TracingConfig) sampler() sdktrace.Sampler {
	ratio := min(max(c.SampleRatio, 0), 1)
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
}

// SetupOTel builds the tracer used for bus spans. When tracing is disabled it
// returns a no-op tracer and a no-op cleanup.
func SetupOTel(ctx context.Context, config TracingConfig) (trace.Tracer, func(), error) {
	if !config.Enabled {
		return noop.NewTracerProvider().Tracer(tracerName), func() {}, nil
	}

	exporter, err := zipkin.New(config.ZipkinURL)
	if err != nil {
		return nil, nil, fmt.Errorf("create zipkin exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(config.ServiceName)),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create trace resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(config.sampler()),
	)
	otel.SetTracerProvider(tp)

	cleanup := func() {
		if err := tp.Shutdown(context.WithoutCancel(ctx)); err != nil {
			slog.Error("Failed to shut down tracer provider", "error", err)
		}
	}
	return tp.Tracer(tracerName), cleanup, nil
}

func messageAttributes(operation, topic string, msg *message.Message) trace.SpanStartOption {
	return trace.WithAttributes(
		attribute.String("messaging.system", "watermill"),
		attribute.String("messaging.operation", operation),
		attribute.String("messaging.destination", topic),
		attribute.String("messaging.message_id", msg.UUID),
		attribute.String("folio.source", msg.Metadata.Get(metaKeySource)),
		attribute.Int("messaging.message_payload_size_bytes", len(msg.Payload)),
	)
}

// TracingMiddleware wraps a watermill handler in a processing span.
func TracingMiddleware(tracer trace.Tracer) func(message.HandlerFunc) message.HandlerFunc {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			topic := msg.Metadata.Get(metaKeyTopic)
			ctx, span := tracer.Start(msg.Context(), "pubsub.process."+topic,
				messageAttributes("process", topic, msg))
			defer span.End()
			msg.SetContext(ctx)

			produced, err := h(msg)
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return nil, err
			}
			return produced, nil
		}
	}
}

// tracingPublisher opens a publish span per message.
type tracingPublisher struct {
	publisher message.Publisher
	tracer    trace.Tracer
}

func (p *tracingPublisher) Publish(topic string, messages ...*message.Message) error {
	spans := make([]trace.Span, 0, len(messages))
	for _, msg := range messages {
		ctx, span := p.tracer.Start(msg.Context(), "pubsub.publish."+topic,
			messageAttributes("publish", topic, msg))
		msg.SetContext(ctx)
		spans = append(spans, span)
	}

	err := p.publisher.Publish(topic, messages...)
	for _, span := range spans {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
	return err
}

func (p *tracingPublisher) Close() error {
	return p.publisher.Close()
}
