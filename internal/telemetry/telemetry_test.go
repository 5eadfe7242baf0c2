package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/timelock/internal/config"
)

func TestAttributesCarryServiceName(t *testing.T) {
	attrs := Attributes("timelock-test")

	found := false
	for _, kv := range attrs {
		if kv.Key == attribute.Key("service.name") {
			found = true
			if kv.Value.AsString() != "timelock-test" {
				t.Errorf("service.name = %q, want timelock-test", kv.Value.AsString())
			}
		}
	}
	if !found {
		t.Error("service.name attribute missing")
	}
}

func TestTracerAndMeterWithoutSetup(t *testing.T) {
	_, span := Tracer("test").Start(context.Background(), "test.span")
	span.End()

	counter, err := Meter("test").Int64Counter("test.counter")
	if err != nil {
		t.Fatalf("Int64Counter() error = %v", err)
	}
	counter.Add(context.Background(), 1)

	_, span = NoopTracer().Start(context.Background(), "noop.span")
	if span.SpanContext().IsValid() {
		t.Error("noop tracer produced a valid span context")
	}
	span.End()
}

func TestSetupDisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.TelemetryConfig{Enabled: false, ServiceName: "timelock"})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}
