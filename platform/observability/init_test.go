package observability

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), Config{Enabled: false})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	// При выключенном observability глобально ставятся noop providers
	if _, ok := otel.GetTracerProvider().(nooptrace.TracerProvider); !ok {
		t.Errorf("TracerProvider = %T, want noop", otel.GetTracerProvider())
	}
	if _, ok := otel.GetMeterProvider().(noopmetric.MeterProvider); !ok {
		t.Errorf("MeterProvider = %T, want noop", otel.GetMeterProvider())
	}

	if err := shutdown(context.Background()); err != nil {
		t.Errorf("shutdown() error = %v", err)
	}
}
