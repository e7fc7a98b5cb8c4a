package otel_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gotel "go.opentelemetry.io/otel"

	"github.com/light-bringer/ledger-service/internal/platform/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := otel.Setup(context.Background(), otel.Options{ServiceName: "ledger-test", Enabled: true})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_NoopWhenDisabled(t *testing.T) {
	before := gotel.GetTracerProvider()

	shutdown, err := otel.Setup(context.Background(), otel.Options{
		ServiceName: "ledger-test",
		Endpoint:    "http://localhost:4318",
	})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, gotel.GetTracerProvider())
}

func TestSetup_InstallsProvider(t *testing.T) {
	before := gotel.GetTracerProvider()

	shutdown, err := otel.Setup(context.Background(), otel.Options{
		ServiceName: "ledger-test",
		Endpoint:    "http://127.0.0.1:4318",
		Enabled:     true,
	})
	require.NoError(t, err)
	assert.NotEqual(t, before, gotel.GetTracerProvider())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = shutdown(ctx)
}
