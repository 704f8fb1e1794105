package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dtroode/cardkeeper-server/internal/config"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.Telemetry{ServiceName: "test"}, "dev")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, shutdown(ctx))
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address, nothing is exported.
	shutdown, err := Setup(context.Background(), config.Telemetry{Endpoint: "http://192.0.2.1:4318", ServiceName: "test"}, "dev")
	require.NoError(t, err)
	require.NoError(t, shutdown(context.Background()))
}
