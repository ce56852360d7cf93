package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_Disabled(t *testing.T) {
	p, err := Setup(context.Background(), Config{})
	require.NoError(t, err)
	assert.False(t, p.Enabled())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestSetup_Enabled(t *testing.T) {
	p, err := Setup(context.Background(), Config{Endpoint: "http://127.0.0.1:4318", Component: "test"})
	require.NoError(t, err)
	assert.True(t, p.Enabled())

	// nothing was recorded, so shutdown has nothing to flush
	assert.NoError(t, p.Shutdown(context.Background()))
}
