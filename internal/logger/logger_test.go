package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefaultLoggerIsUsableBeforeInitialize(t *testing.T) {
	assert.NotPanics(t, func() {
		Info("before initialize")
		Error(nil)
		WarnCtx(context.Background(), "warn")
	})
}

func TestInitialize(t *testing.T) {
	require.NoError(t, Initialize(Config{Service: "test", Debug: true}))
	assert.NotNil(t, Default())
	assert.True(t, Default().Core().Enabled(zap.DebugLevel))
}

func TestWithFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	previous := log
	log = zap.New(core)
	t.Cleanup(func() { log = previous })

	ctx := WithFields(context.Background(), zap.String("request_id", "r-1"))
	ctx = WithFields(ctx, zap.String("invoice_id", "INV-1"))
	InfoCtx(ctx, "minted")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "r-1", fields["request_id"])
	assert.Equal(t, "INV-1", fields["invoice_id"])
}
