package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetReturnsUsableLogger(t *testing.T) {
	l := Get()
	require.NotNil(t, l)
	l.Info("profiling started")
	assert.Same(t, l, Get())
}

func TestInitRejectsBadLevel(t *testing.T) {
	_, err := newLogger(Config{Level: "verbose", Encoding: "json"})
	require.Error(t, err)
}

func TestNewLoggerConsoleEncoding(t *testing.T) {
	l, err := newLogger(Config{Level: "debug", Encoding: "console", Development: true})
	require.NoError(t, err)
	require.NotNil(t, l)
}

func TestWithContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), TableKey, "trips")
	ctx = context.WithValue(ctx, ColumnKey, "fare")
	ctx = context.WithValue(ctx, BatchKey, 2)

	l := WithContext(ctx)
	require.NotNil(t, l)

	// Plain contexts produce the base logger unchanged
	assert.NotNil(t, WithContext(context.Background()))
}

func TestSyncWithoutInit(t *testing.T) {
	assert.NotPanics(t, func() { _ = Sync() })
}
