package logger

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInit(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		t.Run(env, func(t *testing.T) {
			require.NoError(t, Init(env))
			assert.NotNil(t, Get())
		})
	}
}

func TestWithContext_AddsCorrelationID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log.Store(zap.New(core))
	t.Cleanup(func() { log.Store(nil) })

	ctx := ContextWithCorrelationID(context.Background(), "req-42")
	WithContext(ctx).Info("rendered")
	WithContext(context.Background()).Info("plain")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "req-42", entries[0].ContextMap()["correlation_id"])
	assert.NotContains(t, entries[1].ContextMap(), "correlation_id")
}

func TestGet_ConcurrentFallback(t *testing.T) {
	log.Store(nil)
	t.Cleanup(func() { log.Store(nil) })

	var wg sync.WaitGroup
	loggers := make([]*zap.Logger, 16)
	for i := range loggers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			loggers[i] = Get()
		}(i)
	}
	wg.Wait()

	require.NotNil(t, loggers[0])
	for _, l := range loggers {
		assert.Same(t, loggers[0], l)
	}
}
