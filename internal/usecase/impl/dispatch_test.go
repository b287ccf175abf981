package impl

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_ReportsErrorsToSink(t *testing.T) {
	dispatcher := NewDispatcher(slog.New(slog.DiscardHandler))

	var (
		mu       sync.Mutex
		reported map[string]error
	)
	reported = make(map[string]error)

	dispatcher.OnError(func(task string, err error) {
		mu.Lock()
		reported[task] = err
		mu.Unlock()
	})

	dispatcher.Go(context.Background(), "ok", func(context.Context) error {
		return nil
	})
	dispatcher.Go(context.Background(), "boom", func(context.Context) error {
		return errors.New("exploded")
	})
	dispatcher.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, reported, 1)
	assert.EqualError(t, reported["boom"], "exploded")
}

func TestDispatcher_RecoversPanics(t *testing.T) {
	dispatcher := NewDispatcher(slog.New(slog.DiscardHandler))

	var (
		mu  sync.Mutex
		got error
	)

	dispatcher.OnError(func(_ string, err error) {
		mu.Lock()
		got = err
		mu.Unlock()
	})

	dispatcher.Go(context.Background(), "panicking", func(context.Context) error {
		panic("unexpected state")
	})
	dispatcher.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Error(t, got)
	assert.Contains(t, got.Error(), "unexpected state")
}

func TestDispatcher_SurvivesCanceledCaller(t *testing.T) {
	dispatcher := NewDispatcher(slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // The caller is already gone when the task starts.

	done := false
	dispatcher.Go(ctx, "detached", func(runCtx context.Context) error {
		require.NoError(t, runCtx.Err())
		done = true

		return nil
	})
	dispatcher.Wait()

	assert.True(t, done)
}
