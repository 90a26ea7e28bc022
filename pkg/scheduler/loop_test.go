package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_RunsTasksSequentially(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewLoop()
	go l.Run(ctx)

	var order []int
	fired := make(chan struct{})
	l.After(20*time.Millisecond, func() {
		order = append(order, 2)
		close(fired)
	})
	require.NoError(t, l.Do(ctx, func() { order = append(order, 1) }))

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer task did not run")
	}

	require.NoError(t, l.Do(ctx, func() {}))
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 0, l.Pending())
}

func TestLoop_DoAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	l := NewLoop()
	done := make(chan struct{})
	go func() {
		_ = l.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	err := l.Do(context.Background(), func() {})
	assert.ErrorIs(t, err, ErrStopped)
}
