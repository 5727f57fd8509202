package task

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/sleeptracker-server/internal/testutil"
)

func TestRunner_Go_RunsTasks(t *testing.T) {
	runner := NewRunner(4, testutil.MakeNoopLogger())

	var ran atomic.Int64
	for range 10 {
		runner.Go("count", func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}
	runner.Wait()

	// Some tasks may be dropped once the budget is saturated, but at least
	// one must have run and none may run twice.
	got := ran.Load()
	require.Greater(t, got, int64(0))
	require.LessOrEqual(t, got, int64(10))
}

func TestRunner_Go_DropsWhenSaturated(t *testing.T) {
	runner := NewRunner(1, testutil.MakeNoopLogger())

	release := make(chan struct{})
	started := make(chan struct{})
	runner.Go("blocker", func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	})
	<-started

	var ran atomic.Bool
	runner.Go("dropped", func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	close(release)
	runner.Wait()

	assert.False(t, ran.Load())
}

func TestRunner_Go_FailureDoesNotStopOthers(t *testing.T) {
	runner := NewRunner(2, testutil.MakeNoopLogger())

	var mu sync.Mutex
	var order []string

	runner.Go("failing", func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, "failing")
		return errors.New("boom")
	})
	runner.Wait()

	runner.Go("following", func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		order = append(order, "following")
		return nil
	})
	runner.Wait()

	assert.Equal(t, []string{"failing", "following"}, order)
}

func TestRunner_MinimumConcurrency(t *testing.T) {
	runner := NewRunner(0, testutil.MakeNoopLogger())

	var ran atomic.Bool
	runner.Go("single", func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})
	runner.Wait()

	assert.True(t, ran.Load())
}
