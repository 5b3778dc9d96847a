package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type countingDeliverer struct {
	calls atomic.Int32
	err   error
}

func (c *countingDeliverer) DeliverPending(context.Context) (int, int, error) {
	c.calls.Add(1)
	return 1, 0, c.err
}

func TestEmailQueueWorkerRunsImmediatelyAndStops(t *testing.T) {
	d := &countingDeliverer{}
	w := NewEmailQueueWorker(d, time.Hour, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return d.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	assert.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestEmailQueueWorkerSurvivesQueueErrors(t *testing.T) {
	d := &countingDeliverer{err: errors.New("backend down")}
	w := NewEmailQueueWorker(d, time.Hour, zerolog.Nop())

	w.RunOnce(context.Background())
	w.RunOnce(context.Background())

	assert.EqualValues(t, 2, d.calls.Load())
}

func TestMaintenanceWorkerRunsEveryTask(t *testing.T) {
	var a, b int
	w := NewMaintenanceWorker(time.Hour, zerolog.Nop(),
		Task{Name: "a", Run: func() int { a++; return 1 }},
		Task{Name: "b", Run: func() int { b++; return 0 }},
	)

	w.RunOnce()

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}
