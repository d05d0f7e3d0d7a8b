package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWorkingPool_ExecutesJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewWorkingPool(2, 8)

	var wg sync.WaitGroup
	wg.Add(1)
	go pool.Start(ctx, &wg)

	var executed atomic.Int32
	done := make(chan struct{})
	for range 5 {
		pool.SubmitJob(func(_ context.Context) error {
			if executed.Add(1) == 5 {
				close(done)
			}
			return nil
		})
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("jobs did not run in time")
	}

	cancel()
	wg.Wait()
	assert.Equal(t, int32(5), executed.Load())
}

func TestWorkingPool_RecoversFromPanic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	pool := NewWorkingPool(1, 4)

	var wg sync.WaitGroup
	wg.Add(1)
	go pool.Start(ctx, &wg)

	done := make(chan struct{})
	pool.SubmitJob(func(_ context.Context) error {
		panic("boom")
	})
	pool.SubmitJob(func(_ context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive a panicking job")
	}

	cancel()
	wg.Wait()
}
