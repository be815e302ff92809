package workers

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type flakyWorker struct {
	runs     atomic.Int32
	failures int32
}

// Run panics for the first failures runs, then blocks until canceled.
func (w *flakyWorker) Run(ctx context.Context) error {
	n := w.runs.Add(1)
	if n <= w.failures {
		panic(fmt.Sprintf("boom %d", n))
	}
	<-ctx.Done()
	return nil
}

type oneShotWorker struct {
	runs atomic.Int32
}

func (w *oneShotWorker) Run(context.Context) error {
	w.runs.Add(1)
	return nil
}

func TestSupervisor_Restarts_A_Panicking_Worker(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromString("error")
	worker := &flakyWorker{failures: 2}

	sup := NewSupervisor(log, 10*time.Millisecond)
	sup.Add(worker)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sup.Run(ctx)
		close(done)
	}()

	// Given enough time for two crashes and one healthy start
	req.Eventually(func() bool {
		return worker.runs.Load() == 3
	}, time.Second, 5*time.Millisecond)

	// When the parent context is canceled
	cancel()

	// Then the supervisor drains and no further restart happens
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("supervisor did not stop")
	}
	req.Equal(int32(3), worker.runs.Load())
}

func TestSupervisor_Does_Not_Restart_A_Clean_Finish(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromString("error")
	worker := &oneShotWorker{}

	sup := NewSupervisor(log, time.Millisecond)
	sup.Add(worker)

	// When the worker returns nil, Run drains immediately
	sup.Run(context.Background())

	req.Equal(int32(1), worker.runs.Load())
}

func TestSupervisor_Stop_Cancels_Running_Workers(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromString("error")
	worker := &flakyWorker{} // no failures: blocks until canceled

	sup := NewSupervisor(log, time.Millisecond)
	sup.Add(worker)

	done := make(chan struct{})
	go func() {
		sup.Run(context.Background())
		close(done)
	}()

	req.Eventually(func() bool {
		return worker.runs.Load() == 1
	}, time.Second, time.Millisecond)

	sup.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("supervisor did not stop")
	}
}
