package async

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"embedded-batteries-go/charger"
	sb "embedded-batteries-go/smartbattery"
)

// ErrWorkerStopped is returned for calls submitted after the worker's
// context ended.
var ErrWorkerStopped = errors.New("async: worker stopped")

// ErrWorkerNotStarted is returned for calls submitted before Start.
var ErrWorkerNotStarted = errors.New("async: worker not started")

// Worker owns a device on a single goroutine and runs submitted calls one at
// a time, in the order they are accepted.
//
// A call whose context ends before the worker picks it up returns ctx.Err().
// Once picked up, a call runs to completion; bus transactions are never
// abandoned half way.
type Worker struct {
	jobs    chan func()
	stopped chan struct{}
	start   sync.Once
	running atomic.Bool
}

// NewWorker returns an idle worker; calls fail with ErrWorkerNotStarted
// until Start is called.
func NewWorker() *Worker {
	return &Worker{
		jobs:    make(chan func()),
		stopped: make(chan struct{}),
	}
}

// Start launches the owning goroutine. It stops when ctx ends. Calling Start
// more than once has no effect.
func (w *Worker) Start(ctx context.Context) {
	w.start.Do(func() {
		w.running.Store(true)
		go w.loop(ctx)
	})
}

func (w *Worker) loop(ctx context.Context) {
	defer close(w.stopped)
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-w.jobs:
			job()
		}
	}
}

// Done is closed once the worker goroutine has exited.
func (w *Worker) Done() <-chan struct{} { return w.stopped }

// Do runs fn on the worker goroutine and waits for it to finish.
func (w *Worker) Do(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !w.running.Load() {
		return ErrWorkerNotStarted
	}
	finished := make(chan struct{})
	job := func() {
		defer close(finished)
		fn()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-w.stopped:
		return ErrWorkerStopped
	case w.jobs <- job:
	}
	<-finished
	return nil
}

// Battery returns a front end that runs every call of dev on w.
func (w *Worker) Battery(dev sb.SmartBattery) *BatteryDevice {
	return &BatteryDevice{ex: w, dev: dev}
}

// Charger returns a front end that runs every call of dev on w.
func (w *Worker) Charger(dev charger.Charger) *ChargerDevice {
	return &ChargerDevice{ex: w, dev: dev}
}
