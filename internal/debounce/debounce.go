// Package debounce delays propagation of a rapidly changing value until the
// input has settled. Only the most recent value is ever emitted: each Set
// cancels the pending emission and schedules a new one, so a burst of
// changes produces exactly one emission, delay after the last change.
package debounce

import (
	"sync"
	"time"
)

// Debouncer propagates the latest value passed to Set once the value has
// remained unchanged for the configured delay. Emissions invoke the
// callback on a timer goroutine.
type Debouncer[T any] struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
	emit  func(T)
}

// New builds a Debouncer that invokes emit after input settles for delay.
func New[T any](delay time.Duration, emit func(T)) *Debouncer[T] {
	return &Debouncer[T]{delay: delay, emit: emit}
}

// Set records a new input value, cancelling any pending emission and
// scheduling the value to be emitted after the settle window.
func (d *Debouncer[T]) Set(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.emit(value)
	})
}

// Stop cancels any pending emission. It does not wait for an in-flight
// callback to finish.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
