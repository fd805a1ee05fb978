package debounce

import (
	"sync"
	"testing"
	"time"
)

// collector records emitted values with timestamps.
type collector struct {
	mu     sync.Mutex
	values []string
}

func (c *collector) emit(v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = append(c.values, v)
}

func (c *collector) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.values))
	copy(out, c.values)
	return out
}

func TestDebouncer_BurstEmitsFinalValueOnce(t *testing.T) {
	t.Parallel()

	var c collector
	d := New(30*time.Millisecond, c.emit)
	defer d.Stop()

	// A burst of changes, each arriving inside the settle window.
	for _, v := range []string{"p", "pi", "pik", "pika"} {
		d.Set(v)
		time.Sleep(5 * time.Millisecond)
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if len(c.snapshot()) > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Allow extra settle time to catch spurious double emissions.
	time.Sleep(60 * time.Millisecond)

	got := c.snapshot()
	if len(got) != 1 {
		t.Fatalf("emissions = %v, want exactly one", got)
	}
	if got[0] != "pika" {
		t.Fatalf("emitted %q, want final value %q", got[0], "pika")
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	t.Parallel()

	var c collector
	d := New(20*time.Millisecond, c.emit)
	d.Set("doomed")
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	if got := c.snapshot(); len(got) != 0 {
		t.Fatalf("emissions after Stop = %v, want none", got)
	}
}

func TestDebouncer_SequentialValuesEachEmit(t *testing.T) {
	t.Parallel()

	var c collector
	d := New(10*time.Millisecond, c.emit)
	defer d.Stop()

	d.Set("first")
	time.Sleep(50 * time.Millisecond)
	d.Set("second")
	time.Sleep(50 * time.Millisecond)

	got := c.snapshot()
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("emissions = %v, want [first second]", got)
	}
}
