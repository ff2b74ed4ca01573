package debounce

import (
	"sync"
	"time"
)

type call[T any] struct {
	timer *time.Timer
	value T
}

// Debouncer delays fn per key until no new Trigger for that key arrived
// during delay. Only the last value fires.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(key string, v T)

	mu      sync.Mutex
	pending map[string]*call[T]
	stopped bool
	running sync.WaitGroup
}

func New[T any](delay time.Duration, fn func(key string, v T)) *Debouncer[T] {
	return &Debouncer[T]{
		delay:   delay,
		fn:      fn,
		pending: make(map[string]*call[T]),
	}
}

func (d *Debouncer[T]) Trigger(key string, v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
	}

	p := &call[T]{value: v}
	p.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// replaced by a newer Trigger, or taken by Flush/Stop
		if d.pending[key] != p {
			d.mu.Unlock()
			return
		}
		delete(d.pending, key)
		d.running.Add(1)
		d.mu.Unlock()

		defer d.running.Done()
		d.fn(key, p.value)
	})
	d.pending[key] = p
}

// Pending reports how many keys are waiting to fire.
func (d *Debouncer[T]) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Flush runs every pending call now, on the caller's goroutine, and waits
// for calls already in flight. Later Triggers are ignored.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	d.stopped = true
	due := d.pending
	d.pending = make(map[string]*call[T])
	d.mu.Unlock()

	for key, p := range due {
		p.timer.Stop()
		d.fn(key, p.value)
	}
	d.running.Wait()
}

// Stop cancels every pending call. Later Triggers are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for k, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, k)
	}
}
