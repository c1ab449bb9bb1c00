package analytics

import (
	"log"
	"sync"
	"sync/atomic"
)

// Dispatcher makes any Sink asynchronous. Events are queued and delivered by a
// single worker; when the queue is half full low-priority events are dropped,
// and when it is full every event is dropped.
type Dispatcher struct {
	next    Sink
	queue   chan Event
	dropped atomic.Int64

	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
	done      chan struct{}
}

// NewDispatcher starts a worker delivering to next
func NewDispatcher(next Sink, size int) *Dispatcher {
	if size <= 0 {
		size = 256
	}
	d := &Dispatcher{
		next:  next,
		queue: make(chan Event, size),
		done:  make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for e := range d.queue {
		d.next.Record(e)
	}
}

func (d *Dispatcher) Init(measurementID string) error {
	return d.next.Init(measurementID)
}

// Record queues the event without blocking
func (d *Dispatcher) Record(e Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	if e.Priority == PriorityLow && len(d.queue) >= cap(d.queue)/2 {
		d.dropped.Add(1)
		return
	}

	select {
	case d.queue <- e:
	default:
		if n := d.dropped.Add(1); n%100 == 1 {
			log.Printf("[ANALYTICS] queue full, dropped %d events so far", n)
		}
	}
}

// Dropped returns the number of events shed so far
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Close stops accepting events and waits for the queue to drain
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})
	<-d.done
}
