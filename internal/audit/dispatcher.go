package audit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/recruit-scheduler/internal/logger"
)

type Event struct {
	OwnerID  uint
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

const (
	queueSize    = 100
	writeTimeout = 5 * time.Second
)

// Dispatcher writes events from a single worker. Dispatch never blocks: a
// full queue drops the event so the API keeps answering.
type Dispatcher struct {
	sink  Sink
	log   *zap.Logger
	queue chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(sink Sink, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		log:   logger.OrNop(log),
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := d.sink.Log(ctx, ev); err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.Error(err),
			)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains the queue and waits for the worker. Dispatch must not be
// called afterwards.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() { close(d.queue) })
	<-d.done
}
