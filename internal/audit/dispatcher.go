package audit

import (
	"context"
	"log"
)

type Event struct {
	UserID   *string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
}

// NewDispatcher starts a worker that drains the queue until ctx ends.
func NewDispatcher(ctx context.Context, logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
	}

	go d.worker(ctx)
	return d
}

func (d *Dispatcher) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-d.queue:
			if err := d.logger.Log(
				ev.UserID,
				ev.Action,
				ev.Entity,
				ev.EntityID,
				ev.Metadata,
			); err != nil {
				log.Println("audit error:", err)
			}
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		// Full queue: drop the event rather than block a request.
		log.Println("audit queue full, dropping event")
	}
}
