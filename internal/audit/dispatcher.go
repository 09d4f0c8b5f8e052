package audit

import (
	"log/slog"
	"sync"
)

type Event struct {
	ActorID  *uint
	BarberID *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

const (
	ActionAppointmentCreated   = "appointment_created"
	ActionAppointmentConflict  = "appointment_conflict"
	ActionAppointmentConfirmed = "appointment_confirmed"
	ActionAppointmentCanceled  = "appointment_canceled"
	ActionAppointmentCompleted = "appointment_completed"
	ActionScheduleUpdated      = "schedule_updated"
)

type Sink interface {
	Log(ev Event) error
}

type Dispatcher struct {
	sink  Sink
	queue chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, 100), // buffer seguro
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			slog.Error("audit error", "action", ev.Action, "err", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		slog.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close drena a fila e espera o worker terminar.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
