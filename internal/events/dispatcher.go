package events

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Domain event types consumed by external notifiers.
type Type string

const (
	BookingCreated       Type = "booking_created"
	BookingConfirmed     Type = "booking_confirmed"
	AppointmentStarted   Type = "appointment_started"
	AppointmentCompleted Type = "appointment_completed"
	CancellationApplied  Type = "cancellation_applied"
	NoShowMarked         Type = "no_show_marked"
	BookingRescheduled   Type = "booking_rescheduled"
)

type Event struct {
	Type Type

	EstablishmentID *uint
	ProfessionalID  *uint
	ActorID         *uint

	AppointmentID uint
	BookingCode   string

	Metadata   map[string]any
	OccurredAt time.Time
}

// Sink consumes dispatched events (notifier bridge, audit log, ...).
type Sink interface {
	Handle(ev Event) error
}

type Dispatcher struct {
	sinks []Sink
	queue chan Event
}

func NewDispatcher(sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks: sinks,
		queue: make(chan Event, 100), // buffer seguro
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		for _, s := range d.sinks {
			if err := s.Handle(ev); err != nil {
				logrus.WithFields(logrus.Fields{
					"event": ev.Type,
					"code":  ev.BookingCode,
				}).WithError(err).Warn("event sink error")
			}
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now()
	}

	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos o evento (nunca quebrar a API)
		logrus.WithField("event", ev.Type).Warn("event queue full, dropping event")
	}
}
