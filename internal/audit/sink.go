package audit

import (
	"github.com/agendaly/salon-platform/internal/events"
)

// Sink persists every domain event as an audit log row.
type Sink struct {
	logger *Logger
}

func NewSink(logger *Logger) *Sink {
	return &Sink{logger: logger}
}

func (s *Sink) Handle(ev events.Event) error {
	id := ev.AppointmentID
	return s.logger.Log(
		ev.EstablishmentID,
		ev.ActorID,
		string(ev.Type),
		"appointment",
		&id,
		ev.Metadata,
	)
}
