package events

import (
	"github.com/sirupsen/logrus"
)

// LogSink stands in for the external notification dispatcher: it surfaces
// every domain event as a structured log line.
type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) Handle(ev Event) error {
	fields := logrus.Fields{
		"event":          ev.Type,
		"appointment_id": ev.AppointmentID,
		"booking_code":   ev.BookingCode,
	}
	if ev.EstablishmentID != nil {
		fields["establishment_id"] = *ev.EstablishmentID
	}
	if ev.ProfessionalID != nil {
		fields["professional_id"] = *ev.ProfessionalID
	}

	logrus.WithFields(fields).Info("domain event")
	return nil
}
