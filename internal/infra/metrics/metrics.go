package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Входящие апдейты вебхука по типу намерения.
	WebhookUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salon_webhook_updates_total",
		Help: "Inbound webhook updates by parsed intent.",
	}, []string{"intent"})

	AppointmentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salon_appointments_created_total",
		Help: "Appointments created in pending status.",
	})

	AppointmentTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salon_appointment_transitions_total",
		Help: "Successful appointment status transitions.",
	}, []string{"to"})
)
