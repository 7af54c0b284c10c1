package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AppointmentMutations counts successful appointment mutations by kind
	AppointmentMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "clinic_appointment_mutations_total",
		Help: "Total number of successful appointment mutations",
	}, []string{"operation"})

	// ServiceTokenRejections counts requests rejected by the integration gate
	ServiceTokenRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "clinic_service_token_rejections_total",
		Help: "Total number of integration requests rejected by the service-token gate",
	})
)
