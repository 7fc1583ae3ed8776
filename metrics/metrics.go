package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// AuditsTotal counts completed audits by outcome.
	AuditsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "brandaudit",
		Subsystem: "engine",
		Name:      "audits_total",
		Help:      "Total number of audit runs, labeled by result.",
	}, []string{"result"})

	// RecordsAnalyzed counts response records that went through the analyzer.
	RecordsAnalyzed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "brandaudit",
		Subsystem: "engine",
		Name:      "records_analyzed_total",
		Help:      "Total number of response records analyzed.",
	})

	// CollectedRecords is the current size of the capture collector buffer.
	CollectedRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "brandaudit",
		Subsystem: "capture",
		Name:      "collected_records",
		Help:      "Number of capture records currently buffered for audit.",
	})

	// RabbitMQConnected is 1 when the capture subscriber considers itself connected.
	RabbitMQConnected = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "brandaudit",
		Subsystem: "capture",
		Name:      "rabbitmq_connected",
		Help:      "Whether the capture RabbitMQ subscriber is currently connected (best-effort).",
	})

	// RabbitMQLastDeliverySeconds is a unix timestamp (seconds) of the last delivery.
	RabbitMQLastDeliverySeconds = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "brandaudit",
		Subsystem: "capture",
		Name:      "rabbitmq_last_delivery_timestamp_seconds",
		Help:      "Unix timestamp (seconds) of the last RabbitMQ delivery observed by the subscriber.",
	})

	// DeliveriesTotal counts RabbitMQ deliveries by outcome.
	DeliveriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "brandaudit",
		Subsystem: "capture",
		Name:      "rabbitmq_deliveries_total",
		Help:      "Total number of RabbitMQ deliveries processed by the capture subscriber, labeled by result.",
	}, []string{"result"})
)

// Register registers pipeline metrics with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			AuditsTotal,
			RecordsAnalyzed,
			CollectedRecords,
			RabbitMQConnected,
			RabbitMQLastDeliverySeconds,
			DeliveriesTotal,
		)
	})
}

func NowUnixSeconds() float64 {
	return float64(time.Now().Unix())
}
