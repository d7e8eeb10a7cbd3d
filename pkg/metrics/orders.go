package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics records counters for the pricing and order pipeline.
type OrderMetrics struct {
	quotes     *prometheus.CounterVec
	orders     *prometheus.CounterVec
	packages   *prometheus.CounterVec
	genSeconds *prometheus.HistogramVec
}

// NewOrderMetrics registers the pipeline metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "price_quotes_total",
		Help: "Price quotes served, labeled by cache outcome.",
	}, []string{"source"})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders created, labeled by result.",
	}, []string{"result"})
	packages := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "packages_generated_total",
		Help: "Deliverable packages generated, labeled by result.",
	}, []string{"result"})
	genSeconds := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "package_generation_seconds",
		Help:    "Duration of deliverable package generation in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"barcode_type"})
	reg.MustRegister(quotes, orders, packages, genSeconds)
	return &OrderMetrics{
		quotes:     quotes,
		orders:     orders,
		packages:   packages,
		genSeconds: genSeconds,
	}
}

// IncQuote records a served quote with its source ("cache" or "computed").
func (m *OrderMetrics) IncQuote(source string) {
	if m == nil || m.quotes == nil {
		return
	}
	m.quotes.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncOrder records an order creation attempt result ("success" or "failure").
func (m *OrderMetrics) IncOrder(result string) {
	if m == nil || m.orders == nil {
		return
	}
	m.orders.WithLabelValues(normalizeLabel(result)).Inc()
}

// IncPackage records a package generation result ("success" or "failure").
func (m *OrderMetrics) IncPackage(result string) {
	if m == nil || m.packages == nil {
		return
	}
	m.packages.WithLabelValues(normalizeLabel(result)).Inc()
}

// ObserveGeneration records how long package assembly took for a barcode type.
func (m *OrderMetrics) ObserveGeneration(barcodeType string, duration time.Duration) {
	if m == nil || m.genSeconds == nil {
		return
	}
	m.genSeconds.WithLabelValues(normalizeLabel(barcodeType)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
