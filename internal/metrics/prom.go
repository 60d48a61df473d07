package metrics

import "github.com/prometheus/client_golang/prometheus"

// Order outcomes recorded on OrdersTotal.
const (
	OutcomeAccepted = "accepted"
	OutcomeStale    = "stale"
	OutcomeFuture   = "future"
	OutcomeInvalid  = "invalid"
)

var (
	OrdersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "orderstats_orders_total", Help: "Orders received, by outcome"},
		[]string{"outcome"},
	)
	ClearsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "orderstats_clears_total", Help: "Delete-all requests served"},
	)
	QueryLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orderstats_statistics_query_seconds",
			Help:    "Time spent aggregating the window for a statistics query",
			Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05},
		},
	)
	JournalEntries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "orderstats_journal_entries_total", Help: "Journal entries flushed, by result"},
		[]string{"result"},
	)
	JournalDropped = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "orderstats_journal_dropped_total", Help: "Journal entries dropped because the buffer was full"},
	)
)

func Collectors() []prometheus.Collector {
	return []prometheus.Collector{OrdersTotal, ClearsTotal, QueryLatency, JournalEntries, JournalDropped}
}

// NewRegistry returns a registry holding the process, Go runtime and service collectors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	registry.MustRegister(prometheus.NewGoCollector())
	for _, c := range Collectors() {
		registry.MustRegister(c)
	}
	return registry
}
