package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SymbolsScanned = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "scan_symbols_total", Help: "Symbols processed per funnel stage"},
		[]string{"stage"},
	)
	CandidatesFound = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "scan_candidates_total", Help: "Candidates surviving the backtest threshold"},
	)
	OrdersSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "orders_submitted_total", Help: "Bracket orders handed to the broker"},
		[]string{"result"},
	)
	RunDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "scan_run_duration_seconds", Help: "Wall time of one full scan run",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10)},
	)
)

func init() {
	prometheus.MustRegister(SymbolsScanned, CandidatesFound, OrdersSubmitted, RunDuration)
}

// Serve exposes /metrics on addr in the background.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
