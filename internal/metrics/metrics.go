package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TicksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "ticks_total", Help: "Count of mark-price ticks ingested"},
		[]string{"symbol"},
	)
	CyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "cycles_total", Help: "Evaluation cycles run"},
	)
	PositionsOpened = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "positions_opened_total", Help: "Synthetic positions opened"},
		[]string{"symbol", "side"},
	)
	PositionsClosed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "positions_closed_total", Help: "Synthetic positions closed"},
		[]string{"symbol", "side"},
	)
	OpenPositions = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "open_positions", Help: "Currently open synthetic positions"},
	)
)

func init() {
	prometheus.MustRegister(TicksTotal, CyclesTotal, PositionsOpened, PositionsClosed, OpenPositions)
}

func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() { _ = srv.ListenAndServe() }()
	return srv
}
