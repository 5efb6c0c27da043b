package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/sumset/internal/logging"
)

const namespace = "sumset"

// Collector records batch measurements in its own Prometheus registry, so
// several collectors can coexist in one process (tests, repeated runs).
type Collector struct {
	registry      *prometheus.Registry
	countDuration prometheus.Histogram
	shards        prometheus.Counter
	rows          prometheus.Counter
	batches       *prometheus.CounterVec
	batchDuration prometheus.Gauge
	lastN         prometheus.Gauge
}

// NewCollector creates a Collector and registers its metrics together with
// a heap gauge backed by mem.
func NewCollector(mem *MemoryCollector) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		countDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "count_duration_seconds",
			Help:      "Time spent computing |A(n)| and |A(n)+A(n)| for a single n.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 14),
		}),
		shards: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "shards_completed_total",
			Help:      "Shards that finished successfully.",
		}),
		rows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_computed_total",
			Help:      "Rows produced by completed shards.",
		}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Batches run, by status.",
		}, []string{"status"}),
		batchDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_batch_duration_seconds",
			Help:      "Wall-clock duration of the most recent batch.",
		}),
		lastN: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_count_n",
			Help:      "Most recent n whose row was computed.",
		}),
	}
	if mem == nil {
		mem = NewMemoryCollector()
	}
	heap := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "heap_alloc_bytes",
		Help:      "Bytes of allocated heap objects.",
	}, func() float64 { return float64(mem.Snapshot().HeapAlloc) })

	c.registry.MustRegister(c.countDuration, c.shards, c.rows, c.batches, c.batchDuration, c.lastN, heap)
	return c
}

// Registry returns the registry holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// ObserveCount records the time spent on a single n.
func (c *Collector) ObserveCount(n uint64, d time.Duration) {
	c.countDuration.Observe(d.Seconds())
	c.lastN.Set(float64(n))
}

// ShardCompleted records a finished shard.
func (c *Collector) ShardCompleted(rows int) {
	c.shards.Inc()
	c.rows.Add(float64(rows))
}

// BatchFinished records the outcome of a batch.
func (c *Collector) BatchFinished(_ int, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	c.batches.WithLabelValues(status).Inc()
	c.batchDuration.Set(d.Seconds())
}

// Handler returns an HTTP handler serving the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Server is a running /metrics endpoint.
type Server struct {
	srv *http.Server
	ln  net.Listener
}

// Serve starts an HTTP server exposing /metrics on addr. Bind errors are
// returned immediately; serve errors are logged.
func (c *Collector) Serve(addr string, logger logging.Logger) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	s := &Server{
		srv: &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		ln:  ln,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", err, logging.String("addr", ln.Addr().String()))
		}
	}()
	logger.Info("metrics endpoint listening", logging.String("addr", ln.Addr().String()))
	return s, nil
}

// Addr returns the address the server is bound to.
func (s *Server) Addr() string { return s.ln.Addr().String() }

// Shutdown stops the server, waiting for in-flight scrapes until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
