// Package server exposes the path resolver over HTTP: upload a routing
// table, query traces against the current snapshot, scrape metrics.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/tbjorklund/ttr/internal/trace"
	"github.com/tbjorklund/ttr/pkg/rtable"
)

// DefaultCacheTTL bounds how long a computed trace is served from
// cache before being recomputed.
const DefaultCacheTTL = 1 * time.Minute

// Server holds one routing-table snapshot and answers trace queries
// against it.
type Server struct {
	mu    sync.RWMutex
	table rtable.Table

	opts  trace.Options
	cache *ttlcache.Cache[string, *trace.Result]

	registry *prometheus.Registry
	metrics  serverMetrics

	httpServer *http.Server
}

type serverMetrics struct {
	tracesTotal  *prometheus.CounterVec
	cacheHits    prometheus.Counter
	cacheMisses  prometheus.Counter
	tableRecords prometheus.Gauge
}

// New creates a server seeded with tbl (which may be empty until a
// table is uploaded).
func New(tbl rtable.Table, opts trace.Options, cacheTTL time.Duration) *Server {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}

	s := &Server{
		table:    tbl.Clone(),
		opts:     opts,
		registry: prometheus.NewRegistry(),
		cache: ttlcache.New(
			ttlcache.WithTTL[string, *trace.Result](cacheTTL),
		),
	}
	s.cache.OnEviction(func(ctx context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, *trace.Result]) {
		if reason == ttlcache.EvictionReasonExpired {
			logrus.WithField("key", item.Key()).Debug("trace cache entry expired")
		}
	})
	go s.cache.Start()

	s.metrics.tracesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ttr_traces_total",
			Help: "Total number of trace resolutions, by outcome",
		},
		[]string{"outcome"},
	)
	s.metrics.cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ttr_trace_cache_hits_total",
		Help: "Trace queries answered from cache",
	})
	s.metrics.cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ttr_trace_cache_misses_total",
		Help: "Trace queries that required resolution",
	})
	s.metrics.tableRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ttr_table_records",
		Help: "Number of records in the active routing table",
	})
	s.registry.MustRegister(
		s.metrics.tracesTotal,
		s.metrics.cacheHits,
		s.metrics.cacheMisses,
		s.metrics.tableRecords,
	)
	s.metrics.tableRecords.Set(float64(len(tbl)))

	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/trace", s.handleTrace)
	mux.HandleFunc("/table", s.handleTable)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logrus.WithField("addr", addr).Info("trace service listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the HTTP listener and the cache janitor.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cache.Stop()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// SetTable replaces the active snapshot and purges cached traces.
func (s *Server) SetTable(tbl rtable.Table) {
	s.mu.Lock()
	s.table = tbl.Clone()
	s.mu.Unlock()

	s.cache.DeleteAll()
	s.metrics.tableRecords.Set(float64(len(tbl)))
}

// snapshot returns the table to resolve against. Each resolution gets
// its own copy so a concurrent upload cannot mutate a trace in flight.
func (s *Server) snapshot() rtable.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone()
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httpError(w, http.StatusMethodNotAllowed, "use GET")
		return
	}

	q := r.URL.Query()
	device := q.Get("device")
	source := q.Get("source")
	dest := q.Get("dest")
	if device == "" || source == "" || dest == "" {
		httpError(w, http.StatusBadRequest, "device, source and dest query parameters are required")
		return
	}

	key := device + "|" + source + "|" + dest
	if item := s.cache.Get(key); item != nil {
		s.metrics.cacheHits.Inc()
		writeJSON(w, http.StatusOK, item.Value())
		return
	}
	s.metrics.cacheMisses.Inc()

	res := trace.Resolve(device, source, dest, s.snapshot(), s.opts)
	outcome := "success"
	if !res.Success {
		outcome = string(res.FailureKind)
	}
	s.metrics.tracesTotal.WithLabelValues(outcome).Inc()

	s.cache.Set(key, res, ttlcache.DefaultTTL)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.snapshot())
	case http.MethodPut, http.MethodPost:
		s.handleTableUpload(w, r)
	default:
		httpError(w, http.StatusMethodNotAllowed, "use GET, PUT or POST")
	}
}

func (s *Server) handleTableUpload(w http.ResponseWriter, r *http.Request) {
	format, err := uploadFormat(r)
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	body := http.MaxBytesReader(w, r.Body, 8<<20)
	tbl, err := rtable.Load(body, format)
	if err != nil {
		httpError(w, http.StatusBadRequest, fmt.Sprintf("parsing table: %v", err))
		return
	}
	if errs := tbl.Validate(); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": msgs})
		return
	}

	s.SetTable(tbl)
	logrus.WithFields(logrus.Fields{
		"records": len(tbl),
		"devices": len(tbl.Devices()),
	}).Info("routing table replaced")
	writeJSON(w, http.StatusOK, map[string]any{
		"records": len(tbl),
		"devices": tbl.Devices(),
	})
}

// uploadFormat picks the table format from ?format= or Content-Type,
// defaulting to JSON.
func uploadFormat(r *http.Request) (rtable.Format, error) {
	if f := r.URL.Query().Get("format"); f != "" {
		return rtable.ParseFormat(f)
	}
	ct := r.Header.Get("Content-Type")
	switch {
	case strings.Contains(ct, "csv"):
		return rtable.FormatCSV, nil
	case strings.Contains(ct, "yaml"):
		return rtable.FormatYAML, nil
	default:
		return rtable.FormatJSON, nil
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("writing response")
	}
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
