// Command generate_metrics serves sample consultd metrics on :9090 so
// Grafana dashboards can be built and tested without running the daemon
// or a real corpus. Metric names mirror what the OTLP pipeline exports
// for a Prometheus-compatible backend.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consultd_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "consultd_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint"},
	)
	httpActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "consultd_http_active_requests",
			Help: "In-flight HTTP requests",
		},
	)
	embeddingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "consultd_embedding_generation_duration_seconds",
			Help:    "Embedding generation latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model", "operation"},
	)
	embeddingErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consultd_embedding_errors_total",
			Help: "Embedding generation errors",
		},
		[]string{"model", "operation"},
	)
	corpusPoints = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "consultd_corpus_points",
			Help: "Stored use-case chunks per collection",
		},
		[]string{"collection"},
	)
)

type endpoint struct {
	method string
	path   string
	// typical latency range in seconds
	minLat, maxLat float64
	errorRate      float64
}

var endpoints = []endpoint{
	{"GET", "/health", 0.001, 0.01, 0.001},
	{"POST", "/api/v1/consult", 2, 25, 0.05},
	{"POST", "/api/v1/impact", 2, 20, 0.05},
	{"POST", "/api/v1/search", 0.01, 0.2, 0.01},
	{"GET", "/api/v1/stats", 0.005, 0.05, 0.01},
}

func simulate(ctx context.Context) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	points := 3000.0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		for _, ep := range endpoints {
			// Not every endpoint is hit every tick.
			if rand.Float64() > 0.6 {
				continue
			}

			status := "200"
			switch {
			case rand.Float64() < ep.errorRate:
				status = "502"
			case rand.Float64() < 0.02:
				status = "400"
			}

			latency := ep.minLat + rand.Float64()*(ep.maxLat-ep.minLat)
			httpRequests.WithLabelValues(ep.method, ep.path, status).Inc()
			httpDuration.WithLabelValues(ep.method, ep.path).Observe(latency)
		}

		httpActive.Set(float64(rand.Intn(5)))

		// Consultations embed the query before searching.
		embeddingDuration.WithLabelValues("bge-small-en-v1.5", "query").Observe(0.005 + rand.Float64()*0.03)
		if rand.Float64() < 0.002 {
			embeddingErrors.WithLabelValues("bge-small-en-v1.5", "query").Inc()
		}

		// The corpus grows slowly as ingest runs land.
		if rand.Float64() < 0.05 {
			points += float64(rand.Intn(30))
		}
		corpusPoints.WithLabelValues("ai_use_cases").Set(points)
	}
}

func main() {
	reg := prometheus.NewRegistry()
	reg.MustRegister(httpRequests, httpDuration, httpActive,
		embeddingDuration, embeddingErrors, corpusPoints)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	go simulate(ctx)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: ":9090", Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Println("Serving sample consultd metrics on http://localhost:9090/metrics")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
