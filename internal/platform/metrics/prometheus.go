package metrics

import (
	"net/http"

	"github.com/arthurCDG/Vinted-clone-server/internal/platform/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Manager holds the custom Prometheus metrics for the service.
type Manager struct {
	Registry             *prometheus.Registry
	UsersRegisteredTotal prometheus.Counter
	OffersPublishedTotal prometheus.Counter
	OffersDeletedTotal   prometheus.Counter
	HTTPErrorsTotal      *prometheus.CounterVec
	HTTPRequestLatency   *prometheus.HistogramVec
}

// NewManager initializes and registers the metrics on a dedicated registry.
func NewManager(serviceName string) *Manager {
	registry := prometheus.NewRegistry()

	usersRegisteredTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "users_registered_total",
		Help:      "Total number of accounts created.",
	})
	offersPublishedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "offers_published_total",
		Help:      "Total number of offers published.",
	})
	offersDeletedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "offers_deleted_total",
		Help:      "Total number of offers deleted.",
	})
	httpErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "http_errors_total",
		Help:      "Total number of HTTP error responses by route and status.",
	}, []string{"route", "status"})
	httpRequestLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	registry.MustRegister(
		usersRegisteredTotal,
		offersPublishedTotal,
		offersDeletedTotal,
		httpErrorsTotal,
		httpRequestLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:             registry,
		UsersRegisteredTotal: usersRegisteredTotal,
		OffersPublishedTotal: offersPublishedTotal,
		OffersDeletedTotal:   offersDeletedTotal,
		HTTPErrorsTotal:      httpErrorsTotal,
		HTTPRequestLatency:   httpRequestLatency,
	}
}

// StartServer exposes /metrics on its own port. An empty port disables the
// server.
func StartServer(port string, appLogger *logger.Logger, registry *prometheus.Registry) error {
	if port == "" {
		appLogger.Info("Prometheus metrics server port not configured, server will not start")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	appLogger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}
	return server.ListenAndServe()
}
