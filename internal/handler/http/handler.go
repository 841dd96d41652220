package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-student-registry/internal/logger"
	"github.com/MKhiriev/go-student-registry/internal/metrics"
	"github.com/MKhiriev/go-student-registry/internal/service"
)

type Handler struct {
	services *service.Services

	collector      metrics.MetricsCollector
	metricsHandler http.Handler
	requestTimeout time.Duration

	logger *logger.Logger
}

// Option configures optional parts of a Handler.
type Option func(*Handler)

// WithMetrics records request metrics in collector and serves metricsHandler
// on GET /metrics.
func WithMetrics(collector metrics.MetricsCollector, metricsHandler http.Handler) Option {
	return func(h *Handler) {
		h.collector = collector
		h.metricsHandler = metricsHandler
	}
}

// WithRequestTimeout cancels request contexts after d. Zero disables it.
func WithRequestTimeout(d time.Duration) Option {
	return func(h *Handler) {
		h.requestTimeout = d
	}
}

func NewHandler(services *service.Services, logger *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services:  services,
		collector: metrics.Nop(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(h)
	}

	logger.Info().Msg("http handler created")
	return h
}
