package handler

import (
	"net/http"

	"github.com/MKhiriev/go-student-registry/internal/config"
	httphandler "github.com/MKhiriev/go-student-registry/internal/handler/http"
	"github.com/MKhiriev/go-student-registry/internal/logger"
	"github.com/MKhiriev/go-student-registry/internal/metrics"
	"github.com/MKhiriev/go-student-registry/internal/service"
)

type Handlers struct {
	HTTP *httphandler.Handler
}

// NewHandlers builds the transport handlers enabled by cfg. metricsHandler
// is served on /metrics when not nil.
func NewHandlers(
	services *service.Services,
	cfg config.Server,
	collector metrics.MetricsCollector,
	metricsHandler http.Handler,
	logger *logger.Logger,
) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHTTPAddress
	}

	return &Handlers{
		HTTP: httphandler.NewHandler(services, logger,
			httphandler.WithMetrics(collector, metricsHandler),
			httphandler.WithRequestTimeout(cfg.RequestTimeout),
		),
	}, nil
}
