package http

import (
	"time"

	"github.com/MKhiriev/go-sched/internal/config"
	"github.com/MKhiriev/go-sched/internal/limiter"
	"github.com/MKhiriev/go-sched/internal/logger"
	"github.com/MKhiriev/go-sched/internal/service"
	"github.com/MKhiriev/go-sched/internal/view"
)

type Handler struct {
	services *service.Services
	renderer *view.Renderer

	// loginLimiter throttles credential submissions per client.
	loginLimiter *limiter.Limiter

	requestTimeout time.Duration

	// trustProxyHeaders enables RealIP; off means r.RemoteAddr is the client.
	trustProxyHeaders bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, renderer *view.Renderer, loginLimiter *limiter.Limiter, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Bool("trust_proxy_headers", cfg.TrustProxyHeaders).Msg("http handler created")
	return &Handler{
		services:          services,
		renderer:          renderer,
		loginLimiter:      loginLimiter,
		requestTimeout:    cfg.RequestTimeout,
		trustProxyHeaders: cfg.TrustProxyHeaders,
		logger:            logger,
	}
}
