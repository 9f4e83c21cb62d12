package handler

import (
	"fmt"

	"github.com/MKhiriev/go-sched/internal/config"
	"github.com/MKhiriev/go-sched/internal/handler/http"
	"github.com/MKhiriev/go-sched/internal/limiter"
	"github.com/MKhiriev/go-sched/internal/logger"
	"github.com/MKhiriev/go-sched/internal/service"
	"github.com/MKhiriev/go-sched/internal/view"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, loginLimiter *limiter.Limiter, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("error loading templates: %w", err)
	}

	return &Handlers{
		HTTP: http.NewHandler(services, renderer, loginLimiter, cfg, logger),
	}, nil
}
