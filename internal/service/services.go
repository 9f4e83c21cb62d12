package service

import (
	"github.com/MKhiriev/go-sched/internal/config"
	"github.com/MKhiriev/go-sched/internal/logger"
	"github.com/MKhiriev/go-sched/internal/store"
	"github.com/MKhiriev/go-sched/internal/validators"
	"github.com/MKhiriev/go-sched/models"
)

type Services struct {
	AuthService        AuthService
	AppointmentService AppointmentService
	AppInfoService     AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	validator := validators.NewFormValidator()

	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	appointmentService := NewAppointmentValidationService(validator).
		Wrap(NewAppointmentService(storages.AppointmentRepository, logger))

	return &Services{
		AuthService:        NewAuthService(storages.UserRepository, validator, cfg.App, logger),
		AppointmentService: appointmentService,
		AppInfoService:     appInfoService,
	}, nil
}
