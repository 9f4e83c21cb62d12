package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sched/internal/validators"
	"github.com/MKhiriev/go-sched/models"
)

// AppointmentValidationService rejects invalid appointment forms before
// they reach the wrapped service.
type AppointmentValidationService struct {
	inner     AppointmentService
	validator validators.Validator
}

func NewAppointmentValidationService(validator validators.Validator) AppointmentServiceWrapper {
	return &AppointmentValidationService{
		validator: validator,
	}
}

func (v *AppointmentValidationService) List(ctx context.Context, userID int64) ([]models.Appointment, error) {
	return v.inner.List(ctx, userID)
}

func (v *AppointmentValidationService) Get(ctx context.Context, appointmentID, userID int64) (models.Appointment, error) {
	return v.inner.Get(ctx, appointmentID, userID)
}

func (v *AppointmentValidationService) Create(ctx context.Context, userID int64, form models.AppointmentForm) (models.Appointment, error) {
	if err := v.validator.Validate(ctx, form); err != nil {
		return models.Appointment{}, fmt.Errorf("error during appointment validation before saving: %w", err)
	}

	return v.inner.Create(ctx, userID, form)
}

// Update checks ownership before validating the form, so a foreign or
// missing appointment is reported as such even for an invalid submission.
func (v *AppointmentValidationService) Update(ctx context.Context, appointmentID, userID int64, form models.AppointmentForm) (models.Appointment, error) {
	if _, err := v.inner.Get(ctx, appointmentID, userID); err != nil {
		return models.Appointment{}, err
	}

	if err := v.validator.Validate(ctx, form); err != nil {
		return models.Appointment{}, fmt.Errorf("error during appointment validation before saving: %w", err)
	}

	return v.inner.Update(ctx, appointmentID, userID, form)
}

func (v *AppointmentValidationService) Delete(ctx context.Context, appointmentID, userID int64) error {
	return v.inner.Delete(ctx, appointmentID, userID)
}

func (v *AppointmentValidationService) Wrap(wrapped AppointmentService) AppointmentService {
	v.inner = wrapped
	return v
}
