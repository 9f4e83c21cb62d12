// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sched/internal/logger"
	"github.com/MKhiriev/go-sched/internal/store"
	"github.com/MKhiriev/go-sched/models"
)

type appointmentService struct {
	appointmentRepository store.AppointmentRepository

	logger *logger.Logger
}

// NewAppointmentService returns the unvalidated AppointmentService. Forms
// passed to Create and Update must already be valid; wrap it with
// [NewAppointmentValidationService] for request input.
func NewAppointmentService(appointmentRepository store.AppointmentRepository, logger *logger.Logger) AppointmentService {
	return &appointmentService{
		appointmentRepository: appointmentRepository,
		logger:                logger,
	}
}

func (s *appointmentService) List(ctx context.Context, userID int64) ([]models.Appointment, error) {
	return s.appointmentRepository.ListByUser(ctx, userID)
}

// Get returns the appointment when it exists and belongs to userID.
// Existence is checked first, so a missing record is always
// store.ErrAppointmentNotFound and a foreign one
// ErrUnauthorizedAccessToDifferentUserData.
func (s *appointmentService) Get(ctx context.Context, appointmentID, userID int64) (models.Appointment, error) {
	appointment, err := s.appointmentRepository.GetByID(ctx, appointmentID)
	if err != nil {
		return models.Appointment{}, err
	}

	if !appointment.IsOwnedBy(userID) {
		logger.FromContext(ctx).Warn().
			Int64("appointment_id", appointmentID).
			Int64("user_id", userID).
			Msg("access to appointment of a different user")
		return models.Appointment{}, ErrUnauthorizedAccessToDifferentUserData
	}

	return appointment, nil
}

func (s *appointmentService) Create(ctx context.Context, userID int64, form models.AppointmentForm) (models.Appointment, error) {
	appointment := models.Appointment{UserID: userID}
	if err := form.Apply(&appointment); err != nil {
		return models.Appointment{}, fmt.Errorf("error applying appointment form: %w", err)
	}

	created, err := s.appointmentRepository.Create(ctx, appointment)
	if err != nil {
		return models.Appointment{}, fmt.Errorf("error creating appointment: %w", err)
	}

	return created, nil
}

func (s *appointmentService) Update(ctx context.Context, appointmentID, userID int64, form models.AppointmentForm) (models.Appointment, error) {
	appointment, err := s.Get(ctx, appointmentID, userID)
	if err != nil {
		return models.Appointment{}, err
	}

	if err := form.Apply(&appointment); err != nil {
		return models.Appointment{}, fmt.Errorf("error applying appointment form: %w", err)
	}

	updated, err := s.appointmentRepository.Update(ctx, appointment)
	if err != nil {
		return models.Appointment{}, fmt.Errorf("error updating appointment: %w", err)
	}

	return updated, nil
}

func (s *appointmentService) Delete(ctx context.Context, appointmentID, userID int64) error {
	if _, err := s.Get(ctx, appointmentID, userID); err != nil {
		return err
	}

	if err := s.appointmentRepository.Delete(ctx, appointmentID, userID); err != nil {
		return fmt.Errorf("error deleting appointment: %w", err)
	}

	return nil
}
