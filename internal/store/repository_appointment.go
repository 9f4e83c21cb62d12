// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-sched/internal/logger"
	"github.com/MKhiriev/go-sched/models"
)

// appointmentRepository is the SQL implementation of [AppointmentRepository]
// over the "appointments" table. Every mutating statement is constrained by
// both id and user_id.
type appointmentRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAppointmentRepository constructs an [AppointmentRepository] backed by db.
func NewAppointmentRepository(db *DB, logger *logger.Logger) AppointmentRepository {
	logger.Debug().Msg("creating appointment repository")
	return &appointmentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *appointmentRepository) ListByUser(ctx context.Context, userID int64) ([]models.Appointment, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(appointmentColumns...).
		From(appointmentsTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("start_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*appointmentRepository.ListByUser").Msg("error querying appointments")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	appointments := make([]models.Appointment, 0)
	for rows.Next() {
		var appointment models.Appointment
		if err := scanAppointment(rows, &appointment); err != nil {
			log.Err(err).Str("func", "*appointmentRepository.ListByUser").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*appointmentRepository.ListByUser").Msg("error iterating rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return appointments, nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, appointmentID int64) (models.Appointment, error) {
	query, args, err := r.db.builder.
		Select(appointmentColumns...).
		From(appointmentsTable).
		Where(sq.Eq{"id": appointmentID}).
		ToSql()
	if err != nil {
		return models.Appointment{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "*appointmentRepository.GetByID", query, args)
}

func (r *appointmentRepository) Create(ctx context.Context, appointment models.Appointment) (models.Appointment, error) {
	ts := now()
	values := appointmentValues(appointment)
	values["created"] = ts
	values["modified"] = ts
	values["user_id"] = appointment.UserID

	query, args, err := r.db.builder.
		Insert(appointmentsTable).
		SetMap(values).
		Suffix("RETURNING " + strings.Join(appointmentColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Appointment{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "*appointmentRepository.Create", query, args)
}

func (r *appointmentRepository) Update(ctx context.Context, appointment models.Appointment) (models.Appointment, error) {
	values := appointmentValues(appointment)
	values["modified"] = now()

	query, args, err := r.db.builder.
		Update(appointmentsTable).
		SetMap(values).
		Where(sq.Eq{"id": appointment.ID, "user_id": appointment.UserID}).
		Suffix("RETURNING " + strings.Join(appointmentColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Appointment{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryOne(ctx, "*appointmentRepository.Update", query, args)
}

func (r *appointmentRepository) Delete(ctx context.Context, appointmentID, userID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Delete(appointmentsTable).
		Where(sq.Eq{"id": appointmentID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*appointmentRepository.Delete").Msg("error deleting appointment")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// queryOne runs a statement returning a single appointment row.
func (r *appointmentRepository) queryOne(ctx context.Context, funcName, query string, args []any) (models.Appointment, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing query")
		return models.Appointment{}, r.mapError(err, ErrExecutingQuery)
	}

	var appointment models.Appointment
	if err := scanAppointment(row, &appointment); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", funcName).Msg("error: scanning error")
		}
		return models.Appointment{}, r.mapError(err, ErrScanningRow)
	}

	return appointment, nil
}

func (r *appointmentRepository) mapError(err, fallback error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrAppointmentNotFound
	case r.db.classify(err) == ForeignKeyViolation:
		return ErrNoUserWasFound
	default:
		return fmt.Errorf("%w: %w", fallback, err)
	}
}
