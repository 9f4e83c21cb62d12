package store

import (
	"context"

	"github.com/MKhiriev/go-sched/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists user accounts.
type UserRepository interface {
	// CreateUser inserts user and returns it with the generated id and
	// timestamps. A taken email yields [ErrEmailAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks up a user by normalized email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID looks up a user by id.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdatePassword stores a new password hash.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error

	// SetActive enables or disables an account.
	SetActive(ctx context.Context, userID int64, active bool) error
}

// AppointmentRepository persists appointments. Mutations are scoped to the
// owning user.
type AppointmentRepository interface {
	// ListByUser returns the user's appointments ordered by start ascending.
	ListByUser(ctx context.Context, userID int64) ([]models.Appointment, error)

	// GetByID returns the appointment regardless of its owner.
	GetByID(ctx context.Context, appointmentID int64) (models.Appointment, error)

	// Create inserts appointment and returns it with the generated id.
	Create(ctx context.Context, appointment models.Appointment) (models.Appointment, error)

	// Update overwrites the editable fields of an appointment owned by
	// appointment.UserID.
	Update(ctx context.Context, appointment models.Appointment) (models.Appointment, error)

	// Delete removes an appointment owned by userID.
	Delete(ctx context.Context, appointmentID, userID int64) error
}
