package service

import (
	"context"

	"github.com/MKhiriev/go-sched/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=AppointmentServiceWrapper

// AuthService covers account creation, credential checks and sessions.
type AuthService interface {
	// Signup validates the form and creates an active account.
	Signup(ctx context.Context, form models.CredentialsForm) (models.User, error)

	// Authenticate checks a password against the stored account. Only
	// storage failures are reported as errors.
	Authenticate(ctx context.Context, email, password string) (*models.User, bool, error)

	// Login validates the form and authenticates the user. Every
	// authentication failure is reported as ErrWrongCredentials.
	Login(ctx context.Context, form models.CredentialsForm) (models.User, error)

	// Fingerprint identifies the client of a request.
	Fingerprint(remoteIP, userAgent string) string

	CreateSession(ctx context.Context, user models.User, fingerprint string) (models.Session, error)
	ParseSession(ctx context.Context, token, fingerprint string) (models.Session, error)

	// CurrentUser resolves a session identity. Missing and disabled
	// accounts yield nil without an error.
	CurrentUser(ctx context.Context, userID int64) (*models.User, error)

	ChangePassword(ctx context.Context, email, newPassword string) error
	SetActive(ctx context.Context, email string, active bool) error
}

// AppointmentService is ownership-scoped CRUD over appointments. userID is
// always the identity of the current session.
type AppointmentService interface {
	List(ctx context.Context, userID int64) ([]models.Appointment, error)
	Get(ctx context.Context, appointmentID, userID int64) (models.Appointment, error)
	Create(ctx context.Context, userID int64, form models.AppointmentForm) (models.Appointment, error)
	Update(ctx context.Context, appointmentID, userID int64, form models.AppointmentForm) (models.Appointment, error)
	Delete(ctx context.Context, appointmentID, userID int64) error
}

// AppointmentServiceWrapper defines middleware composition for
// AppointmentService. Implementations wrap an existing AppointmentService to
// add behavior such as validation.
type AppointmentServiceWrapper interface {
	Wrap(AppointmentService) AppointmentService
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
