package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sched/internal/config"
	"github.com/MKhiriev/go-sched/internal/logger"
	"github.com/MKhiriev/go-sched/internal/store"
	"github.com/MKhiriev/go-sched/internal/utils"
	"github.com/MKhiriev/go-sched/internal/validators"
	"github.com/MKhiriev/go-sched/models"
)

// authService is the concrete implementation of AuthService.
// It handles signup, credential verification and the session token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// validator checks submitted credentials forms.
	validator validators.Validator

	// sessionSecret signs session tokens and keys client fingerprints.
	sessionSecret string

	// sessionIssuer is the "iss" claim embedded in every issued session.
	// Sessions whose issuer does not match this value are rejected.
	sessionIssuer string

	// sessionDuration controls how long a new session remains valid.
	sessionDuration time.Duration

	// sessionProtection is one of the config.SessionProtection* levels.
	sessionProtection string

	uuidGenerator *utils.UUIDGenerator

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with session parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, validator validators.Validator, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:    userRepository,
		validator:         validator,
		sessionSecret:     cfg.SessionSecret,
		sessionIssuer:     cfg.SessionIssuer,
		sessionDuration:   cfg.SessionDuration,
		sessionProtection: cfg.SessionProtection,
		uuidGenerator:     utils.NewUUIDGenerator(),
		logger:            logger,
	}
}

// Signup creates a new active account.
//
// Returns the persisted user or:
//   - validators.FieldErrors if the form is invalid.
//   - store.ErrEmailAlreadyExists if the email is taken.
//   - a wrapped storage error otherwise.
func (a *authService) Signup(ctx context.Context, form models.CredentialsForm) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, form); err != nil {
		return models.User{}, fmt.Errorf("error during signup form validation: %w", err)
	}

	email := models.NormalizeEmail(form.Username)
	_, err := a.userRepository.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		log.Info().Str("email", email).Msg("signup with taken email")
		return models.User{}, store.ErrEmailAlreadyExists
	case !errors.Is(err, store.ErrNoUserWasFound):
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	hash, err := utils.SetPassword(form.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("error setting password: %w", err)
	}

	user, err := a.userRepository.CreateUser(ctx, models.User{
		Email:        email,
		Active:       true,
		PasswordHash: hash,
	})
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("user_id", user.UserID).Msg("user signed up")
	return user, nil
}

// Authenticate looks the account up by normalized email.
//
// Results:
//   - unknown email → (nil, false, nil)
//   - disabled account → (user, false, nil)
//   - active account → (user, password matches, nil)
func (a *authService) Authenticate(ctx context.Context, email, password string) (*models.User, bool, error) {
	user, err := a.userRepository.FindUserByEmail(ctx, models.NormalizeEmail(email))
	if errors.Is(err, store.ErrNoUserWasFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("user search by email failed: %w", err)
	}

	if !user.Active {
		return &user, false, nil
	}

	return &user, utils.VerifyPassword(password, user.PasswordHash), nil
}

func (a *authService) Login(ctx context.Context, form models.CredentialsForm) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, form); err != nil {
		return models.User{}, fmt.Errorf("error during login form validation: %w", err)
	}

	user, ok, err := a.Authenticate(ctx, form.Username, form.Password)
	if err != nil {
		return models.User{}, err
	}

	email := models.NormalizeEmail(form.Username)
	switch {
	case user == nil:
		log.Info().Str("email", email).Msg("login failed: unknown email")
		return models.User{}, ErrWrongCredentials
	case !user.Active:
		log.Info().Int64("user_id", user.UserID).Msg("login failed: account is disabled")
		return models.User{}, ErrWrongCredentials
	case !ok:
		log.Info().Int64("user_id", user.UserID).Msg("login failed: wrong password")
		return models.User{}, ErrWrongCredentials
	}

	log.Info().Int64("user_id", user.UserID).Msg("user logged in")
	return *user, nil
}

func (a *authService) Fingerprint(remoteIP, userAgent string) string {
	return utils.Fingerprint(remoteIP, userAgent, a.sessionSecret)
}

// CreateSession issues a signed session for user, bound to fingerprint.
func (a *authService) CreateSession(ctx context.Context, user models.User, fingerprint string) (models.Session, error) {
	session, err := utils.GenerateSessionToken(a.sessionIssuer, user.UserID, a.sessionDuration, a.sessionSecret, fingerprint, a.uuidGenerator.Generate())
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrSessionCreationFailed, err)
	}

	return session, nil
}

// ParseSession validates a raw session token and checks the client
// fingerprint according to the configured protection level:
//   - strong: a mismatch yields ErrSessionFingerprintMismatch.
//   - basic: a mismatch is logged and the session is kept.
//   - none: the fingerprint is not checked.
//
// Any token validation failure is normalised to ErrSessionIsExpiredOrInvalid.
func (a *authService) ParseSession(ctx context.Context, token, fingerprint string) (models.Session, error) {
	log := logger.FromContext(ctx)

	session, err := utils.ValidateAndParseSessionToken(token, a.sessionSecret, a.sessionIssuer)
	if err != nil {
		log.Debug().Err(err).Msg("rejected session token")
		return models.Session{}, ErrSessionIsExpiredOrInvalid
	}

	if a.sessionProtection == config.SessionProtectionNone || utils.EqualHashes(session.Claims.Fingerprint, fingerprint) {
		return session, nil
	}

	if a.sessionProtection == config.SessionProtectionBasic {
		log.Warn().Int64("user_id", session.UserID).Msg("session used from a different client")
		return session, nil
	}

	log.Warn().Int64("user_id", session.UserID).Msg("session invalidated: client fingerprint changed")
	return models.Session{}, ErrSessionFingerprintMismatch
}

func (a *authService) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := a.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNoUserWasFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("user search by id failed: %w", err)
	}

	if !user.Active {
		return nil, nil
	}

	return &user, nil
}

// ChangePassword stores a new hash for the account with the given email.
// The previous password stops verifying immediately.
func (a *authService) ChangePassword(ctx context.Context, email, newPassword string) error {
	user, err := a.userRepository.FindUserByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("user search by email failed: %w", err)
	}

	hash, err := utils.SetPassword(newPassword)
	if err != nil {
		return fmt.Errorf("error setting password: %w", err)
	}

	if err := a.userRepository.UpdatePassword(ctx, user.UserID, hash); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("user_id", user.UserID).Msg("password changed")
	return nil
}

func (a *authService) SetActive(ctx context.Context, email string, active bool) error {
	user, err := a.userRepository.FindUserByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("user search by email failed: %w", err)
	}

	if err := a.userRepository.SetActive(ctx, user.UserID, active); err != nil {
		return fmt.Errorf("error changing account state: %w", err)
	}

	logger.FromContext(ctx).Info().Int64("user_id", user.UserID).Bool("active", active).Msg("account state changed")
	return nil
}
