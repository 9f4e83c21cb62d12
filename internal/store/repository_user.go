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

// userRepository is the SQL implementation of [UserRepository].
// It handles user account creation, lookup and updates against the "users"
// table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt, ModifiedAt).
//
// Error handling:
//   - unique violation on email → [ErrEmailAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingQuery].
//   - scan failure → wrapped [ErrScanningRow].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	ts := now()
	query, args, err := r.db.builder.
		Insert(usersTable).
		Columns("created", "modified", "name", "email", "active", "password").
		Values(ts, ts, user.Name, models.NormalizeEmail(user.Email), user.Active, user.PasswordHash).
		Suffix("RETURNING " + strings.Join(userColumns, ", ")).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	// create user in db
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, r.mapError(err, ErrExecutingQuery)
	}

	// scan saved user from db
	var created models.User
	if err := scanUser(row, &created); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
		return models.User{}, r.mapError(err, ErrScanningRow)
	}

	return created, nil
}

// FindUserByEmail retrieves the user whose normalized email equals email.
// An empty result yields [ErrNoUserWasFound].
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByEmail", sq.Eq{"email": models.NormalizeEmail(email)})
}

// FindUserByID retrieves the user with the given id.
// An empty result yields [ErrNoUserWasFound].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findOne(ctx, "*userRepository.FindUserByID", sq.Eq{"id": userID})
}

func (r *userRepository) findOne(ctx context.Context, funcName string, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.builder.
		Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error querying user")
		return models.User{}, r.mapError(err, ErrExecutingQuery)
	}

	var found models.User
	if err := scanUser(row, &found); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Err(err).Str("func", funcName).Msg("error: scanning error")
		}
		return models.User{}, r.mapError(err, ErrScanningRow)
	}

	return found, nil
}

// UpdatePassword replaces the stored password hash and bumps the modified
// timestamp.
func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	return r.update(ctx, "*userRepository.UpdatePassword", userID, sq.Eq{"password": passwordHash})
}

// SetActive enables or disables the account.
func (r *userRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	return r.update(ctx, "*userRepository.SetActive", userID, sq.Eq{"active": active})
}

func (r *userRepository) update(ctx context.Context, funcName string, userID int64, values sq.Eq) error {
	log := logger.FromContext(ctx)

	clauses := map[string]any{"modified": now()}
	for column, value := range values {
		clauses[column] = value
	}

	query, args, err := r.db.builder.
		Update(usersTable).
		SetMap(clauses).
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error updating user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// mapError converts driver errors into store errors, wrapping everything
// without a domain meaning into fallback.
func (r *userRepository) mapError(err, fallback error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrNoUserWasFound
	case r.db.classify(err) == UniqueViolation:
		return ErrEmailAlreadyExists
	default:
		return fmt.Errorf("%w: %w", fallback, err)
	}
}
