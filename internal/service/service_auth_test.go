package service

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/MKhiriev/go-sched/internal/config"
	"github.com/MKhiriev/go-sched/internal/logger"
	"github.com/MKhiriev/go-sched/internal/mock"
	"github.com/MKhiriev/go-sched/internal/store"
	"github.com/MKhiriev/go-sched/internal/utils"
	"github.com/MKhiriev/go-sched/internal/validators"
	"github.com/MKhiriev/go-sched/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	utils.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

func testAppConfig(protection string) config.App {
	return config.App{
		SessionSecret:     "test-secret",
		SessionProtection: protection,
		SessionDuration:   time.Hour,
		SessionIssuer:     "go-sched-test",
	}
}

// newTestAuthSvc builds authService over a mocked repository
func newTestAuthSvc(t *testing.T, protection string) (*authService, *mock.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mock.NewMockUserRepository(ctrl)

	svc := NewAuthService(repo, validators.NewFormValidator(), testAppConfig(protection), logger.Nop()).(*authService)
	return svc, repo
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := utils.SetPassword(password)
	require.NoError(t, err)
	return hash
}

// ── Signup ───────────────────────────────────────────────────────────────────

func TestAuthService_Signup_Success(t *testing.T) {
	svc, repo := newTestAuthSvc(t, config.SessionProtectionStrong)
	ctx := context.Background()

	gomock.InOrder(
		repo.EXPECT().FindUserByEmail(ctx, "new@b.com").Return(models.User{}, store.ErrNoUserWasFound),
		repo.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, u models.User) (models.User, error) {
				assert.Equal(t, "new@b.com", u.Email)
				assert.True(t, u.Active)
				assert.NotEqual(t, "pw", u.PasswordHash, "plaintext must never be stored")
				assert.True(t, utils.VerifyPassword("pw", u.PasswordHash))
				u.UserID = 5
				return u, nil
			},
		),
	)

	user, err := svc.Signup(ctx, models.CredentialsForm{Username: " New@B.com ", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), user.UserID)
}

func TestAuthService_Signup_InvalidForm(t *testing.T) {
	svc, _ := newTestAuthSvc(t, config.SessionProtectionStrong)

	_, err := svc.Signup(context.Background(), models.CredentialsForm{Username: "  ", Password: ""})

	var fieldErrors validators.FieldErrors
	require.ErrorAs(t, err, &fieldErrors)
	assert.Equal(t, []string{validators.MsgRequired}, fieldErrors.Get(models.FieldUsername))
	assert.Equal(t, []string{validators.MsgRequired}, fieldErrors.Get(models.FieldPassword))
}

func TestAuthService_Signup_EmailTaken(t *testing.T) {
	svc, repo := newTestAuthSvc(t, config.SessionProtectionStrong)

	repo.EXPECT().FindUserByEmail(gomock.Any(), "a@b.com").Return(models.User{UserID: 1}, nil)

	_, err := svc.Signup(context.Background(), models.CredentialsForm{Username: "A@b.com", Password: "pw"})
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_Signup_EmailTakenConcurrently(t *testing.T) {
	svc, repo := newTestAuthSvc(t, config.SessionProtectionStrong)

	repo.EXPECT().FindUserByEmail(gomock.Any(), "a@b.com").Return(models.User{}, store.ErrNoUserWasFound)
	repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

	_, err := svc.Signup(context.Background(), models.CredentialsForm{Username: "a@b.com", Password: "pw"})
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_Signup_LookupFails(t *testing.T) {
	svc, repo := newTestAuthSvc(t, config.SessionProtectionStrong)

	repo.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrExecutingQuery)

	_, err := svc.Signup(context.Background(), models.CredentialsForm{Username: "a@b.com", Password: "pw"})
	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}

// ── Authenticate / Login ─────────────────────────────────────────────────────

func TestAuthService_Authenticate(t *testing.T) {
	hash := hashed(t, "Secret")

	tests := []struct {
		name       string
		found      models.User
		findErr    error
		password   string
		wantUser   bool
		wantResult bool
		wantErr    error
	}{
		{name: "unknown email", findErr: store.ErrNoUserWasFound, password: "Secret"},
		{name: "disabled account", found: models.User{UserID: 1, Active: false, PasswordHash: hash}, password: "Secret", wantUser: true},
		{name: "wrong password", found: models.User{UserID: 1, Active: true, PasswordHash: hash}, password: "secret", wantUser: true},
		{name: "blank password", found: models.User{UserID: 1, Active: true, PasswordHash: hash}, password: "   ", wantUser: true},
		{name: "valid", found: models.User{UserID: 1, Active: true, PasswordHash: hash}, password: " Secret ", wantUser: true, wantResult: true},
		{name: "storage failure", findErr: store.ErrExecutingQuery, password: "Secret", wantErr: store.ErrExecutingQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestAuthSvc(t, config.SessionProtectionStrong)
			repo.EXPECT().FindUserByEmail(gomock.Any(), "a@b.com").Return(tt.found, tt.findErr)

			user, ok, err := svc.Authenticate(context.Background(), " A@B.com", tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, user != nil)
			assert.Equal(t, tt.wantResult, ok)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash := hashed(t, "pw")
	active := models.User{UserID: 3, Email: "a@b.com", Active: true, PasswordHash: hash}

	t.Run("success", func(t *testing.T) {
		svc, repo := newTestAuthSvc(t, config.SessionProtectionStrong)
		repo.EXPECT().FindUserByEmail(gomock.Any(), "a@b.com").Return(active, nil)

		user, err := svc.Login(context.Background(), models.CredentialsForm{Username: "a@b.com", Password: "pw"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), user.UserID)
	})

	for name, found := range map[string]struct {
		user models.User
		err  error
	}{
		"unknown email":  {err: store.ErrNoUserWasFound},
		"wrong password": {user: models.User{UserID: 3, Active: true, PasswordHash: hashed(t, "other")}},
		"disabled":       {user: models.User{UserID: 3, Active: false, PasswordHash: hash}},
	} {
		t.Run(name, func(t *testing.T) {
			svc, repo := newTestAuthSvc(t, config.SessionProtectionStrong)
			repo.EXPECT().FindUserByEmail(gomock.Any(), "a@b.com").Return(found.user, found.err)

			_, err := svc.Login(context.Background(), models.CredentialsForm{Username: "a@b.com", Password: "pw"})
			assert.ErrorIs(t, err, ErrWrongCredentials)
		})
	}

	t.Run("invalid form", func(t *testing.T) {
		svc, _ := newTestAuthSvc(t, config.SessionProtectionStrong)

		_, err := svc.Login(context.Background(), models.CredentialsForm{Username: "a@b.com"})
		assert.ErrorIs(t, err, validators.ErrInvalidForm)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc, repo := newTestAuthSvc(t, config.SessionProtectionStrong)
		repo.EXPECT().FindUserByEmail(gomock.Any(), gomock.Any()).Return(models.User{}, errors.New("boom"))

		_, err := svc.Login(context.Background(), models.CredentialsForm{Username: "a@b.com", Password: "pw"})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrWrongCredentials)
	})
}

// ── Sessions ─────────────────────────────────────────────────────────────────

func TestAuthService_Session_RoundTrip(t *testing.T) {
	svc, _ := newTestAuthSvc(t, config.SessionProtectionStrong)
	ctx := context.Background()
	fpr := svc.Fingerprint("10.0.0.1", "test-agent")

	session, err := svc.CreateSession(ctx, models.User{UserID: 42}, fpr)
	require.NoError(t, err)
	assert.NotEmpty(t, session.Claims.ID)

	parsed, err := svc.ParseSession(ctx, session.String(), fpr)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
	assert.Equal(t, session.Claims.ID, parsed.Claims.ID)
}

func TestAuthService_ParseSession_Invalid(t *testing.T) {
	svc, _ := newTestAuthSvc(t, config.SessionProtectionStrong)

	_, err := svc.ParseSession(context.Background(), "not-a-token", "fpr")
	assert.ErrorIs(t, err, ErrSessionIsExpiredOrInvalid)

	other, _ := newTestAuthSvc(t, config.SessionProtectionStrong)
	other.sessionSecret = "different-secret"
	foreign, err := other.CreateSession(context.Background(), models.User{UserID: 1}, "fpr")
	require.NoError(t, err)

	_, err = svc.ParseSession(context.Background(), foreign.String(), "fpr")
	assert.ErrorIs(t, err, ErrSessionIsExpiredOrInvalid)
}

func TestAuthService_ParseSession_Protection(t *testing.T) {
	tests := []struct {
		protection string
		wantErr    error
	}{
		{protection: config.SessionProtectionStrong, wantErr: ErrSessionFingerprintMismatch},
		{protection: config.SessionProtectionBasic},
		{protection: config.SessionProtectionNone},
	}

	for _, tt := range tests {
		t.Run(tt.protection, func(t *testing.T) {
			svc, _ := newTestAuthSvc(t, tt.protection)
			ctx := context.Background()

			session, err := svc.CreateSession(ctx, models.User{UserID: 7}, svc.Fingerprint("10.0.0.1", "agent"))
			require.NoError(t, err)

			parsed, err := svc.ParseSession(ctx, session.String(), svc.Fingerprint("10.0.0.2", "agent"))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(7), parsed.UserID)
		})
	}
}

func TestAuthService_CurrentUser(t *testing.T) {
	svc, repo := newTestAuthSvc(t, config.SessionProtectionStrong)
	ctx := context.Background()

	repo.EXPECT().FindUserByID(ctx, int64(1)).Return(models.User{UserID: 1, Active: true}, nil)
	user, err := svc.CurrentUser(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.UserID)

	repo.EXPECT().FindUserByID(ctx, int64(2)).Return(models.User{UserID: 2, Active: false}, nil)
	user, err = svc.CurrentUser(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, user)

	repo.EXPECT().FindUserByID(ctx, int64(3)).Return(models.User{}, store.ErrNoUserWasFound)
	user, err = svc.CurrentUser(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, user)

	repo.EXPECT().FindUserByID(ctx, int64(4)).Return(models.User{}, store.ErrExecutingQuery)
	_, err = svc.CurrentUser(ctx, 4)
	assert.ErrorIs(t, err, store.ErrExecutingQuery)
}

// ── Management ───────────────────────────────────────────────────────────────

func TestAuthService_ChangePassword(t *testing.T) {
	svc, repo := newTestAuthSvc(t, config.SessionProtectionStrong)
	ctx := context.Background()

	repo.EXPECT().FindUserByEmail(ctx, "a@b.com").Return(models.User{UserID: 9}, nil)
	repo.EXPECT().UpdatePassword(ctx, int64(9), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, hash string) error {
			assert.True(t, utils.VerifyPassword("new-pw", hash))
			assert.False(t, utils.VerifyPassword("old-pw", hash))
			return nil
		},
	)

	require.NoError(t, svc.ChangePassword(ctx, "A@B.com", "new-pw"))
}

func TestAuthService_ChangePassword_Errors(t *testing.T) {
	svc, repo := newTestAuthSvc(t, config.SessionProtectionStrong)
	ctx := context.Background()

	repo.EXPECT().FindUserByEmail(ctx, "ghost@b.com").Return(models.User{}, store.ErrNoUserWasFound)
	assert.ErrorIs(t, svc.ChangePassword(ctx, "ghost@b.com", "pw"), store.ErrNoUserWasFound)

	repo.EXPECT().FindUserByEmail(ctx, "a@b.com").Return(models.User{UserID: 9}, nil)
	assert.ErrorIs(t, svc.ChangePassword(ctx, "a@b.com", "   "), utils.ErrEmptyPassword)
}

func TestAuthService_SetActive(t *testing.T) {
	svc, repo := newTestAuthSvc(t, config.SessionProtectionStrong)
	ctx := context.Background()

	gomock.InOrder(
		repo.EXPECT().FindUserByEmail(ctx, "a@b.com").Return(models.User{UserID: 9, Active: true}, nil),
		repo.EXPECT().SetActive(ctx, int64(9), false).Return(nil),
	)
	require.NoError(t, svc.SetActive(ctx, "a@b.com", false))

	repo.EXPECT().FindUserByEmail(ctx, "ghost@b.com").Return(models.User{}, store.ErrNoUserWasFound)
	assert.ErrorIs(t, svc.SetActive(ctx, "ghost@b.com", true), store.ErrNoUserWasFound)
}
