package manage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-sched/internal/config"
	"github.com/MKhiriev/go-sched/internal/logger"
	"github.com/MKhiriev/go-sched/internal/store"
	"github.com/MKhiriev/go-sched/internal/utils"
)

func TestMain(m *testing.M) {
	utils.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCommand(logger.Nop())
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func findUser(t *testing.T, dsn, email string) (bool, string, error) {
	t.Helper()

	db, err := store.NewConnect(context.Background(), config.DB{DSN: dsn}, logger.Nop())
	require.NoError(t, err)
	defer db.Close()

	user, err := store.NewUserRepository(db, logger.Nop()).FindUserByEmail(context.Background(), email)
	return user.Active, user.PasswordHash, err
}

func TestManage_AccountLifecycle(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "sched.db")

	out, err := run(t, "create-tables", "-d", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "tables created")

	// running it twice is harmless
	_, err = run(t, "create-tables", "-d", dsn)
	require.NoError(t, err)

	out, err = run(t, "create-user", "Dave@Example.com", "first", "-d", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "user dave@example.com created")

	out, err = run(t, "set-password", "dave@example.com", "second", "-d", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "password of dave@example.com changed")

	active, hash, err := findUser(t, dsn, "dave@example.com")
	require.NoError(t, err)
	assert.True(t, active)
	assert.True(t, utils.VerifyPassword("second", hash))
	assert.False(t, utils.VerifyPassword("first", hash))

	out, err = run(t, "deactivate-user", "dave@example.com", "-d", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "deactivated")
	active, _, err = findUser(t, dsn, "dave@example.com")
	require.NoError(t, err)
	assert.False(t, active)

	out, err = run(t, "activate-user", "DAVE@example.com", "-d", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "user dave@example.com activated")
	active, _, err = findUser(t, dsn, "dave@example.com")
	require.NoError(t, err)
	assert.True(t, active)

	out, err = run(t, "drop-tables", "-d", dsn)
	require.NoError(t, err)
	assert.Contains(t, out, "tables dropped")

	_, _, err = findUser(t, dsn, "dave@example.com")
	assert.Error(t, err)
}

func TestManage_UnknownUser(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "sched.db")
	_, err := run(t, "create-tables", "-d", dsn)
	require.NoError(t, err)

	_, err = run(t, "set-password", "ghost@example.com", "secret", "-d", dsn)
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)

	_, err = run(t, "deactivate-user", "ghost@example.com", "-d", dsn)
	assert.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestManage_DuplicateUser(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "sched.db")
	_, err := run(t, "create-tables", "-d", dsn)
	require.NoError(t, err)

	_, err = run(t, "create-user", "erin@example.com", "secret", "-d", dsn)
	require.NoError(t, err)

	_, err = run(t, "create-user", "erin@example.com", "other", "-d", dsn)
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestManage_ArgumentValidation(t *testing.T) {
	_, err := run(t, "set-password", "only-email@example.com")
	assert.Error(t, err)

	_, err = run(t, "create-tables", "extra")
	assert.Error(t, err)
}
