package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	PasswordCost = bcrypt.MinCost
	m.Run()
}

func TestSetPassword(t *testing.T) {
	hash, err := SetPassword("  Secret  ")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret", hash)

	assert.True(t, VerifyPassword("Secret", hash))
	assert.True(t, VerifyPassword("Secret\n", hash))
	assert.False(t, VerifyPassword("secret", hash))
	assert.False(t, VerifyPassword("other", hash))
}

func TestSetPassword_Salted(t *testing.T) {
	a, err := SetPassword("pw")
	require.NoError(t, err)
	b, err := SetPassword("pw")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSetPassword_Empty(t *testing.T) {
	for _, pw := range []string{"", "   ", "\t\n"} {
		_, err := SetPassword(pw)
		assert.ErrorIs(t, err, ErrEmptyPassword)
	}
}

func TestSetPassword_TooLong(t *testing.T) {
	_, err := SetPassword(strings.Repeat("a", 100))
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

func TestVerifyPassword_Blank(t *testing.T) {
	hash, err := SetPassword("pw")
	require.NoError(t, err)

	assert.False(t, VerifyPassword("", hash))
	assert.False(t, VerifyPassword("   ", hash))
	assert.False(t, VerifyPassword("pw", ""))
}
