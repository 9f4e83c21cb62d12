package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSessionToken_Success(t *testing.T) {
	session, err := GenerateSessionToken("test-issuer", 123, time.Hour, "secret-key", "fpr", "sid")
	require.NoError(t, err)

	assert.NotEmpty(t, session.SignedString)
	assert.Equal(t, session.SignedString, session.String())
	assert.Equal(t, int64(123), session.UserID)
	assert.Equal(t, "test-issuer", session.Claims.Issuer)
	assert.Equal(t, "123", session.Claims.Subject)
	assert.Equal(t, "sid", session.Claims.ID)
	assert.Equal(t, "fpr", session.Claims.Fingerprint)
}

func TestGenerateSessionToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		duration time.Duration
		key      string
	}{
		{"empty issuer", "", time.Hour, "key"},
		{"zero duration", "iss", 0, "key"},
		{"empty key", "iss", time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateSessionToken(tt.issuer, 1, tt.duration, tt.key, "", "")
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseSessionToken_Success(t *testing.T) {
	generated, err := GenerateSessionToken("test-issuer", 456, 5*time.Minute, "secret-key", "fpr", "sid")
	require.NoError(t, err)

	parsed, err := ValidateAndParseSessionToken(generated.SignedString, "secret-key", "test-issuer")
	require.NoError(t, err)

	assert.Equal(t, int64(456), parsed.UserID)
	assert.Equal(t, "fpr", parsed.Claims.Fingerprint)
	assert.Equal(t, "sid", parsed.Claims.ID)
	assert.Equal(t, generated.SignedString, parsed.SignedString)
}

func TestValidateAndParseSessionToken_InvalidKey(t *testing.T) {
	generated, _ := GenerateSessionToken("test-issuer", 1, time.Hour, "correct-key", "", "")

	_, err := ValidateAndParseSessionToken(generated.SignedString, "wrong-key", "test-issuer")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestValidateAndParseSessionToken_Expired(t *testing.T) {
	generated, _ := GenerateSessionToken("test-issuer", 1, -time.Second, "key", "", "")

	_, err := ValidateAndParseSessionToken(generated.SignedString, "key", "test-issuer")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateAndParseSessionToken_WrongIssuer(t *testing.T) {
	generated, _ := GenerateSessionToken("real-issuer", 1, time.Hour, "key", "", "")

	_, err := ValidateAndParseSessionToken(generated.SignedString, "key", "fake-issuer")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidIssuer)
}

func TestValidateAndParseSessionToken_Malformed(t *testing.T) {
	_, err := ValidateAndParseSessionToken("not.a.token", "key", "iss")
	assert.Error(t, err)
}

func TestValidateAndParseSessionToken_NonNumericSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Issuer:    "iss",
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("key"))
	require.NoError(t, err)

	_, err = ValidateAndParseSessionToken(signed, "key", "iss")
	assert.Error(t, err)
}
