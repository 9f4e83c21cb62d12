package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-sched/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken creates a signed HMAC-SHA256 session token with the
// given parameters.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a string
//   - ID        (jti): unique session identifier
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - fpr:             the client fingerprint captured at login
//
// issuer, tokenDuration and signKey are required.
//
// Example usage:
//
//	session, err := utils.GenerateSessionToken("go-sched", 42, time.Hour, "secret", fpr, id)
func GenerateSessionToken(issuer string, userID int64, tokenDuration time.Duration, signKey, fingerprint, sessionID string) (models.Session, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.Session{}, errors.New("invalid params for generating session token")
	}

	now := time.Now()
	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Fingerprint: fingerprint,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Session{}, fmt.Errorf("error occurred during singing session token: %w", err)
	}

	return models.Session{Token: token, Claims: claims, SignedString: tokenString, UserID: userID}, nil
}

// ValidateAndParseSessionToken validates the given session token string and
// extracts its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key (HS256 only)
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim presence and check
//   - Subject (sub) claim presence and conversion to int64 UserID
//
// Example usage:
//
//	session, err := utils.ValidateAndParseSessionToken(cookie.Value, "secret", "go-sched")
//	if err != nil {
//	    // treat the request as anonymous
//	}
func ValidateAndParseSessionToken(tokenString, tokenSignKey, tokenIssuer string) (models.Session, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return models.Session{}, fmt.Errorf("error occurred validating and parsing session token: %w", err)
	}

	session := models.Session{Token: token, Claims: *claims, SignedString: tokenString}
	userID, err := session.GetUserID()
	if err != nil {
		return models.Session{}, err
	}
	session.UserID = userID

	return session, nil
}
