package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the claim set carried by a session token.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Fingerprint binds the session to the client that logged in: an HMAC
	// over the remote address and User-Agent.
	Fingerprint string `json:"fpr"`
}

// Session wraps a signed session token together with its decoded identity.
type Session struct {
	// Token is the underlying JWT token.
	*jwt.Token `json:"-"`

	// Claims holds the decoded claim set.
	Claims SessionClaims `json:"-"`

	// SignedString is the compact JWS form stored in the session cookie.
	SignedString string `json:"-"`

	// UserID is the session identity extracted from the "sub" claim.
	UserID int64 `json:"-"`
}

// GetUserID parses the "sub" claim of the session as an int64 user id.
func (s *Session) GetUserID() (int64, error) {
	userIDString, err := s.Claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from session: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from session to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the session token.
func (s *Session) String() string {
	return s.SignedString
}
