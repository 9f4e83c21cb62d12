package service

import "errors"

var (
	ErrWrongCredentials = errors.New("incorrect username or password")

	ErrUnauthorizedAccessToDifferentUserData = errors.New("unauthorized access to different user data")

	ErrSessionCreationFailed      = errors.New("session creation failed")
	ErrSessionIsExpiredOrInvalid  = errors.New("session is expired or invalid")
	ErrSessionFingerprintMismatch = errors.New("session fingerprint mismatch")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
