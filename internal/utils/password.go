// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when a password is blank after trimming.
var ErrEmptyPassword = errors.New("password is empty")

// PasswordCost is the bcrypt work factor used for new password hashes.
var PasswordCost = bcrypt.DefaultCost

// SetPassword trims surrounding whitespace from password and returns its
// bcrypt hash. Case is preserved, so "Secret" and "secret" are different
// passwords.
func SetPassword(password string) (string, error) {
	password = strings.TrimSpace(password)
	if password == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword reports whether password, trimmed the same way as in
// [SetPassword], matches hash. Blank passwords never match.
func VerifyPassword(password, hash string) bool {
	password = strings.TrimSpace(password)
	if password == "" || hash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
