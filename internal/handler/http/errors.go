// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of the HTTP layer. Callers can match against them with
// [errors.Is].
var (
	// ErrInvalidAppointmentID is returned when the {id} URL parameter does
	// not fit into an int64.
	ErrInvalidAppointmentID = errors.New("invalid appointment id")

	// ErrNoUserInContext means a protected handler ran without the
	// requireLogin middleware.
	ErrNoUserInContext = errors.New("no user in request context")
)
