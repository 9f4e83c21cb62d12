// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing message strings shown by the
// go-sched web pages.
package app

const (
	// MsgLoginRequired is shown on the login page when an anonymous user was
	// redirected away from a protected page.
	MsgLoginRequired = "Please login to check the appointments"

	// MsgWrongCredentials is shown for an unknown email, a disabled account
	// and a wrong password alike.
	MsgWrongCredentials = "Incorrect username or password, please try again"

	// MsgEmailTaken is shown by the signup form for a registered email.
	MsgEmailTaken = "This email is already taken"

	// MsgTooManyRequests is the body of 429 responses to throttled login and
	// signup submissions.
	MsgTooManyRequests = "Too many attempts, please wait a moment and try again"

	// MsgInvalidForm is the body of 400 responses to unparsable form posts.
	MsgInvalidForm = "invalid form was passed"
)
