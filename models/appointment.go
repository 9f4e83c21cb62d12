// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Appointment is a single calendar entry owned by exactly one [User].
type Appointment struct {
	// ID is the surrogate identifier of the appointment.
	ID int64 `json:"id"`

	// CreatedAt is set once on insert.
	CreatedAt time.Time `json:"created_at"`

	// ModifiedAt is refreshed on every update.
	ModifiedAt time.Time `json:"modified_at"`

	// Title is an optional short caption, at most 255 characters.
	Title string `json:"title"`

	// Start is the required beginning of the appointment.
	Start time.Time `json:"start"`

	// End is the optional end of the appointment. A nil End means the
	// appointment has no known duration.
	End *time.Time `json:"end,omitempty"`

	// AllDay marks appointments whose time-of-day portion is not meaningful
	// for display.
	AllDay bool `json:"allday"`

	// Location is an optional place description, at most 255 characters.
	Location string `json:"location"`

	// Description is unconstrained free text.
	Description string `json:"description"`

	// UserID references the owning user.
	UserID int64 `json:"-"`
}

// TableName returns the name of the database table
// associated with the Appointment model.
func (a Appointment) TableName() string {
	return "appointments"
}

// Duration returns the length of the appointment in whole seconds.
// It is zero when End is not set or precedes Start.
func (a Appointment) Duration() int64 {
	if a.End == nil || a.End.Before(a.Start) {
		return 0
	}

	return int64(a.End.Sub(a.Start) / time.Second)
}

// IsOwnedBy reports whether the appointment belongs to the given user.
func (a Appointment) IsOwnedBy(userID int64) bool {
	return a.UserID == userID
}
