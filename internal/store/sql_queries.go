package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-sched/models"
)

const (
	usersTable        = "users"
	appointmentsTable = "appointments"
)

// Explicit column mapping. The order matches the scan helpers below.
var (
	userColumns = []string{"id", "created", "modified", "name", "email", "active", "password"}

	appointmentColumns = []string{
		"id", "created", "modified", "title", "start_at", "end_at",
		"allday", "location", "description", "user_id",
	}
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, user *models.User) error {
	var created, modified timestamp
	if err := row.Scan(
		&user.UserID,
		&created,
		&modified,
		&user.Name,
		&user.Email,
		&user.Active,
		&user.PasswordHash,
	); err != nil {
		return err
	}

	user.CreatedAt = created.Time
	user.ModifiedAt = modified.Time
	return nil
}

func scanAppointment(row rowScanner, appointment *models.Appointment) error {
	var created, modified, start, end timestamp
	if err := row.Scan(
		&appointment.ID,
		&created,
		&modified,
		&appointment.Title,
		&start,
		&end,
		&appointment.AllDay,
		&appointment.Location,
		&appointment.Description,
		&appointment.UserID,
	); err != nil {
		return err
	}

	appointment.CreatedAt = created.Time
	appointment.ModifiedAt = modified.Time
	appointment.Start = start.Time
	appointment.End = nil
	if end.Valid {
		t := end.Time
		appointment.End = &t
	}
	return nil
}

// timestamp scans a nullable timestamp column into UTC.
// go-sqlite3 hands out plain text for columns without a declared type, which
// is what RETURNING yields.
type timestamp struct {
	Time  time.Time
	Valid bool
}

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = v.UTC(), true
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("unsupported timestamp value of type %T", src)
	}
}

func (t *timestamp) parse(value string) error {
	value = strings.TrimSuffix(strings.TrimSpace(value), "Z")
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			t.Time, t.Valid = parsed.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("cannot parse %q as timestamp", value)
}

// appointmentValues returns the editable column values of appointment.
func appointmentValues(appointment models.Appointment) map[string]any {
	var end any
	if appointment.End != nil {
		end = appointment.End.UTC()
	}

	return map[string]any{
		"title":       appointment.Title,
		"start_at":    appointment.Start.UTC(),
		"end_at":      end,
		"allday":      appointment.AllDay,
		"location":    appointment.Location,
		"description": appointment.Description,
	}
}

// now returns the current time as stored in timestamp columns.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
