package validators

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidForm is wrapped by every [FieldErrors] value.
	ErrInvalidForm = errors.New("invalid form")
)

// Field error messages shown next to form inputs.
const (
	MsgRequired        = "This field is required."
	MsgTooLong         = "Field cannot be longer than 255 characters."
	MsgInvalidDatetime = "Not a valid datetime value."
	MsgEndBeforeStart  = "End must not be before start."
	MsgPasswordTooLong = "Password cannot be longer than 72 bytes."
)

// MaxPasswordBytes is the longest trimmed password bcrypt can hash.
const MaxPasswordBytes = 72

// FieldErrors maps a form field name to its validation messages.
type FieldErrors map[string][]string

// Add appends msg to the messages of field.
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Get returns the messages of field, nil when the field is valid.
func (e FieldErrors) Get(field string) []string {
	return e[field]
}

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e[field], " "))
	}

	return ErrInvalidForm.Error() + ": " + strings.Join(parts, "; ")
}

func (e FieldErrors) Unwrap() error {
	return ErrInvalidForm
}

// err returns e as an error, or nil when no field failed.
func (e FieldErrors) err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
