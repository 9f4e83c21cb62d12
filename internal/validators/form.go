package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-sched/models"
)

const maxStringLength = 255

// FormValidator validates submitted appointment and credentials forms.
// Failures are reported as [FieldErrors]; misuse (unknown type or field) as
// [ErrUnsupportedType] or [ErrUnknownField].
type FormValidator struct {
}

// NewFormValidator constructs a FormValidator and returns it as the
// Validator interface.
func NewFormValidator() Validator {
	return &FormValidator{}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms of models.AppointmentForm and models.CredentialsForm are accepted.
// Optional fields restrict validation to the named subset.
func (v *FormValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.AppointmentForm:
		return v.validateAppointment(ctx, value, fields...)
	case *models.AppointmentForm:
		return v.validateAppointment(ctx, *value, fields...)

	case models.CredentialsForm:
		return v.validateCredentials(ctx, value, fields...)
	case *models.CredentialsForm:
		return v.validateCredentials(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *FormValidator) validateAppointment(ctx context.Context, form models.AppointmentForm, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{models.FieldTitle, models.FieldStart, models.FieldEnd, models.FieldAllDay, models.FieldLocation, models.FieldDescription}
	}

	errs := FieldErrors{}

	for _, f := range fields {
		switch f {
		case models.FieldTitle:
			if utf8.RuneCountInString(form.Title) > maxStringLength {
				errs.Add(f, MsgTooLong)
			}
		case models.FieldStart:
			if strings.TrimSpace(form.Start) == "" {
				errs.Add(f, MsgRequired)
				continue
			}
			if _, err := models.ParseFormTime(form.Start); err != nil {
				errs.Add(f, MsgInvalidDatetime)
			}
		case models.FieldEnd:
			if strings.TrimSpace(form.End) == "" {
				continue
			}
			end, err := models.ParseFormTime(form.End)
			if err != nil {
				errs.Add(f, MsgInvalidDatetime)
				continue
			}
			if s, err := models.ParseFormTime(form.Start); err == nil && end.Before(s) {
				errs.Add(f, MsgEndBeforeStart)
			}
		case models.FieldLocation:
			if utf8.RuneCountInString(form.Location) > maxStringLength {
				errs.Add(f, MsgTooLong)
			}
		case models.FieldAllDay, models.FieldDescription:
		default:
			return ErrUnknownField
		}
	}

	return errs.err()
}

func (v *FormValidator) validateCredentials(ctx context.Context, form models.CredentialsForm, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{models.FieldUsername, models.FieldPassword}
	}

	errs := FieldErrors{}
	for _, f := range fields {
		switch f {
		case models.FieldUsername:
			if strings.TrimSpace(form.Username) == "" {
				errs.Add(f, MsgRequired)
			}
		case models.FieldPassword:
			password := strings.TrimSpace(form.Password)
			switch {
			case password == "":
				errs.Add(f, MsgRequired)
			case len(password) > MaxPasswordBytes:
				errs.Add(f, MsgPasswordTooLong)
			}
		default:
			return ErrUnknownField
		}
	}

	return errs.err()
}
