package models

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Form field names shared by the HTML templates, the form decoders and the
// validators.
const (
	FieldTitle       = "title"
	FieldStart       = "start"
	FieldEnd         = "end"
	FieldAllDay      = "allday"
	FieldLocation    = "location"
	FieldDescription = "description"

	FieldUsername = "username"
	FieldPassword = "password"
)

// FormTimeLayout is the layout used when rendering date-times back into
// form inputs (HTML datetime-local).
const FormTimeLayout = "2006-01-02T15:04"

// formTimeLayouts lists every layout accepted for submitted date-times.
var formTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	FormTimeLayout,
}

// ErrInvalidDateTime is returned by [ParseFormTime] when the value matches
// none of the accepted layouts.
var ErrInvalidDateTime = errors.New("not a valid datetime value")

// ParseFormTime parses a submitted date-time value. Surrounding whitespace
// is ignored. Values carry no zone and are interpreted as UTC.
func ParseFormTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range formTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrInvalidDateTime
}

// ParseFormBool follows checkbox semantics: any submitted value other than
// "" and "false" is true.
func ParseFormBool(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value != "" && value != "false"
}

// AppointmentForm holds the raw values of a submitted appointment form.
type AppointmentForm struct {
	Title       string
	Start       string
	End         string
	AllDay      bool
	Location    string
	Description string
}

// AppointmentFormFromValues decodes an appointment form from submitted
// request values.
func AppointmentFormFromValues(values url.Values) AppointmentForm {
	return AppointmentForm{
		Title:       values.Get(FieldTitle),
		Start:       values.Get(FieldStart),
		End:         values.Get(FieldEnd),
		AllDay:      ParseFormBool(values.Get(FieldAllDay)),
		Location:    values.Get(FieldLocation),
		Description: values.Get(FieldDescription),
	}
}

// AppointmentFormFromModel pre-fills a form with the stored values of an
// appointment, for the edit page.
func AppointmentFormFromModel(a Appointment) AppointmentForm {
	form := AppointmentForm{
		Title:       a.Title,
		Start:       a.Start.Format(FormTimeLayout),
		AllDay:      a.AllDay,
		Location:    a.Location,
		Description: a.Description,
	}
	if a.End != nil {
		form.End = a.End.Format(FormTimeLayout)
	}

	return form
}

// Apply copies the form values onto a, field by field. Identity, ownership
// and timestamps are never touched. The form must have been validated
// beforehand; Apply still refuses an unparsable start.
func (f AppointmentForm) Apply(a *Appointment) error {
	start, err := ParseFormTime(f.Start)
	if err != nil {
		return err
	}

	var end *time.Time
	if strings.TrimSpace(f.End) != "" {
		parsed, err := ParseFormTime(f.End)
		if err != nil {
			return err
		}
		end = &parsed
	}

	a.Title = f.Title
	a.Start = start
	a.End = end
	a.AllDay = f.AllDay
	a.Location = f.Location
	a.Description = f.Description

	return nil
}

// CredentialsForm holds the values submitted by the signup and login forms.
// Username carries the e-mail address.
type CredentialsForm struct {
	Username string
	Password string
}

// CredentialsFormFromValues decodes a credentials form from submitted
// request values.
func CredentialsFormFromValues(values url.Values) CredentialsForm {
	return CredentialsForm{
		Username: values.Get(FieldUsername),
		Password: values.Get(FieldPassword),
	}
}
