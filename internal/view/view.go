// Package view renders the HTML pages of the application from templates
// embedded into the binary.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/MKhiriev/go-sched/internal/filters"
	"github.com/MKhiriev/go-sched/internal/validators"
	"github.com/MKhiriev/go-sched/models"
)

//go:embed templates
var templatesFS embed.FS

// Pages, relative to the templates directory.
const (
	PageAppointmentIndex  = "appointment/index.html"
	PageAppointmentDetail = "appointment/detail.html"
	PageAppointmentEdit   = "appointment/edit.html"

	PageLogin  = "user/login.html"
	PageSignup = "user/signup.html"

	PageNotFound         = "error/not_found.html"
	PageForbidden        = "error/forbidden.html"
	PageServerError      = "error/server_error.html"
	PageMethodNotAllowed = "error/method_not_allowed.html"
)

var pages = []string{
	PageAppointmentIndex,
	PageAppointmentDetail,
	PageAppointmentEdit,
	PageLogin,
	PageSignup,
	PageNotFound,
	PageForbidden,
	PageServerError,
	PageMethodNotAllowed,
}

// shared templates parsed into every page
var shared = []string{"templates/layout.html", "templates/user/credentials.html"}

// Data is the template context of every page. Pages read only the fields
// they need.
type Data struct {
	// User is the logged-in user, nil for anonymous requests.
	User *models.User

	// Message is an informational notice shown above the content.
	Message string

	// Error is a form-level error shown above the content.
	Error string

	// Errors holds field-level validation messages.
	Errors validators.FieldErrors

	Appointments []models.Appointment
	Appointment  models.Appointment

	// AppointmentID is zero on the create page.
	AppointmentID   int64
	AppointmentForm models.AppointmentForm

	CredentialsForm models.CredentialsForm

	// Action and Submit configure the shared credentials form.
	Action string
	Submit string

	// Next is the path to return to after login.
	Next string
}

// Renderer executes page templates.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every page together with the shared layout.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}

	for _, page := range pages {
		files := append(append([]string{}, shared...), "templates/"+page)
		tmpl, err := template.New(page).Funcs(filters.FuncMap()).ParseFS(templatesFS, files...)
		if err != nil {
			return nil, fmt.Errorf("error parsing template %s: %w", page, err)
		}
		r.templates[page] = tmpl
	}

	return r, nil
}

// Render writes page with the given status. The page is rendered into a
// buffer first, so a failing template never produces a partial response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data Data) error {
	tmpl, ok := r.templates[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("error rendering %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
