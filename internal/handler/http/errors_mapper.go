package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-sched/internal/logger"
	"github.com/MKhiriev/go-sched/internal/service"
	"github.com/MKhiriev/go-sched/internal/store"
	"github.com/MKhiriev/go-sched/internal/utils"
	"github.com/MKhiriev/go-sched/internal/validators"
	"github.com/MKhiriev/go-sched/internal/view"
)

var errorStatusMap = map[error]int{
	validators.ErrInvalidForm:                        http.StatusBadRequest,
	service.ErrWrongCredentials:                      http.StatusUnauthorized,
	service.ErrSessionIsExpiredOrInvalid:             http.StatusUnauthorized,
	service.ErrSessionFingerprintMismatch:            http.StatusUnauthorized,
	service.ErrUnauthorizedAccessToDifferentUserData: http.StatusForbidden,
	ErrInvalidAppointmentID:                          http.StatusNotFound,

	store.ErrEmailAlreadyExists:  http.StatusConflict,
	store.ErrNoUserWasFound:      http.StatusNotFound,
	store.ErrAppointmentNotFound: http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// deleteStatus is the JSON status text of the delete endpoint.
func deleteStatus(status int) string {
	switch status {
	case http.StatusOK:
		return "OK"
	case http.StatusNotFound:
		return "Not Found"
	case http.StatusForbidden:
		return "Forbidden"
	default:
		return http.StatusText(status)
	}
}

// renderError renders the error page matching err. Unexpected errors are
// logged.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)

	page := view.PageServerError
	switch status {
	case http.StatusNotFound:
		page = view.PageNotFound
	case http.StatusForbidden:
		page = view.PageForbidden
	default:
		status = http.StatusInternalServerError
		logger.FromRequest(r).Err(err).Str("uri", r.RequestURI).Msg("unexpected error")
	}

	h.render(w, r, status, page, h.pageData(r))
}

// render writes a page and falls back to a plain 500 response when the
// template fails.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data view.Data) {
	if err := h.renderer.Render(w, status, page, data); err != nil {
		logger.FromRequest(r).Err(err).Str("page", page).Msg("error rendering page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// pageData returns the template context shared by every page.
func (h *Handler) pageData(r *http.Request) view.Data {
	user, _ := utils.GetUserFromContext(r.Context())
	return view.Data{User: user}
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, view.PageNotFound, h.pageData(r))
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusMethodNotAllowed, view.PageMethodNotAllowed, h.pageData(r))
}
