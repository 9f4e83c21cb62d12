package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-sched/internal/app"
	"github.com/MKhiriev/go-sched/internal/logger"
	"github.com/MKhiriev/go-sched/internal/service"
	"github.com/MKhiriev/go-sched/internal/store"
	"github.com/MKhiriev/go-sched/internal/utils"
	"github.com/MKhiriev/go-sched/internal/validators"
	"github.com/MKhiriev/go-sched/internal/view"
	"github.com/MKhiriev/go-sched/models"
)

func (h *Handler) signupPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageSignup, h.signupData(r, models.CredentialsForm{}))
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("invalid form was passed")
		http.Error(w, app.MsgInvalidForm, http.StatusBadRequest)
		return
	}
	form := models.CredentialsFormFromValues(r.PostForm)

	user, err := h.services.AuthService.Signup(ctx, form)
	if err != nil {
		data := h.signupData(r, form)

		var fieldErrors validators.FieldErrors
		switch {
		case errors.As(err, &fieldErrors):
			data.Errors = fieldErrors
		case errors.Is(err, store.ErrEmailAlreadyExists):
			data.Error = app.MsgEmailTaken
		default:
			h.renderError(w, r, err)
			return
		}

		h.render(w, r, http.StatusOK, view.PageSignup, data)
		return
	}

	h.startSession(w, r, user, pathAppointments)
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := utils.GetUserFromContext(r.Context()); ok {
		http.Redirect(w, r, pathAppointments, http.StatusSeeOther)
		return
	}

	next := r.URL.Query().Get("next")
	data := h.loginData(r, models.CredentialsForm{}, next)
	if next != "" {
		data.Message = app.MsgLoginRequired
	}

	h.render(w, r, http.StatusOK, view.PageLogin, data)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if _, ok := utils.GetUserFromContext(ctx); ok {
		http.Redirect(w, r, pathAppointments, http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("invalid form was passed")
		http.Error(w, app.MsgInvalidForm, http.StatusBadRequest)
		return
	}
	form := models.CredentialsFormFromValues(r.PostForm)
	next := r.PostForm.Get("next")

	user, err := h.services.AuthService.Login(ctx, form)
	if err != nil {
		data := h.loginData(r, form, next)

		var fieldErrors validators.FieldErrors
		switch {
		case errors.As(err, &fieldErrors):
			data.Errors = fieldErrors
		case errors.Is(err, service.ErrWrongCredentials):
			data.Error = app.MsgWrongCredentials
		default:
			h.renderError(w, r, err)
			return
		}

		h.render(w, r, http.StatusOK, view.PageLogin, data)
		return
	}

	h.startSession(w, r, user, utils.SafeRedirectTarget(next, pathAppointments))
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, r)
	http.Redirect(w, r, pathLogin, http.StatusSeeOther)
}

// startSession logs user in and redirects to target.
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, user models.User, target string) {
	auth := h.services.AuthService

	session, err := auth.CreateSession(r.Context(), user, auth.Fingerprint(utils.ClientIP(r), r.UserAgent()))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	setSessionCookie(w, r, session)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) signupData(r *http.Request, form models.CredentialsForm) view.Data {
	data := h.pageData(r)
	data.CredentialsForm = form
	data.Action = "/signup/"
	data.Submit = "Sign up"
	return data
}

func (h *Handler) loginData(r *http.Request, form models.CredentialsForm, next string) view.Data {
	data := h.pageData(r)
	data.CredentialsForm = form
	data.Action = pathLogin
	data.Submit = "Login"
	data.Next = next
	return data
}
