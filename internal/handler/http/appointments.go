// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-sched/internal/app"
	"github.com/MKhiriev/go-sched/internal/logger"
	"github.com/MKhiriev/go-sched/internal/utils"
	"github.com/MKhiriev/go-sched/internal/validators"
	"github.com/MKhiriev/go-sched/internal/view"
	"github.com/MKhiriev/go-sched/models"
)

func (h *Handler) appointmentList(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		h.renderError(w, r, ErrNoUserInContext)
		return
	}

	appointments, err := h.services.AppointmentService.List(r.Context(), user.UserID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	data := h.pageData(r)
	data.Appointments = appointments
	h.render(w, r, http.StatusOK, view.PageAppointmentIndex, data)
}

func (h *Handler) appointmentDetail(w http.ResponseWriter, r *http.Request) {
	appointment, ok := h.ownedAppointment(w, r)
	if !ok {
		return
	}

	data := h.pageData(r)
	data.Appointment = appointment
	h.render(w, r, http.StatusOK, view.PageAppointmentDetail, data)
}

func (h *Handler) appointmentCreatePage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageAppointmentEdit, h.pageData(r))
}

func (h *Handler) appointmentCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		h.renderError(w, r, ErrNoUserInContext)
		return
	}

	form, ok := parseAppointmentForm(w, r)
	if !ok {
		return
	}

	created, err := h.services.AppointmentService.Create(r.Context(), user.UserID, form)
	if err != nil {
		h.renderFormError(w, r, 0, form, err)
		return
	}

	logger.FromRequest(r).Info().Int64("appointment_id", created.ID).Msg("appointment created")
	http.Redirect(w, r, pathAppointments, http.StatusSeeOther)
}

func (h *Handler) appointmentEditPage(w http.ResponseWriter, r *http.Request) {
	appointment, ok := h.ownedAppointment(w, r)
	if !ok {
		return
	}

	data := h.pageData(r)
	data.AppointmentID = appointment.ID
	data.AppointmentForm = models.AppointmentFormFromModel(appointment)
	h.render(w, r, http.StatusOK, view.PageAppointmentEdit, data)
}

func (h *Handler) appointmentEdit(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		h.renderError(w, r, ErrNoUserInContext)
		return
	}

	appointmentID, err := appointmentIDFromURL(r)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	form, ok := parseAppointmentForm(w, r)
	if !ok {
		return
	}

	updated, err := h.services.AppointmentService.Update(r.Context(), appointmentID, user.UserID, form)
	if err != nil {
		h.renderFormError(w, r, appointmentID, form, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("%s%d/", pathAppointments, updated.ID), http.StatusSeeOther)
}

// appointmentDelete answers with JSON, as it is called from a script on the
// detail page.
func (h *Handler) appointmentDelete(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	status := http.StatusOK
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		status = http.StatusInternalServerError
		log.Err(ErrNoUserInContext).Send()
	} else if appointmentID, err := appointmentIDFromURL(r); err != nil {
		status = statusFromError(err)
	} else if err := h.services.AppointmentService.Delete(r.Context(), appointmentID, user.UserID); err != nil {
		status = statusFromError(err)
		if status == http.StatusInternalServerError {
			log.Err(err).Int64("appointment_id", appointmentID).Msg("error deleting appointment")
		}
	} else {
		log.Info().Int64("appointment_id", appointmentID).Msg("appointment deleted")
	}

	if _, err := utils.WriteJSON(w, map[string]string{"status": deleteStatus(status)}, status); err != nil {
		log.Err(err).Msg("error writing response")
	}
}

// ownedAppointment loads the appointment of the {id} URL parameter for the
// current user. On failure the error page is written and ok is false.
func (h *Handler) ownedAppointment(w http.ResponseWriter, r *http.Request) (models.Appointment, bool) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		h.renderError(w, r, ErrNoUserInContext)
		return models.Appointment{}, false
	}

	appointmentID, err := appointmentIDFromURL(r)
	if err != nil {
		h.renderError(w, r, err)
		return models.Appointment{}, false
	}

	appointment, err := h.services.AppointmentService.Get(r.Context(), appointmentID, user.UserID)
	if err != nil {
		h.renderError(w, r, err)
		return models.Appointment{}, false
	}

	return appointment, true
}

// renderFormError re-renders the appointment form for validation errors and
// the error page for everything else.
func (h *Handler) renderFormError(w http.ResponseWriter, r *http.Request, appointmentID int64, form models.AppointmentForm, err error) {
	var fieldErrors validators.FieldErrors
	if !errors.As(err, &fieldErrors) {
		h.renderError(w, r, err)
		return
	}

	data := h.pageData(r)
	data.AppointmentID = appointmentID
	data.AppointmentForm = form
	data.Errors = fieldErrors
	h.render(w, r, http.StatusOK, view.PageAppointmentEdit, data)
}

func parseAppointmentForm(w http.ResponseWriter, r *http.Request) (models.AppointmentForm, bool) {
	if err := r.ParseForm(); err != nil {
		logger.FromRequest(r).Err(err).Msg("invalid form was passed")
		http.Error(w, app.MsgInvalidForm, http.StatusBadRequest)
		return models.AppointmentForm{}, false
	}

	return models.AppointmentFormFromValues(r.PostForm), true
}

func appointmentIDFromURL(r *http.Request) (int64, error) {
	appointmentID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidAppointmentID, err)
	}
	return appointmentID, nil
}
