package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-sched/internal/service"
	"github.com/MKhiriev/go-sched/internal/store"
	"github.com/MKhiriev/go-sched/internal/validators"
	"github.com/MKhiriev/go-sched/models"
)

func standupAppointment() models.Appointment {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(15 * time.Minute)
	return models.Appointment{
		ID:          5,
		UserID:      alice.UserID,
		Title:       "Standup",
		Start:       start,
		End:         &end,
		Location:    "Room 1",
		Description: "daily",
	}
}

func TestAppointmentList(t *testing.T) {
	env := newTestEnv(t, nil)
	env.appointments.EXPECT().List(gomock.Any(), alice.UserID).Return([]models.Appointment{standupAppointment()}, nil)

	rr := env.serve(env.asAlice(httptest.NewRequest(http.MethodGet, "/appointments/", nil)))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `href="/appointments/5/"`)
	assert.Contains(t, body, "Standup")
	assert.Contains(t, body, alice.Email)
}

func TestAppointmentList_Empty(t *testing.T) {
	env := newTestEnv(t, nil)
	env.appointments.EXPECT().List(gomock.Any(), alice.UserID).Return(nil, nil)

	rr := env.serve(env.asAlice(httptest.NewRequest(http.MethodGet, "/appointments/", nil)))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "No appointments yet")
}

func TestAppointmentDetail(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "owned", wantStatus: http.StatusOK, wantBody: "Room 1"},
		{name: "missing", err: store.ErrAppointmentNotFound, wantStatus: http.StatusNotFound, wantBody: "Not found"},
		{name: "foreign", err: service.ErrUnauthorizedAccessToDifferentUserData, wantStatus: http.StatusForbidden, wantBody: "Forbidden"},
		{name: "storage failure", err: store.ErrScanningRow, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			appointment := standupAppointment()
			if tt.err != nil {
				appointment = models.Appointment{}
			}
			env.appointments.EXPECT().Get(gomock.Any(), int64(5), alice.UserID).Return(appointment, tt.err)

			rr := env.serve(env.asAlice(httptest.NewRequest(http.MethodGet, "/appointments/5/", nil)))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantBody)
		})
	}
}

func TestAppointmentDetail_NonNumericID(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.serve(env.asAlice(httptest.NewRequest(http.MethodGet, "/appointments/abc/", nil)))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAppointmentCreatePage(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.serve(env.asAlice(httptest.NewRequest(http.MethodGet, "/appointments/create/", nil)))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `name="title"`)
}

func TestAppointmentCreate(t *testing.T) {
	env := newTestEnv(t, nil)
	form := models.AppointmentForm{Title: "Standup", Start: "2024-01-01T09:00", AllDay: true}
	env.appointments.EXPECT().Create(gomock.Any(), alice.UserID, form).Return(standupAppointment(), nil)

	rr := env.serve(env.asAlice(postForm("/appointments/create/", url.Values{
		models.FieldTitle:  {form.Title},
		models.FieldStart:  {form.Start},
		models.FieldAllDay: {"y"},
	})))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, pathAppointments, rr.Header().Get("Location"))
}

func TestAppointmentCreate_Invalid(t *testing.T) {
	env := newTestEnv(t, nil)
	env.appointments.EXPECT().Create(gomock.Any(), alice.UserID, gomock.Any()).
		Return(models.Appointment{}, validators.FieldErrors{models.FieldStart: {validators.MsgInvalidDatetime}})

	rr := env.serve(env.asAlice(postForm("/appointments/create/", url.Values{
		models.FieldTitle: {"Keep me"},
		models.FieldStart: {"tomorrow"},
	})))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), validators.MsgInvalidDatetime)
	assert.Contains(t, rr.Body.String(), `value="Keep me"`)
}

func TestAppointmentEditPage(t *testing.T) {
	env := newTestEnv(t, nil)
	env.appointments.EXPECT().Get(gomock.Any(), int64(5), alice.UserID).Return(standupAppointment(), nil)

	rr := env.serve(env.asAlice(httptest.NewRequest(http.MethodGet, "/appointments/5/edit/", nil)))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `value="2024-01-01T09:00"`)
	assert.Contains(t, rr.Body.String(), `value="2024-01-01T09:15"`)
}

func TestAppointmentEdit(t *testing.T) {
	env := newTestEnv(t, nil)
	form := models.AppointmentForm{Title: "Retro", Start: "2024-01-02T10:00"}
	updated := standupAppointment()
	updated.Title = "Retro"
	env.appointments.EXPECT().Update(gomock.Any(), int64(5), alice.UserID, form).Return(updated, nil)

	rr := env.serve(env.asAlice(postForm("/appointments/5/edit/", url.Values{
		models.FieldTitle: {form.Title},
		models.FieldStart: {form.Start},
	})))

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/appointments/5/", rr.Header().Get("Location"))
}

func TestAppointmentEdit_Foreign(t *testing.T) {
	env := newTestEnv(t, nil)
	env.appointments.EXPECT().Update(gomock.Any(), int64(7), alice.UserID, gomock.Any()).
		Return(models.Appointment{}, service.ErrUnauthorizedAccessToDifferentUserData)

	rr := env.serve(env.asAlice(postForm("/appointments/7/edit/", url.Values{models.FieldStart: {"bad"}})))

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestAppointmentDelete(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		err        error
		callsSvc   bool
		wantStatus int
		wantText   string
	}{
		{name: "deleted", target: "/appointments/5/delete/", callsSvc: true, wantStatus: http.StatusOK, wantText: "OK"},
		{name: "missing", target: "/appointments/5/delete/", callsSvc: true, err: store.ErrAppointmentNotFound, wantStatus: http.StatusNotFound, wantText: "Not Found"},
		{name: "foreign", target: "/appointments/5/delete/", callsSvc: true, err: service.ErrUnauthorizedAccessToDifferentUserData, wantStatus: http.StatusForbidden, wantText: "Forbidden"},
		{name: "storage failure", target: "/appointments/5/delete/", callsSvc: true, err: store.ErrExecutingStatement, wantStatus: http.StatusInternalServerError, wantText: "Internal Server Error"},
		{name: "id overflow", target: "/appointments/99999999999999999999/delete/", wantStatus: http.StatusNotFound, wantText: "Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			if tt.callsSvc {
				env.appointments.EXPECT().Delete(gomock.Any(), int64(5), alice.UserID).Return(tt.err)
			}

			rr := env.serve(env.asAlice(httptest.NewRequest(http.MethodDelete, tt.target, nil)))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.wantText, body["status"])
		})
	}
}

func TestAppointmentDelete_WrongMethod(t *testing.T) {
	env := newTestEnv(t, nil)

	rr := env.serve(env.asAlice(httptest.NewRequest(http.MethodGet, "/appointments/5/delete/", nil)))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
