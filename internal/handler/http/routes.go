package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	pathAppointments = "/appointments/"
	pathLogin        = "/login/"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	if h.trustProxyHeaders {
		router.Use(middleware.RealIP)
	}
	router.Use(
		h.withTraceID,
		h.withLogging,
		middleware.Recoverer,
		withGZip,
	)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(h.withSession)

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.methodNotAllowed)

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, pathAppointments, http.StatusFound)
	})
	router.Get("/version/", h.getServerVersion)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/signup/", h.signupPage)
		r.With(h.withRateLimit).Post("/signup/", h.signup)
		r.Get("/login/", h.loginPage)
		r.With(h.withRateLimit).Post("/login/", h.login)
		r.Get("/logout/", h.logout)
	})

	router.Route("/appointments", func(r chi.Router) {
		r.Use(h.requireLogin)

		r.Get("/", h.appointmentList)
		r.Get("/create/", h.appointmentCreatePage)
		r.Post("/create/", h.appointmentCreate)
		r.Get("/{id:[0-9]+}/", h.appointmentDetail)
		r.Get("/{id:[0-9]+}/edit/", h.appointmentEditPage)
		r.Post("/{id:[0-9]+}/edit/", h.appointmentEdit)
		r.Delete("/{id:[0-9]+}/delete/", h.appointmentDelete)
	})

	return router
}
