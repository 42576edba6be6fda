package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// NewRouter собирает chi-роутер API. requestsPerMinute <= 0 отключает лимит.
func NewRouter(ctrl *Controller, requestsPerMinute int) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	if requestsPerMinute > 0 {
		router.Use(httprate.LimitByIP(requestsPerMinute, time.Minute))
	}

	router.Get("/healthz", ctrl.Health)

	router.Route("/teachers", func(r chi.Router) {
		r.Get("/", ctrl.ListTeachers)
		r.Get("/{name}", ctrl.GetTeacher)
		r.Get("/{name}/slots", ctrl.ListSlots)
	})

	router.Route("/reservations", func(r chi.Router) {
		r.Get("/", ctrl.ListReservations)
		r.Post("/", ctrl.CreateReservation)
		r.Get("/next", ctrl.NextReservation)
		r.Delete("/{id}", ctrl.CancelReservation)
		r.Post("/{id}/reschedule", ctrl.RescheduleReservation)
	})

	router.Post("/reminders/probe", ctrl.ProbeReminder)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorDTO{Code: "not_found", Message: "route not found"})
	})

	return router
}
