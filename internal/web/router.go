package web

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/lojf/festival/internal/config"
	"github.com/lojf/festival/internal/handlers"
	"github.com/lojf/festival/internal/middleware"
)

func Router(h *handlers.Handlers, cfg *config.Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID(logger))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", h.Health)

	// Team self-service
	r.Route("/team", func(tr chi.Router) {
		tr.Post("/offstage", h.SubmitOffStage)
		tr.Post("/onstage", h.SubmitOnStage)
		tr.Get("/registrations", h.TeamRegistrations)
	})

	// Coordinator review
	r.Route("/coordinator", func(cr chi.Router) {
		cr.Get("/registrations", h.CoordinatorRegistrations)
		cr.Post("/registrations/{id}/review", h.DecideReview)
	})

	// --- Admin routes (with login + guard) ---
	r.Route("/admin", func(ar chi.Router) {
		ar.Post("/login", h.Auth.Login)
		ar.Post("/logout", h.Auth.Logout)

		ar.Group(func(ag chi.Router) {
			ag.Use(h.Auth.RequireAdmin)

			// Catalog
			ag.Get("/events", h.ListEvents)
			ag.Post("/events", h.CreateEvent)
			ag.Post("/events/{id}/registration", h.SetRegistrationOpen)
			ag.Post("/teams", h.CreateTeam)

			// Registrations & duplicates
			ag.Get("/registrations", h.AdminRegistrations)
			ag.Get("/teams/{teamID}/duplicates", h.TeamDuplicates)
			ag.Get("/registrations/onstage/{id}/deletable", h.OnStageDeletable)
			ag.Post("/registrations/onstage/{id}/delete", h.OnStageDelete)

			// Attendance
			ag.Post("/attendance", h.MarkAttendance)
			ag.Post("/attendance/team", h.MarkTeamAttendance)
			ag.Get("/attendance", h.QueryAttendance)
			ag.Get("/attendance/{dNo}", h.ContestantAttendance)
			ag.Get("/pass/{dNo}.png", h.ContestantPass)

			// Export
			ag.Get("/export/attendance.csv", h.ExportAttendanceCSV)
			ag.Post("/export/attendance/sheets", h.ExportAttendanceSheets)
		})
	})

	if len(cfg.CORSOrigins) == 0 {
		return r
	}
	return cors.New(corsOptions(cfg.CORSOrigins)).Handler(r)
}

// corsOptions only sends credentials to origins that are listed by name.
func corsOptions(origins []string) cors.Options {
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: !slices.Contains(origins, "*"),
	}
}
