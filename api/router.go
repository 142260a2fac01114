// Package api assembles the HTTP router: public read endpoints, authenticated
// mutation endpoints with role gates, and the metrics exposure.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/festrack/festrack/api/handlers"
	"github.com/festrack/festrack/api/middleware"
	"github.com/festrack/festrack/app/shared/sharedtypes"
	"github.com/festrack/festrack/config"
	"github.com/festrack/festrack/pkg/jwt"
)

// NewRouter builds the chi router over the API handlers.
func NewRouter(cfg *config.Config, h *handlers.Handlers, tokens jwt.Service, registry *prometheus.Registry) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RateLimit(rate.NewLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst)))

	if cfg.Metrics.Enabled {
		r.Method("GET", cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	authenticated := middleware.Authenticate(tokens)
	adminOnly := middleware.RequireRole(sharedtypes.RoleAdmin)
	managerOrAdmin := middleware.RequireRole(sharedtypes.RoleAdmin, sharedtypes.RoleTeamManager)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)

		// Read endpoints are public so scoreboards can be shown on the venue
		// displays without credentials.
		r.Get("/events", h.ListEvents)
		r.Get("/events/{eventID}", h.GetEvent)
		r.Get("/events/{eventID}/announcements", h.ListAnnouncements)
		r.Get("/events/{eventID}/programs", h.ListPrograms)
		r.Get("/events/{eventID}/points", h.ListEventPoints)
		r.Get("/events/{eventID}/top-performers", h.TopPerformers)
		r.Get("/programs/{programID}", h.GetProgram)
		r.Get("/programs/{programID}/assignments", h.ListAssignments)
		r.Get("/programs/{programID}/calling-sheet", h.CallingSheet)
		r.Get("/programs/{programID}/results", h.ListResults)
		r.Get("/teams", h.ListTeams)
		r.Get("/teams/{teamID}", h.GetTeam)
		r.Get("/teams/{teamID}/members", h.ListTeamMembers)
		r.Get("/teams/{teamID}/points", h.ListTeamPoints)
		r.Get("/students", h.ListStudents)
		r.Get("/students/{studentID}", h.GetStudent)
		r.Get("/leaderboard", h.GlobalLeaderboard)
		r.Get("/leaderboard/chart", h.LeaderboardChart)

		// Event, program, team lifecycle and scoring are admin operations.
		r.Group(func(r chi.Router) {
			r.Use(authenticated, adminOnly)

			r.Post("/events", h.CreateEvent)
			r.Post("/events/{eventID}/status", h.TransitionEvent)
			r.Delete("/events/{eventID}", h.DeleteEvent)
			r.Post("/events/{eventID}/announcements", h.CreateAnnouncement)
			r.Post("/events/{eventID}/programs", h.CreateProgram)
			r.Delete("/programs/{programID}", h.DeleteProgram)
			r.Post("/programs/{programID}/finish", h.FinishProgram)
			r.Post("/programs/{programID}/results", h.EnterMarks)

			r.Post("/teams", h.CreateTeam)
			r.Delete("/teams/{teamID}", h.DeleteTeam)
			r.Put("/students/{studentID}/team", h.MoveStudent)
			r.Post("/students/import", h.ImportStudents)

			r.Post("/points/manual", h.ManualAward)
		})

		// Team managers register and enter their own students.
		r.Group(func(r chi.Router) {
			r.Use(authenticated, managerOrAdmin)

			r.Post("/students", h.CreateStudent)
			r.Post("/programs/{programID}/assignments", h.Assign)
			r.Post("/programs/{programID}/assignments/bulk", h.BulkAssign)
		})
	})

	return r
}
