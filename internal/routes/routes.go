package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/haseab/retrace-frontend-sub001/internal/auth"
	"github.com/haseab/retrace-frontend-sub001/internal/handlers"
	"github.com/haseab/retrace-frontend-sub001/internal/middleware"
)

// RegisterRoutes registers all application routes. The login endpoint gets a
// coarse per-IP throttle on top of the tracker's lockout; every /api route
// and the token probe reject unauthorized callers before any other work.
func RegisterRoutes(
	router chi.Router,
	authHandler *handlers.AuthHandler,
	noteHandler *handlers.NoteHandler,
	feedbackHandler *handlers.FeedbackHandler,
	siteHandler *handlers.SiteHandler,
	bearer *auth.BearerAuthorizer,
) {
	// Public auth surface
	router.With(middleware.RateLimitByIP(middleware.DefaultLoginRateLimit())).
		Post("/auth/login", authHandler.Login)
	router.Get("/auth/check", authHandler.Check)
	router.Post("/auth/logout", authHandler.Logout)

	// Public site surface
	router.With(middleware.RateLimitByIP(middleware.DefaultPublicRateLimit())).
		Post("/downloads", siteHandler.RecordDownload)
	router.Get("/faq", siteHandler.FAQ)

	// Bearer-protected machine-to-machine surface
	router.Group(func(r chi.Router) {
		r.Use(bearer.RequireBearer)

		r.Get("/auth/token-check", authHandler.TokenCheck)

		r.Route("/api", func(r chi.Router) {
			r.Get("/notes", noteHandler.List)
			r.Post("/notes", noteHandler.Create)
			r.Put("/notes/{id}", noteHandler.Update)
			r.Delete("/notes/{id}", noteHandler.Delete)

			r.Post("/feedback", feedbackHandler.Submit)
			r.Get("/feedback", feedbackHandler.List)
			r.Get("/screenshots", feedbackHandler.ListScreenshots)

			r.Get("/analytics/downloads", siteHandler.DownloadTotals)
		})
	})
}
