package httpserver

import (
	"net/http"
	"strings"
	"time"

	"baby-tracker-go/internal/config"
	"baby-tracker-go/internal/ratelimit"
	"baby-tracker-go/internal/transport/httpserver/handler"
	authmw "baby-tracker-go/internal/transport/httpserver/middleware"
	"baby-tracker-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth authmw.Authenticator, limiter ratelimit.Limiter, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(authmw.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSOrigins))

	authLimit := authmw.RateLimit(limiter, "auth", cfg.RateLimit.AuthLimit, cfg.RateLimit.Window, log)
	inviteLimit := authmw.RateLimit(limiter, "invites", cfg.RateLimit.InviteLimit, cfg.RateLimit.Window, log)
	bearer := authmw.NewBearerAuth(auth, log)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.With(authLimit).Post("/auth/signup", handlers.Signup)
		r.With(authLimit).Post("/auth/login", handlers.Login)
		r.With(inviteLimit).Get("/invites/{token}", handlers.GetInvite)

		r.Group(func(r chi.Router) {
			r.Use(bearer.Middleware)

			r.Get("/auth/me", handlers.Me)

			r.Get("/babies", handlers.ListBabies)
			r.Post("/babies", handlers.CreateBaby)
			r.Get("/babies/{id}", handlers.GetBaby)
			r.Put("/babies/{id}", handlers.UpdateBaby)
			r.Delete("/babies/{id}", handlers.DeleteBaby)
			r.Delete("/babies/{id}/leave", handlers.LeaveBaby)

			r.Get("/babies/{id}/weights", handlers.ListEntries)
			r.Post("/babies/{id}/weights", handlers.CreateEntry)
			r.Put("/babies/{id}/weights/{entry_id}", handlers.UpdateEntry)
			r.Delete("/babies/{id}/weights/{entry_id}", handlers.DeleteEntry)

			r.Post("/babies/{id}/invites", handlers.CreateInvite)
			r.Post("/invites/{token}/accept", handlers.AcceptInvite)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeNotFound(w)
		})
	})

	if cfg.StaticDir != "" {
		spa := NewSPA(cfg.StaticDir)
		r.NotFound(func(w http.ResponseWriter, req *http.Request) {
			if strings.HasPrefix(req.URL.Path, "/api/") {
				writeNotFound(w)
				return
			}
			spa.ServeHTTP(w, req)
		})
	}

	return r
}

func writeNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"error":{"code":"not_found","message":"Route not found"}}` + "\n"))
}
