package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter wires the API routes: public auth endpoints, bearer-protected
// auth/profile endpoints, and the health check.
func NewRouter(auth *AuthHandler, profile *ProfileHandler, corsOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", auth.SignUp)
			r.Post("/signin", auth.SignIn)

			r.Group(func(r chi.Router) {
				r.Use(auth.requireAuth)
				r.Get("/me", auth.Me)
				r.Post("/logout", auth.Logout)
			})
		})

		r.Route("/profile", func(r chi.Router) {
			r.Use(auth.requireAuth)
			r.Post("/upload-profile-picture", profile.Upload)
			r.Put("/profile-picture", profile.Upload)
			r.Get("/profile-picture", profile.Get)
			r.Delete("/profile-picture", profile.Delete)
		})
	})

	return r
}
