package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/quizmith/quizmith/internal/auth"
	authmw "github.com/quizmith/quizmith/internal/auth/middleware"
	"github.com/quizmith/quizmith/internal/eventlog"
	"github.com/quizmith/quizmith/internal/quiz"
)

// NewRouter mounts the public auth surface and the token-guarded question
// surface.
func NewRouter(svc *auth.Service, tokens *authmw.TokenService, store quiz.Store, events *eventlog.Repo, corsOrigins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api/auth", func(ar chi.Router) {
		ar.Post("/register", RegisterHandler(svc))
		ar.Post("/login", LoginHandler(svc))
		ar.With(authmw.RequireUser(tokens)).Get("/check", CheckHandler())
	})

	r.Group(func(pr chi.Router) {
		pr.Use(authmw.RequireUser(tokens))
		pr.Route("/api/questions", func(qr chi.Router) {
			qr.Post("/", CreateQuestionHandler(store, events))
			qr.Get("/", ListQuestionsHandler(store))
			qr.Get("/{questionID}", GetQuestionHandler(store))
			qr.Put("/{questionID}", UpdateQuestionHandler(store, events))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	return r
}
