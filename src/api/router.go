package api

import (
	"net/http"

	"finpal-server/src/handlers"
	"finpal-server/src/metrics"
	"finpal-server/src/middleware"
	"finpal-server/src/service"
	"finpal-server/src/util"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	StagePrefix string
	ReadOnly    bool
	// RateLimiter throttles the routes that call the text generator. Nil
	// disables limiting.
	RateLimiter *middleware.RateLimiter
}

func NewRouter(svc *service.Service, verifier middleware.TokenVerifier, opts Options) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Instrument)
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.StripStagePrefix(opts.StagePrefix))
	r.Use(chimw.StripSlashes)
	r.Use(middleware.ReadOnlyMiddleware(opts.ReadOnly))

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	// Public routes
	r.Get("/health", handlers.Health())
	r.Get("/health/ready", handlers.Ready(svc))
	r.Method(http.MethodGet, "/metrics", metrics.Handler())
	r.Get("/quiz/questions", handlers.GetQuizQuestions(svc))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuthMiddleware(verifier))

		limited := r.With(opts.RateLimiter.Handler)

		// Quiz
		limited.Post("/quiz/submit", handlers.SubmitQuiz(svc))
		r.Get("/quiz/analysis/{userId}", handlers.GetQuizAnalysis(svc))

		// Spending
		r.Post("/spending/entry", handlers.AddSpendingEntry(svc))
		r.Get("/spending/entries", handlers.GetSpendingEntries(svc))
		r.Get("/spending/entries/{userId}", handlers.GetSpendingEntries(svc))
		r.Put("/spending/entry/{id}", handlers.UpdateSpendingEntry(svc))
		r.Delete("/spending/entry/{id}", handlers.DeleteSpendingEntry(svc))

		// Savings
		limited.Post("/savings/goal", handlers.SetSavingsGoal(svc))
		r.Get("/savings/goal/{userId}", handlers.GetSavingsGoal(svc))

		// Analysis
		limited.Get("/analysis/daily/{userId}", handlers.GetDailyAnalysis(svc))

		// Chat
		limited.Post("/chat/message", handlers.PostChatMessage(svc))
		r.Get("/chat/history/{userId}", handlers.GetChatHistory(svc))
	})

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	util.WriteMessage(w, http.StatusNotFound, "Not found")
}
