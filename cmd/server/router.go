package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/taskwell/taskwell-api/internal/api"
	apiMiddleware "github.com/taskwell/taskwell-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
//
// The task reads keyed by email are public: anyone can list what a user
// has authored or works on. Everything that mutates goes through the auth
// middleware, which answers 403 for any token problem.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.authService)
	taskHandler := api.NewTaskHandler(app.taskService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService)

	// Authentication endpoints (public)
	r.Post("/auth/signup", authHandler.SignUp)
	r.Post("/auth/signin", authHandler.SignIn)

	r.Route("/task", func(r chi.Router) {
		// Public reads keyed by author or worker email
		r.Get("/worker/{email}", taskHandler.ListByWorker)
		r.Get("/worker/{email}/status", taskHandler.ListByWorkerStatus)
		r.Get("/worker/{email}/priority", taskHandler.ListByWorkerPriority)
		r.Get("/{email}", taskHandler.ListByAuthor)
		r.Get("/{email}/status", taskHandler.ListByAuthorStatus)
		r.Get("/{email}/priority", taskHandler.ListByAuthorPriority)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/", taskHandler.ListOwn)
			r.Post("/", taskHandler.Create)
			r.Put("/", taskHandler.Edit)
			r.Delete("/", taskHandler.Delete)
			r.Put("/status", taskHandler.ChangeStatus)
			r.Put("/worker", taskHandler.AddWorker)
			r.Delete("/worker", taskHandler.RemoveWorker)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
