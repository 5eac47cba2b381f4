package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/bookshelf-api/internal/api"
	"github.com/phrazzld/bookshelf-api/internal/api/middleware"
	"github.com/phrazzld/bookshelf-api/internal/api/shared"
	"github.com/phrazzld/bookshelf-api/internal/metrics"
	"github.com/phrazzld/bookshelf-api/internal/service"
	"github.com/phrazzld/bookshelf-api/internal/service/auth"
	"github.com/prometheus/client_golang/prometheus"
)

// routerDeps is everything the router needs, kept apart from the database
// so the full route table can be exercised with test doubles.
type routerDeps struct {
	logger        *slog.Logger
	errors        *shared.ErrorResponder
	recorder      metrics.Recorder
	gatherer      prometheus.Gatherer
	jwtService    auth.JWTService
	bookService   service.BookService
	authorService service.AuthorService
	userService   service.UserService
	rateLimiter   *middleware.RateLimiter
}

func (app *application) setupRouter() http.Handler {
	return newRouter(routerDeps{
		logger:        app.logger,
		errors:        app.errors,
		recorder:      app.metrics,
		gatherer:      app.registry,
		jwtService:    app.jwtService,
		bookService:   app.bookService,
		authorService: app.authorService,
		userService:   app.userService,
		rateLimiter:   app.rateLimiter,
	})
}

// newRouter builds the route table. Everything under /api except register
// and login sits behind the authentication gate; register and login are
// rate limited per client.
func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewTraceMiddleware(d.logger))
	r.Use(middleware.NewMetricsMiddleware(d.recorder))
	r.Use(chimiddleware.Recoverer)

	authMiddleware := middleware.NewAuthMiddleware(d.jwtService, d.errors, d.recorder, d.logger)
	bookHandler := api.NewBookHandler(d.bookService, d.errors, d.logger)
	authorHandler := api.NewAuthorHandler(d.authorService, d.bookService, d.errors, d.logger)
	userHandler := api.NewUserHandler(d.userService, d.jwtService, d.errors, d.logger)

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(d.rateLimiter.Middleware)
			r.Post("/users/register", userHandler.Register)
			r.Post("/users/login", userHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/books", bookHandler.Find)
			r.Get("/books/{id}", bookHandler.Get)
			r.Post("/books", bookHandler.Create)
			r.Put("/books/{id}", bookHandler.Update)
			r.Delete("/books", bookHandler.Delete)

			r.Get("/authors", authorHandler.Find)
			r.Get("/authors/{id}", authorHandler.Get)
			r.Post("/authors", authorHandler.Create)
			r.Put("/authors/{id}", authorHandler.Update)
			r.Delete("/authors", authorHandler.Delete)

			r.Put("/users/{id}", userHandler.ChangePassword)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			d.logger.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})
	r.Method(http.MethodGet, "/metrics", metrics.Handler(d.gatherer))

	return r
}
