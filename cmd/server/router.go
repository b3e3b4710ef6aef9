package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/blog-api/internal/api"
	apiMiddleware "github.com/phrazzld/blog-api/internal/api/middleware"
)

// Mount points of the two resource routers.
const (
	userRoutePrefix = "/api/v1/user"
	blogRoutePrefix = "/api/v1/blog"
)

// setupRouter builds the top-level router with the standard middleware chain
// and mounts the user and blog routers.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()
	r.NotFound(api.NotFound)
	r.MethodNotAllowed(api.NotFound)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))

	userHandler := api.NewUserHandler(app.userService, app.jwtService, app.logger)
	postHandler := api.NewPostHandler(app.postService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Mount(userRoutePrefix, userHandler.Routes())
	r.Mount(blogRoutePrefix, postHandler.Routes(authMiddleware.Authenticate))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
