package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every endpoint. Blog reads, auth, health, and the
// sitemap are public; blog writes and the caller's own listing sit behind
// the auth middleware.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware, startupTime time.Time) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/auth/signup", handlers.authHandler.signup())
		r.Post("/auth/login", handlers.authHandler.login())

		r.Get("/blogs", handlers.blogHandler.getAllBlogs())
		r.Get("/blogs/{blogID}", handlers.blogHandler.getBlog())

		r.Get("/sitemap.xml", handlers.sitemapHandler.getSitemap())
		r.Get("/health", healthHandler(startupTime))
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// chi matches the literal segment before the {blogID} wildcard,
		// so my-blogs never parses as a blog id.
		r.Get("/blogs/user/my-blogs", handlers.blogHandler.getMyBlogs())
		r.Post("/blogs", handlers.blogHandler.createBlog())
		r.Put("/blogs/{blogID}", handlers.blogHandler.updateBlog())
		r.Delete("/blogs/{blogID}", handlers.blogHandler.deleteBlog())

		r.Post("/blogs/uploads", handlers.uploadHandler.uploadImage())
	})

	// Unmatched paths get a JSON 404 rather than the default text body.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Route not found"}`))
	})
}

// healthHandler reports liveness and how long the server has been up.
func healthHandler(startupTime time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"message":"Server is running","uptime":"` + time.Since(startupTime).Round(time.Second).String() + `"}`))
	}
}
