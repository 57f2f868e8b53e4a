package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/anhdng/songngu/internal/httpserver/deps"
	"github.com/anhdng/songngu/internal/httpserver/handlers"
)

func init() { Register(registerImages) }

func registerImages(r chi.Router, d deps.Deps) {
	r.Route("/api/admin/images", func(r chi.Router) {
		r.Get("/", handlers.ListImages(d))
		r.Post("/", handlers.UploadImage(d))
		r.Get("/usage", handlers.ImageUsage(d))
		r.Get("/export", handlers.ExportImages(d))
		r.Post("/import", handlers.ImportImages(d))
		r.Delete("/{id}", handlers.DeleteImage(d))
		r.Delete("/category/{category}", handlers.DeleteImageCategory(d))
	})
}
