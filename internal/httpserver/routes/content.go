package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/anhdng/songngu/internal/httpserver/deps"
	"github.com/anhdng/songngu/internal/httpserver/handlers"
)

func init() { Register(registerContent) }

// Admin content endpoints. Singleton sections are GET/PUT, collections are
// replaced wholesale on PUT, settings also take partial PATCH updates.
func registerContent(r chi.Router, d deps.Deps) {
	r.Route("/api/admin/content", func(r chi.Router) {
		r.Get("/hero", handlers.GetHero(d))
		r.Put("/hero", handlers.PutHero(d))
		r.Post("/hero/check-field", handlers.CheckHeroField(d))
		r.Get("/about", handlers.GetAbout(d))
		r.Put("/about", handlers.PutAbout(d))
		r.Get("/contact", handlers.GetContact(d))
		r.Put("/contact", handlers.PutContact(d))
		r.Get("/settings", handlers.GetSettings(d))
		r.Put("/settings", handlers.PutSettings(d))
		r.Patch("/settings", handlers.PatchSettings(d))

		r.Get("/services", handlers.GetServices(d))
		r.Put("/services", handlers.PutServices(d))
		r.Get("/projects", handlers.GetProjects(d))
		r.Put("/projects", handlers.PutProjects(d))
		r.Get("/blog", handlers.GetBlogPosts(d))
		r.Put("/blog", handlers.PutBlogPosts(d))
		r.Post("/blog/{id}/publish", handlers.PublishBlogPost(d))
	})
}
