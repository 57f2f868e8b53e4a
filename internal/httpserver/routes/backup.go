package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/anhdng/songngu/internal/httpserver/deps"
	"github.com/anhdng/songngu/internal/httpserver/handlers"
)

func init() { Register(registerBackup) }

func registerBackup(r chi.Router, d deps.Deps) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/export", handlers.ExportContent(d))
		r.Post("/import", handlers.ImportContent(d))
		r.Post("/import/validate", handlers.ValidateImportArtifact(d))

		r.Get("/backups", handlers.ListBackups(d))
		r.Post("/backups", handlers.CreateBackup(d))
		r.Post("/backups/restore", handlers.RestoreBackup(d))
	})
}
