package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/anhdng/songngu/internal/httpserver/deps"
	"github.com/anhdng/songngu/internal/httpserver/handlers"
)

func init() { Register(registerPortfolio) }

// Public read-only endpoints consumed by the portfolio frontend.
func registerPortfolio(r chi.Router, d deps.Deps) {
	r.Get("/api/portfolio", handlers.Portfolio(d))
	r.Get("/api/translations", handlers.Translations(d))
}
