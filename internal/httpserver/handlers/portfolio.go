package handlers

import (
	"net/http"

	"github.com/anhdng/songngu/internal/domain"
	"github.com/anhdng/songngu/internal/httpserver/deps"
	"github.com/anhdng/songngu/internal/sanitize"
	"github.com/anhdng/songngu/internal/transform"
)

type portfolioResponse struct {
	Language  domain.Language               `json:"language"`
	Hero      *transform.LocalizedHero      `json:"hero,omitempty"`
	About     *transform.LocalizedAbout     `json:"about,omitempty"`
	Services  []transform.LocalizedService  `json:"services"`
	Projects  []transform.LocalizedProject  `json:"projects"`
	BlogPosts []transform.LocalizedBlogPost `json:"blogPosts"`
	Contact   *domain.ContactInfo           `json:"contact,omitempty"`
}

// requestLanguage picks the locale for a public request: explicit ?lang=
// first, then the configured default. Unsupported codes fall back to the
// default too, so the reported language always names a real locale.
func requestLanguage(d deps.Deps, r *http.Request) domain.Language {
	if raw := r.URL.Query().Get("lang"); raw != "" {
		if lang := sanitize.LanguageCode(raw); lang != "" {
			return lang
		}
	}
	return d.DefaultLanguage
}

// Portfolio serves the whole public site in one localized payload. Draft
// blog posts never leave the admin surface.
func Portfolio(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := requestLanguage(d, r)
		snap, err := d.Content.Snapshot(r.Context())
		if err != nil {
			respondServerError(w, d.Logger, err)
			return
		}

		resp := portfolioResponse{
			Language:  lang,
			Services:  transform.Services(snap.Services, lang),
			Projects:  transform.Projects(snap.Projects, lang),
			BlogPosts: transform.BlogPosts(snap.BlogPosts, lang),
			Contact:   snap.Contact,
		}
		if snap.Hero != nil {
			hero := transform.Hero(*snap.Hero, lang)
			resp.Hero = &hero
		}
		if snap.About != nil {
			about := transform.About(*snap.About, lang)
			resp.About = &about
		}
		respondOK(w, resp)
	}
}

// Translations serves the positional translation table for both languages,
// letting the frontend switch locale without a refetch.
func Translations(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := d.Content.Snapshot(r.Context())
		if err != nil {
			respondServerError(w, d.Logger, err)
			return
		}
		respondOK(w, transform.Translations(snap))
	}
}
