package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anhdng/songngu/internal/domain"
	"github.com/anhdng/songngu/internal/httpserver/deps"
	"github.com/anhdng/songngu/internal/sanitize"
	"github.com/anhdng/songngu/internal/validate"
)

// getSection serves one content section. A nil singleton answers 404 so the
// admin UI can tell "never saved" apart from an empty value.
func getSection[T any](d deps.Deps, fetch func(context.Context) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := fetch(r.Context())
		if err != nil {
			respondServerError(w, d.Logger, err)
			return
		}
		if v == nil {
			respondNotFound(w, "content not found")
			return
		}
		respondOK(w, v)
	}
}

func getList[T any](d deps.Deps, fetch func(context.Context) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := fetch(r.Context())
		if err != nil {
			respondServerError(w, d.Logger, err)
			return
		}
		if list == nil {
			list = []T{}
		}
		respondOK(w, list)
	}
}

// putSection validates and sanitizes the payload for the given kind, then
// saves the cleaned value. Malformed JSON answers 400, rule violations 422
// with the full per-field error map.
func putSection(d deps.Deps, kind validate.Kind, save func(context.Context, any) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		sanitized, res, err := validate.JSON(kind, body)
		if err != nil {
			respondBadRequest(w, "invalid JSON payload")
			return
		}
		if !res.Valid {
			respondInvalid(w, res.Errors)
			return
		}
		if err := save(r.Context(), sanitized); err != nil {
			respondServerError(w, d.Logger, err)
			return
		}
		respondMessage(w, http.StatusOK, "saved", sanitized)
	}
}

func GetHero(d deps.Deps) http.HandlerFunc  { return getSection(d, d.Content.Hero) }
func GetAbout(d deps.Deps) http.HandlerFunc { return getSection(d, d.Content.About) }
func GetContact(d deps.Deps) http.HandlerFunc {
	return getSection(d, d.Content.Contact)
}
func GetSettings(d deps.Deps) http.HandlerFunc {
	return getSection(d, d.Content.Settings)
}
func GetServices(d deps.Deps) http.HandlerFunc { return getList(d, d.Content.Services) }
func GetProjects(d deps.Deps) http.HandlerFunc { return getList(d, d.Content.Projects) }
func GetBlogPosts(d deps.Deps) http.HandlerFunc {
	return getList(d, d.Content.BlogPosts)
}

func PutHero(d deps.Deps) http.HandlerFunc {
	return putSection(d, validate.KindHero, func(ctx context.Context, v any) error {
		return d.Content.SaveHero(ctx, v.(domain.HeroContent))
	})
}

func PutAbout(d deps.Deps) http.HandlerFunc {
	return putSection(d, validate.KindAbout, func(ctx context.Context, v any) error {
		return d.Content.SaveAbout(ctx, v.(domain.AboutContent))
	})
}

func PutContact(d deps.Deps) http.HandlerFunc {
	return putSection(d, validate.KindContact, func(ctx context.Context, v any) error {
		return d.Content.SaveContact(ctx, v.(domain.ContactInfo))
	})
}

func PutSettings(d deps.Deps) http.HandlerFunc {
	return putSection(d, validate.KindSettings, func(ctx context.Context, v any) error {
		return d.Content.SaveSettings(ctx, v.(domain.SystemSettings))
	})
}

func PutServices(d deps.Deps) http.HandlerFunc {
	return putSection(d, validate.KindServices, func(ctx context.Context, v any) error {
		return d.Content.SaveServices(ctx, v.([]domain.Service))
	})
}

func PutProjects(d deps.Deps) http.HandlerFunc {
	return putSection(d, validate.KindProjects, func(ctx context.Context, v any) error {
		return d.Content.SaveProjects(ctx, v.([]domain.Project))
	})
}

func PutBlogPosts(d deps.Deps) http.HandlerFunc {
	return putSection(d, validate.KindBlogPosts, func(ctx context.Context, v any) error {
		return d.Content.SaveBlogPosts(ctx, v.([]domain.BlogPost))
	})
}

// PatchSettings applies a partial settings update. Unknown fields and
// malformed values are dropped rather than rejected, then the merged result
// still has to pass full validation before it is saved.
func PatchSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		var raw map[string]any
		if err := json.Unmarshal(body, &raw); err != nil {
			respondBadRequest(w, "invalid JSON payload")
			return
		}
		current, err := d.Content.Settings(r.Context())
		if err != nil {
			respondServerError(w, d.Logger, err)
			return
		}
		if current == nil {
			respondNotFound(w, "no settings to patch")
			return
		}
		patched := sanitize.Settings(raw).ApplyTo(*current)
		clean, res := validate.Settings(patched)
		if !res.Valid {
			respondInvalid(w, res.Errors)
			return
		}
		if err := d.Content.SaveSettings(r.Context(), clean); err != nil {
			respondServerError(w, d.Logger, err)
			return
		}
		respondMessage(w, http.StatusOK, "saved", clean)
	}
}

type fieldCheckRequest struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

type fieldCheckResponse struct {
	Key     string `json:"key"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// CheckHeroField validates a single dotted hero field path, for live-typing
// feedback while the admin edits. Same rules as the full PUT validation.
func CheckHeroField(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		var req fieldCheckRequest
		if err := json.Unmarshal(body, &req); err != nil || req.Path == "" {
			respondBadRequest(w, "body must be {\"path\": \"...\", \"value\": \"...\"}")
			return
		}
		key, msg := validate.PartialHero(req.Path, req.Value)
		respondOK(w, fieldCheckResponse{Key: key, Valid: msg == "", Message: msg})
	}
}

// PublishBlogPost flips a draft to published. The publish date is stamped on
// first publish and kept on republish.
func PublishBlogPost(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		posts, err := d.Content.BlogPosts(r.Context())
		if err != nil {
			respondServerError(w, d.Logger, err)
			return
		}
		for i := range posts {
			if posts[i].ID != id {
				continue
			}
			posts[i].Status = domain.BlogPublished
			if posts[i].PublishDate.IsZero() {
				posts[i].PublishDate = d.TimeNow()
			}
			if err := d.Content.SaveBlogPosts(r.Context(), posts); err != nil {
				respondServerError(w, d.Logger, err)
				return
			}
			respondMessage(w, http.StatusOK, "published", posts[i])
			return
		}
		respondNotFound(w, "blog post not found")
	}
}
