package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/anhdng/songngu/internal/domain"
	"github.com/anhdng/songngu/internal/httpserver/deps"
	"github.com/anhdng/songngu/internal/images"
)

// ListImages serves stored images newest first, optionally filtered with
// ?category=.
func ListImages(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			list []domain.StoredImage
			err  error
		)
		if category := r.URL.Query().Get("category"); category != "" {
			list, err = d.Images.ByCategory(r.Context(), category)
		} else {
			list, err = d.Images.List(r.Context())
		}
		if err != nil {
			respondServerError(w, d.Logger, err)
			return
		}
		if list == nil {
			list = []domain.StoredImage{}
		}
		respondOK(w, list)
	}
}

type uploadResponse struct {
	Image   domain.StoredImage `json:"image"`
	Evicted []string           `json:"evicted,omitempty"`
}

// UploadImage stores an image, evicting the oldest ones when the aggregate
// budget would overflow. Evicted ids are reported so the UI can drop them.
func UploadImage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		var img domain.StoredImage
		if err := json.Unmarshal(body, &img); err != nil {
			respondBadRequest(w, "invalid JSON payload")
			return
		}
		if img.Data == "" || img.Filename == "" {
			respondBadRequest(w, "filename and data are required")
			return
		}
		stored, evicted, err := d.Images.Upload(r.Context(), img)
		if err != nil {
			if errors.Is(err, images.ErrTooLarge) {
				respond(w, http.StatusRequestEntityTooLarge, envelope{
					Success: false,
					Message: "image exceeds the storage budget",
				})
				return
			}
			respondServerError(w, d.Logger, err)
			return
		}
		respondMessage(w, http.StatusCreated, "uploaded", uploadResponse{Image: stored, Evicted: evicted})
	}
}

func DeleteImage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if err := d.Images.Delete(r.Context(), id); err != nil {
			if errors.Is(err, images.ErrNotFound) {
				respondNotFound(w, "image not found")
				return
			}
			respondServerError(w, d.Logger, err)
			return
		}
		respondMessage(w, http.StatusOK, "deleted", nil)
	}
}

func DeleteImageCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := chi.URLParam(r, "category")
		n, err := d.Images.DeleteCategory(r.Context(), category)
		if err != nil {
			respondServerError(w, d.Logger, err)
			return
		}
		respondMessage(w, http.StatusOK, fmt.Sprintf("deleted %d images", n), nil)
	}
}

type usageResponse struct {
	UsedBytes   int `json:"usedBytes"`
	BudgetBytes int `json:"budgetBytes"`
}

// ImageUsage reports aggregate storage consumed by the image library.
func ImageUsage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		used, err := d.Images.Used(r.Context())
		if err != nil {
			respondServerError(w, d.Logger, err)
			return
		}
		respondOK(w, usageResponse{UsedBytes: used, BudgetBytes: d.Images.Budget()})
	}
}

// ExportImages streams the image library as a JSON download.
func ExportImages(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := d.Images.Export(r.Context())
		if err != nil {
			respondServerError(w, d.Logger, err)
			return
		}
		filename := fmt.Sprintf("songngu-images-%s.json", d.TimeNow().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(raw)
	}
}

// ImportImages loads a previously exported image library.
func ImportImages(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		n, err := d.Images.Import(r.Context(), body)
		if err != nil {
			respondBadRequest(w, "invalid image export payload")
			return
		}
		respondMessage(w, http.StatusOK, fmt.Sprintf("imported %d images", n), nil)
	}
}
