package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/anhdng/songngu/internal/httpserver/deps"
	"github.com/anhdng/songngu/internal/store"
)

type readyzResponse struct {
	Ready bool `json:"ready"`
}

// Readyz probes the storage backend. A missing probe key is fine, the
// backend answered; only transport-level failures flip readiness.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		ready := true
		if _, err := d.KV.Get(r.Context(), "songngu:readyz"); err != nil && !errors.Is(err, store.ErrNotFound) {
			ready = false
		}
		if !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
		} else {
			w.WriteHeader(http.StatusOK)
		}
		_ = json.NewEncoder(w).Encode(readyzResponse{Ready: ready})
	}
}
