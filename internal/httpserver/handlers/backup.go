package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/anhdng/songngu/internal/backup"
	"github.com/anhdng/songngu/internal/httpserver/deps"
	"github.com/anhdng/songngu/internal/store"
)

// ExportContent streams the full export artifact as a download.
func ExportContent(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := d.Backups.Export(r.Context())
		if err != nil {
			respondServerError(w, d.Logger, err)
			return
		}
		filename := fmt.Sprintf("songngu-export-%s.json", d.TimeNow().Format("2006-01-02"))
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(raw)
	}
}

// ValidateImportArtifact dry-runs import validation without writing anything.
func ValidateImportArtifact(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		res := d.Backups.ValidateImport(body)
		if !res.Valid() {
			respond(w, http.StatusUnprocessableEntity, envelope{
				Success: false,
				Message: "import artifact is invalid",
				Data:    res,
			})
			return
		}
		respondMessage(w, http.StatusOK, "import artifact is valid", res)
	}
}

// ImportContent validates and applies an uploaded export artifact.
// ?mode=merge appends collections instead of replacing everything.
func ImportContent(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := backup.ModeOverwrite
		switch r.URL.Query().Get("mode") {
		case "", string(backup.ModeOverwrite):
		case string(backup.ModeMerge):
			mode = backup.ModeMerge
		default:
			respondBadRequest(w, "mode must be overwrite or merge")
			return
		}
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		res := d.Backups.ValidateImport(body)
		if !res.Valid() {
			respond(w, http.StatusUnprocessableEntity, envelope{
				Success: false,
				Message: "import artifact is invalid",
				Data:    res,
			})
			return
		}
		if err := d.Backups.Import(r.Context(), res.Document, backup.ImportOptions{Mode: mode}); err != nil {
			respondServerError(w, d.Logger, err)
			return
		}
		respondMessage(w, http.StatusOK, fmt.Sprintf("imported in %s mode", mode), res)
	}
}

func ListBackups(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		infos, err := d.Backups.ListBackups(r.Context())
		if err != nil {
			respondServerError(w, d.Logger, err)
			return
		}
		if infos == nil {
			infos = []backup.BackupInfo{}
		}
		respondOK(w, infos)
	}
}

// CreateBackup takes a manual backup. When the scheduler is running the
// trigger goes through it so manual and periodic backups never overlap.
func CreateBackup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.TriggerBackup != nil {
			if err := d.TriggerBackup(); err != nil {
				respondServerError(w, d.Logger, err)
				return
			}
			respondMessage(w, http.StatusCreated, "backup created", nil)
			return
		}
		info, err := d.Backups.CreateBackup(r.Context(), backup.ReasonManual)
		if err != nil {
			respondServerError(w, d.Logger, err)
			return
		}
		respondMessage(w, http.StatusCreated, "backup created", info)
	}
}

type restoreRequest struct {
	Key string `json:"key"`
}

// RestoreBackup rolls content back to a stored backup. The current state is
// backed up first, so a restore is itself reversible.
func RestoreBackup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		var req restoreRequest
		if err := json.Unmarshal(body, &req); err != nil || req.Key == "" {
			respondBadRequest(w, "body must be {\"key\": \"<backup key>\"}")
			return
		}
		if err := d.Backups.Restore(r.Context(), req.Key); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				respondNotFound(w, "backup not found")
				return
			}
			respondServerError(w, d.Logger, err)
			return
		}
		respondMessage(w, http.StatusOK, "restored", nil)
	}
}
