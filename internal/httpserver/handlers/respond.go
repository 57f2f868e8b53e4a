// Package handlers implements the admin and public HTTP endpoints.
//
// Every JSON response uses the same envelope: {success, message?, data?,
// errors?}. Validation failures answer 422 with the per-field error map,
// so the admin UI can highlight every invalid field at once.
package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/anhdng/songngu/internal/logger"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func respond(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

func respondOK(w http.ResponseWriter, data any) {
	respond(w, http.StatusOK, envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, msg string, data any) {
	respond(w, status, envelope{Success: true, Message: msg, Data: data})
}

func respondBadRequest(w http.ResponseWriter, msg string) {
	respond(w, http.StatusBadRequest, envelope{Success: false, Message: msg})
}

func respondNotFound(w http.ResponseWriter, msg string) {
	respond(w, http.StatusNotFound, envelope{Success: false, Message: msg})
}

func respondInvalid(w http.ResponseWriter, errors map[string]string) {
	respond(w, http.StatusUnprocessableEntity, envelope{
		Success: false,
		Message: "validation failed",
		Errors:  errors,
	})
}

func respondServerError(w http.ResponseWriter, log logger.Logger, err error) {
	log.Error("request failed", logger.Error(err))
	respond(w, http.StatusInternalServerError, envelope{Success: false, Message: "internal error"})
}

// maxBodyBytes caps request bodies; image uploads carry base64 data URLs.
const maxBodyBytes = 8 << 20

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondBadRequest(w, "could not read request body")
		return nil, false
	}
	return body, true
}
