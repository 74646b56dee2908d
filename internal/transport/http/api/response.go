// Package api writes responses in the wire format the client expects: bare
// JSON bodies, errors as {"detail": ...} or {"error": ...} objects.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

// Detail writes a DRF-style error body.
func Detail(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"detail": message})
}

// ErrorMsg writes an {"error": ...} body, the shape the login endpoint uses.
func ErrorMsg(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, map[string]string{"error": message})
}

// Decode reads a JSON request body into out. On failure it writes the 400
// response itself and returns false.
func Decode(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		Detail(w, http.StatusBadRequest, "malformed JSON body")
		return false
	}
	return true
}
