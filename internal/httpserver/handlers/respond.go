package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MrSnakeDoc/navstash/internal/auth"
	"github.com/MrSnakeDoc/navstash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navstash/internal/logger"
)

var errBodyTooLarge = errors.New("request body too large")

type errorResponse struct {
	Error   string `json:"error"`
	Expired bool   `json:"expired,omitempty"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeAuthError maps gate errors to 401 responses. Anything else is a
// store failure.
func writeAuthError(w http.ResponseWriter, d deps.Deps, err error) {
	switch {
	case errors.Is(err, auth.ErrExpired):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Password expired", Expired: true})
	case errors.Is(err, auth.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		d.Logger.Error("auth check failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// authorize runs the gate and writes the error response on failure.
func authorize(w http.ResponseWriter, r *http.Request, d deps.Deps) bool {
	if err := d.Gate.Authorize(r.Context(), r); err != nil {
		writeAuthError(w, d, err)
		return false
	}
	return true
}

// readBody reads the whole request body, honouring the size cap installed
// by the server.
func readBody(r *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		return nil, err
	}
	return raw, nil
}

// decodeJSON reads the body into v and writes the 400/413 response itself
// when that fails.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	raw, err := readBody(r)
	if err != nil {
		if errors.Is(err, errBodyTooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "Failed to read request body")
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	return true
}

// isAbsent reports whether a raw JSON field was missing or null.
func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// isArray reports whether raw is a JSON array.
func isArray(raw json.RawMessage) bool {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
