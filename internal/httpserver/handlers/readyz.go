package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/navstash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navstash/internal/logger"
)

const pingTimeout = 2 * time.Second

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// Readyz is ready when the KV backend answers a ping.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pingKV(r.Context(), d); err != nil {
			d.Logger.Warn("readiness check failed", logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Ready: false, Error: "kv unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true})
	}
}

func pingKV(ctx context.Context, d deps.Deps) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return d.Store.Backend().Ping(ctx)
}
