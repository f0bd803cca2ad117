package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/navstash/internal/httpserver/deps"
)

type buildInfo struct {
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version,omitempty"`
}

type healthzResponse struct {
	Status    string    `json:"status"`
	Uptime    float64   `json:"uptime_seconds"`
	KVBackend string    `json:"kv_backend"`
	Build     buildInfo `json:"build"`
}

// Healthz reports liveness only; it never touches the KV backend.
func Healthz(d deps.Deps) http.HandlerFunc {
	build := buildInfo{
		Version:   d.Version,
		Commit:    d.Commit,
		BuildDate: d.BuildDate,
		GoVersion: d.GoVersion,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthzResponse{
			Status:    "ok",
			Uptime:    d.Now().Sub(d.StartTime).Seconds(),
			KVBackend: d.KVBackend,
			Build:     build,
		})
	}
}
