package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/navstash/internal/httpserver/deps"
)

type componentStatus struct {
	OK      bool   `json:"ok"`
	Backend string `json:"backend,omitempty"`
	Mode    string `json:"mode,omitempty"`
	Latency string `json:"latency,omitempty"`
	Impact  string `json:"impact,omitempty"`
	Error   string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of the KV backend and the auth gate.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"kv":   checkKV(r, d),
			"auth": checkAuthGate(d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Status:     overallStatus(components),
			Components: components,
		})
	}
}

func checkKV(r *http.Request, d deps.Deps) componentStatus {
	start := time.Now()
	if err := pingKV(r.Context(), d); err != nil {
		return componentStatus{
			OK:      false,
			Backend: d.KVBackend,
			Impact:  "storage-unavailable",
			Error:   err.Error(),
		}
	}
	return componentStatus{
		OK:      true,
		Backend: d.KVBackend,
		Latency: time.Since(start).Round(time.Microsecond).String(),
	}
}

func checkAuthGate(d deps.Deps) componentStatus {
	s := componentStatus{OK: true, Mode: d.Gate.Mode()}
	if !d.Gate.HasPassword() {
		s.Impact = "writes-unprotected"
	}
	if d.Gate.TokensEnabled() {
		s.Mode += "+tokens"
	}
	return s
}

// overallStatus is "critical" without storage, "degraded" when writes are
// unprotected, "ok" otherwise.
func overallStatus(components map[string]componentStatus) string {
	if kv, ok := components["kv"]; ok && !kv.OK {
		return "critical"
	}
	if a, ok := components["auth"]; ok && a.Impact != "" {
		return "degraded"
	}
	return "ok"
}
