package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navstash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navstash/internal/httpserver/mw"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

// Guard names a middleware built once per router and shared by every
// registrar that asks for it.
type Guard int

const (
	// CredentialLimit rate-limits requests that check the shared password.
	CredentialLimit Guard = iota
	// Operational restricts a route to NAV_ALLOWED_CIDRS.
	Operational
)

type entry struct {
	reg    Registrar
	guards []Guard
}

var registry []entry

// Register a registrar with optional guards.
func Register(reg Registrar, guards ...Guard) {
	registry = append(registry, entry{reg: reg, guards: guards})
}

// Called once from NewRouter.
func RegisterAll(r chi.Router, d deps.Deps) {
	built := map[Guard]Middleware{
		CredentialLimit: credentialLimit(d),
		Operational:     mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
	}

	for _, e := range registry {
		if len(e.guards) == 0 {
			e.reg(r, d)
			continue
		}
		mws := make([]Middleware, 0, len(e.guards))
		for _, g := range e.guards {
			mws = append(mws, built[g])
		}
		e.reg(r.With(mws...), d)
	}
}

// credentialLimit applies one per-IP token bucket to every request that
// presents the password: all writes, and GET checkAuth lookups. Plain reads
// pass through.
func credentialLimit(d deps.Deps) Middleware {
	if !d.RateLimit.Enabled() {
		return func(next http.Handler) http.Handler { return next }
	}
	limit := mw.RateLimit(d.RateLimit, d.Logger)
	return func(next http.Handler) http.Handler {
		limited := limit(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet && !r.URL.Query().Has("checkAuth") {
				next.ServeHTTP(w, r)
				return
			}
			limited.ServeHTTP(w, r)
		})
	}
}
