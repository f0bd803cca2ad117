package deps

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/navstash/internal/auth"
	"github.com/MrSnakeDoc/navstash/internal/httpserver/mw"
	"github.com/MrSnakeDoc/navstash/internal/logger"
	"github.com/MrSnakeDoc/navstash/internal/store"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time   // for testing, defaults to time.Now
	AllowedHosts []string           // Host headers allowed to access the server
	AllowedCIDRS []string           // IPs allowed to access healthz/readyz/infra endpoints
	TrustProxy   bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CORSOrigin   string             // Access-Control-Allow-Origin value
	RateLimit    mw.RateLimitConfig // applied to mutating API routes
	KVBackend    string             // "redis" | "remote" | "memory", reported by /infra
	Store        *store.Store       // typed access to the KV documents
	Gate         *auth.Gate         // shared-password gate
	HTTPClient   *http.Client       // outbound client for WebDAV (honours the outbound proxy)
	FaviconTTL   time.Duration      // default TTL for cached favicons
}

// Now returns the current time from TimeNow, falling back to time.Now.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
