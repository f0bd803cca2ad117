package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/MrSnakeDoc/navstash/internal/domain"
	"github.com/MrSnakeDoc/navstash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navstash/internal/logger"
	"github.com/MrSnakeDoc/navstash/internal/store"
)

const configFavicon = "favicon"

type checkAuthResponse struct {
	HasPassword   bool `json:"hasPassword"`
	RequiresAuth  bool `json:"requiresAuth"`
	Authenticated bool `json:"authenticated,omitempty"`
	Expired       bool `json:"expired,omitempty"`
}

type faviconResponse struct {
	Icon   *string `json:"icon"`
	Cached bool    `json:"cached"`
}

// storageRequest is the union of every POST /api/storage body shape.
type storageRequest struct {
	AuthOnly   bool            `json:"authOnly"`
	SaveConfig string          `json:"saveConfig"`
	Config     json.RawMessage `json:"config"`

	// favicon cache
	Domain string  `json:"domain"`
	Icon   string  `json:"icon"`
	TTL    float64 `json:"ttl"` // seconds

	// app data
	Links      json.RawMessage `json:"links"`
	Categories json.RawMessage `json:"categories"`
}

// GetStorage serves the app data document, the settings blobs, cached
// favicons and the auth status check.
func GetStorage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if q.Get("checkAuth") == "true" {
			checkAuth(w, r, d)
			return
		}

		if kind := q.Get("getConfig"); kind != "" {
			getConfig(w, r, d, kind, q.Get("domain"))
			return
		}

		data, err := d.Store.AppData(r.Context())
		if err != nil {
			d.Logger.Error("failed to load app data", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to load data")
			return
		}
		writeJSON(w, http.StatusOK, data)
	}
}

func checkAuth(w http.ResponseWriter, r *http.Request, d deps.Deps) {
	resp := checkAuthResponse{HasPassword: d.Gate.HasPassword()}
	if !resp.HasPassword {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	expired, err := d.Gate.Expired(r.Context())
	if err != nil {
		d.Logger.Error("failed to evaluate password expiry", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to check auth")
		return
	}

	resp.Authenticated = d.Gate.Credentialed(r)
	resp.Expired = expired
	resp.RequiresAuth = !resp.Authenticated || expired
	writeJSON(w, http.StatusOK, resp)
}

func getConfig(w http.ResponseWriter, r *http.Request, d deps.Deps, rawKind, domainName string) {
	ctx := r.Context()

	if rawKind == configFavicon {
		if strings.TrimSpace(domainName) == "" {
			writeError(w, http.StatusBadRequest, "Domain parameter is required")
			return
		}
		icon, ok, err := d.Store.Favicon(ctx, domainName)
		if err != nil {
			d.Logger.Error("failed to load favicon", logger.String("domain", domainName), logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to load favicon")
			return
		}
		resp := faviconResponse{Cached: ok}
		if ok {
			resp.Icon = &icon
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	kind, ok := domain.ParseConfigKind(rawKind)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown config type")
		return
	}

	raw, err := d.Store.Config(ctx, kind)
	if err != nil {
		d.Logger.Error("failed to load config", logger.String("kind", string(kind)), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to load config")
		return
	}
	writeJSON(w, http.StatusOK, raw)
}

// PostStorage saves the app data document, a settings blob, a favicon, or
// performs a password login.
func PostStorage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req storageRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		// Favicons are cache data; saving one needs no password.
		if req.SaveConfig == configFavicon {
			saveFavicon(w, r, d, req)
			return
		}

		if req.AuthOnly {
			login(w, r, d)
			return
		}

		if !authorize(w, r, d) {
			return
		}

		if req.SaveConfig != "" {
			saveConfig(w, r, d, req)
			return
		}

		saveAppData(w, r, d, req)
	}
}

func saveFavicon(w http.ResponseWriter, r *http.Request, d deps.Deps, req storageRequest) {
	if strings.TrimSpace(req.Domain) == "" || req.Icon == "" {
		writeError(w, http.StatusBadRequest, "Domain and icon are required")
		return
	}

	ttl := d.FaviconTTL
	if req.TTL > 0 {
		ttl = time.Duration(req.TTL * float64(time.Second))
	}

	if err := d.Store.SaveFavicon(r.Context(), req.Domain, req.Icon, ttl); err != nil {
		d.Logger.Error("failed to cache favicon", logger.String("domain", req.Domain), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to save favicon")
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func login(w http.ResponseWriter, r *http.Request, d deps.Deps) {
	token, err := d.Gate.Login(r.Context(), r)
	if err != nil {
		writeAuthError(w, d, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true, Token: token})
}

func saveConfig(w http.ResponseWriter, r *http.Request, d deps.Deps, req storageRequest) {
	kind, ok := domain.ParseConfigKind(req.SaveConfig)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown config type")
		return
	}
	if isAbsent(req.Config) {
		writeError(w, http.StatusBadRequest, "Config is required")
		return
	}

	if err := d.Store.SaveConfig(r.Context(), kind, req.Config); err != nil {
		if errors.Is(err, store.ErrInvalidJSON) {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		d.Logger.Error("failed to save config", logger.String("kind", string(kind)), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to save config")
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// saveAppData overwrites the document. A field missing from the body keeps
// its stored value; a body with neither field is rejected.
func saveAppData(w http.ResponseWriter, r *http.Request, d deps.Deps, req storageRequest) {
	hasLinks, hasCategories := !isAbsent(req.Links), !isAbsent(req.Categories)
	if !hasLinks && !hasCategories {
		writeError(w, http.StatusBadRequest, "Links or categories are required")
		return
	}
	if (hasLinks && !isArray(req.Links)) || (hasCategories && !isArray(req.Categories)) {
		writeError(w, http.StatusBadRequest, "Links and categories must be arrays")
		return
	}

	ctx := r.Context()
	data := domain.EmptyAppData()
	if !hasLinks || !hasCategories {
		current, err := d.Store.AppData(ctx)
		if err != nil {
			d.Logger.Error("failed to load app data", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to save data")
			return
		}
		data = current
	}

	if hasLinks {
		data.Links = nil
		if err := json.Unmarshal(req.Links, &data.Links); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid links")
			return
		}
	}
	if hasCategories {
		data.Categories = nil
		if err := json.Unmarshal(req.Categories, &data.Categories); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid categories")
			return
		}
	}

	if err := d.Store.SaveAppData(ctx, data); err != nil {
		d.Logger.Error("failed to save app data", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to save data")
		return
	}

	d.Logger.Debug("app data saved",
		logger.Int("links", len(data.Links)),
		logger.Int("categories", len(data.Categories)))
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
