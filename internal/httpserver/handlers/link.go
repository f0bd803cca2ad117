package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/MrSnakeDoc/navstash/internal/domain"
	"github.com/MrSnakeDoc/navstash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navstash/internal/logger"
)

type addLinkRequest struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	CategoryID  string `json:"categoryId"`
	Icon        string `json:"icon"`
}

type addLinkResponse struct {
	Success      bool        `json:"success"`
	Link         domain.Link `json:"link"`
	CategoryName string      `json:"categoryName"`
}

// AddLink inserts one link at the top of the document, picking its
// category with the auto-categorization rules.
func AddLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorize(w, r, d) {
			return
		}

		var req addLinkRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		req.URL = strings.TrimSpace(req.URL)
		if req.URL == "" {
			writeError(w, http.StatusBadRequest, "URL is required")
			return
		}

		title := strings.TrimSpace(req.Title)
		if title == "" {
			title = titleFromURL(req.URL)
		}

		ctx := r.Context()
		data, err := d.Store.AppData(ctx)
		if err != nil {
			d.Logger.Error("failed to load app data", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to load data")
			return
		}

		cat, created := domain.ResolveCategory(data, req.CategoryID)
		link := domain.NewLink(title, req.URL, req.Description, cat.ID, req.Icon, d.Now())
		data.PrependLink(link)

		if err := d.Store.SaveAppData(ctx, data); err != nil {
			d.Logger.Error("failed to save app data", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to save link")
			return
		}

		d.Logger.Info("link added",
			logger.String("id", link.ID),
			logger.String("category", cat.ID),
			logger.Bool("category_created", created))

		writeJSON(w, http.StatusOK, addLinkResponse{
			Success:      true,
			Link:         link,
			CategoryName: cat.Name,
		})
	}
}

// titleFromURL falls back to the host, or the raw URL when it has none.
func titleFromURL(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return u.Host
	}
	return raw
}
