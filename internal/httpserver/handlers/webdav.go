package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/navstash/internal/backup"
	"github.com/MrSnakeDoc/navstash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navstash/internal/logger"
	"github.com/MrSnakeDoc/navstash/internal/webdav"
)

type webdavRequest struct {
	Operation string          `json:"operation"`
	Config    webdav.Config   `json:"config"`
	Payload   json.RawMessage `json:"payload"`
}

type webdavCheckResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type webdavSyncResponse struct {
	Success    bool  `json:"success"`
	Links      int   `json:"links"`
	Categories int   `json:"categories"`
	ExportedAt int64 `json:"exportedAt,omitempty"`
}

// WebDAV proxies backup operations to the WebDAV server named in the
// request body: check, upload, download, and the server-side backup and
// restore.
func WebDAV(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorize(w, r, d) {
			return
		}

		var req webdavRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		dav, err := webdav.New(req.Config, d.HTTPClient)
		if err != nil {
			if errors.Is(err, webdav.ErrNoURL) {
				writeError(w, http.StatusBadRequest, "WebDAV URL is required")
				return
			}
			writeError(w, http.StatusBadRequest, "Invalid WebDAV URL")
			return
		}

		log := d.Logger.With(logger.String("operation", req.Operation))

		switch req.Operation {
		case "check":
			davCheck(w, r, log, dav)
		case "upload":
			davUpload(w, r, log, dav, req.Payload)
		case "download":
			davDownload(w, r, log, dav)
		case "backup":
			davBackup(w, r, d, log, dav)
		case "restore":
			davRestore(w, r, d, log, dav)
		default:
			writeError(w, http.StatusBadRequest, "Unknown operation")
		}
	}
}

func davCheck(w http.ResponseWriter, r *http.Request, log logger.Logger, dav *webdav.Client) {
	if err := dav.Check(r.Context()); err != nil {
		log.Info("webdav check failed", logger.Error(err))
		writeJSON(w, http.StatusOK, webdavCheckResponse{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, webdavCheckResponse{Success: true})
}

func davUpload(w http.ResponseWriter, r *http.Request, log logger.Logger, dav *webdav.Client, payload json.RawMessage) {
	if isAbsent(payload) {
		writeError(w, http.StatusBadRequest, "Payload is required")
		return
	}
	if err := dav.Upload(r.Context(), webdav.BackupFileName, payload); err != nil {
		log.Warn("webdav upload failed", logger.Error(err))
		writeError(w, http.StatusBadGateway, "Upload failed")
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func davDownload(w http.ResponseWriter, r *http.Request, log logger.Logger, dav *webdav.Client) {
	raw, err := dav.Download(r.Context(), webdav.BackupFileName)
	if err != nil {
		writeDownloadError(w, log, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func davBackup(w http.ResponseWriter, r *http.Request, d deps.Deps, log logger.Logger, dav *webdav.Client) {
	ctx := r.Context()

	p, err := backup.Snapshot(ctx, d.Store, d.Now())
	if err != nil {
		log.Error("failed to snapshot store", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to read data")
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		log.Error("failed to encode backup", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to encode backup")
		return
	}
	if err := dav.Upload(ctx, webdav.BackupFileName, raw); err != nil {
		log.Warn("webdav upload failed", logger.Error(err))
		writeError(w, http.StatusBadGateway, "Upload failed")
		return
	}

	log.Info("backup uploaded",
		logger.Int("links", len(p.Links)),
		logger.Int("categories", len(p.Categories)))
	writeJSON(w, http.StatusOK, webdavSyncResponse{
		Success:    true,
		Links:      len(p.Links),
		Categories: len(p.Categories),
		ExportedAt: p.ExportedAt,
	})
}

func davRestore(w http.ResponseWriter, r *http.Request, d deps.Deps, log logger.Logger, dav *webdav.Client) {
	ctx := r.Context()

	raw, err := dav.Download(ctx, webdav.BackupFileName)
	if err != nil {
		writeDownloadError(w, log, err)
		return
	}
	p, err := backup.Parse(raw)
	if err != nil {
		log.Warn("backup file rejected", logger.Error(err))
		writeError(w, http.StatusUnprocessableEntity, "Backup file is not a valid backup")
		return
	}
	if err := backup.Restore(ctx, d.Store, p); err != nil {
		log.Error("failed to restore backup", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to restore data")
		return
	}

	log.Info("backup restored",
		logger.Int("links", len(p.Links)),
		logger.Int("categories", len(p.Categories)))
	writeJSON(w, http.StatusOK, webdavSyncResponse{
		Success:    true,
		Links:      len(p.Links),
		Categories: len(p.Categories),
		ExportedAt: p.ExportedAt,
	})
}

func writeDownloadError(w http.ResponseWriter, log logger.Logger, err error) {
	if errors.Is(err, webdav.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Backup file not found")
		return
	}
	log.Warn("webdav download failed", logger.Error(err))
	writeError(w, http.StatusBadGateway, "Download failed")
}
