package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navstash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navstash/internal/httpserver/handlers"
)

func init() { Register(registerWebDAV, CredentialLimit) }

func registerWebDAV(r chi.Router, d deps.Deps) {
	r.Post("/api/webdav", handlers.WebDAV(d))
}
