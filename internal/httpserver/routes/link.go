package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navstash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navstash/internal/httpserver/handlers"
)

func init() { Register(registerLink, CredentialLimit) }

func registerLink(r chi.Router, d deps.Deps) {
	r.Post("/api/link", handlers.AddLink(d))
}
