package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/navstash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/navstash/internal/httpserver/handlers"
)

func init() { Register(registerStorage, CredentialLimit) }

func registerStorage(r chi.Router, d deps.Deps) {
	r.Get("/api/storage", handlers.GetStorage(d))
	r.Post("/api/storage", handlers.PostStorage(d))
}
