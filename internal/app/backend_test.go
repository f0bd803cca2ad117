package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrSnakeDoc/navstash/internal/config"
	"github.com/MrSnakeDoc/navstash/internal/logger"
)

func baseConfig(backend string) *config.Config {
	return &config.Config{
		KVBackend:       backend,
		OutboundTimeout: 5 * time.Second,
		KVPrefix:        "navstash:",
	}
}

func TestOpenBackendMemory(t *testing.T) {
	b, err := OpenBackend(baseConfig("memory"), logger.NewNop())
	if err != nil {
		t.Fatalf("OpenBackend() error = %v", err)
	}
	defer b.Close()

	if b.Kind != "memory" || b.HTTPClient == nil {
		t.Errorf("backend = %+v", b)
	}
	if err := b.Store.Backend().Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestOpenBackendRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := baseConfig("remote")
	cfg.RemoteKVURL = srv.URL
	cfg.RemoteKVSigningSecret = "secret"

	b, err := OpenBackend(cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("OpenBackend() error = %v", err)
	}
	defer b.Close()

	if err := b.Store.Backend().Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestOpenBackendErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  func() *config.Config
	}{
		{"unknown backend", func() *config.Config { return baseConfig("etcd") }},
		{"bad proxy", func() *config.Config {
			c := baseConfig("memory")
			c.OutboundProxy = "ftp://proxy:21"
			return c
		}},
		{"remote without url", func() *config.Config { return baseConfig("remote") }},
		{"redis with invalid options", func() *config.Config { return baseConfig("redis") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := OpenBackend(tt.cfg(), logger.NewNop()); err == nil {
				t.Error("OpenBackend() should fail")
			}
		})
	}
}
