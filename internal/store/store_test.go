package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/MrSnakeDoc/navstash/internal/domain"
	"github.com/MrSnakeDoc/navstash/internal/kv/memory"
)

func TestAppDataDefaultsToEmpty(t *testing.T) {
	s := New(memory.New())

	data, err := s.AppData(context.Background())
	if err != nil {
		t.Fatalf("AppData() error = %v", err)
	}

	raw, _ := json.Marshal(data)
	if string(raw) != `{"links":[],"categories":[]}` {
		t.Errorf("empty app data encodes as %s", raw)
	}
}

func TestSaveAppDataRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(memory.New())

	in := &domain.AppData{
		Links:      []domain.Link{{ID: "1", Title: "Go", URL: "https://go.dev", CategoryID: "dev", CreatedAt: 1}},
		Categories: []domain.Category{{ID: "dev", Name: "Dev"}},
	}
	if err := s.SaveAppData(ctx, in); err != nil {
		t.Fatalf("SaveAppData() error = %v", err)
	}

	out, err := s.AppData(ctx)
	if err != nil {
		t.Fatalf("AppData() error = %v", err)
	}
	if len(out.Links) != 1 || out.Links[0].URL != "https://go.dev" {
		t.Errorf("AppData() links = %+v", out.Links)
	}
}

func TestAppDataCorrupt(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	_ = backend.Put(ctx, KeyAppData, []byte("not json"), 0)

	if _, err := New(backend).AppData(ctx); err == nil {
		t.Error("AppData() on corrupt document should fail")
	}
}

func TestConfig(t *testing.T) {
	ctx := context.Background()
	s := New(memory.New())

	raw, err := s.Config(ctx, domain.ConfigAI)
	if err != nil {
		t.Fatalf("Config() error = %v", err)
	}
	if string(raw) != `{}` {
		t.Errorf("unsaved config = %s, want {}", raw)
	}

	blob := json.RawMessage(`{"provider":"gemini","apiKey":"x","extra":[1,2]}`)
	if err := s.SaveConfig(ctx, domain.ConfigAI, blob); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}
	raw, _ = s.Config(ctx, domain.ConfigAI)
	if string(raw) != string(blob) {
		t.Errorf("Config() = %s, want verbatim %s", raw, blob)
	}

	if err := s.SaveConfig(ctx, "favicon", blob); !errors.Is(err, ErrUnknownConfig) {
		t.Errorf("SaveConfig(favicon) error = %v, want ErrUnknownConfig", err)
	}
	if err := s.SaveConfig(ctx, domain.ConfigSearch, json.RawMessage(`{bad`)); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("SaveConfig(invalid) error = %v, want ErrInvalidJSON", err)
	}
}

func TestPasswordExpiry(t *testing.T) {
	ctx := context.Background()
	s := New(memory.New())

	if d, _ := s.PasswordExpiry(ctx); d != 0 {
		t.Errorf("PasswordExpiry() without config = %v, want 0", d)
	}

	_ = s.SaveConfig(ctx, domain.ConfigWebsite, json.RawMessage(`{"passwordExpiry":{"value":3,"unit":"day"}}`))
	if d, _ := s.PasswordExpiry(ctx); d != 72*time.Hour {
		t.Errorf("PasswordExpiry() = %v, want 72h", d)
	}
}

func TestLastAuthTime(t *testing.T) {
	ctx := context.Background()
	backend := memory.New()
	s := New(backend)

	got, err := s.LastAuthTime(ctx)
	if err != nil || !got.IsZero() {
		t.Fatalf("LastAuthTime() = %v, %v; want zero, nil", got, err)
	}

	at := time.UnixMilli(1700000000123)
	if err := s.TouchAuthTime(ctx, at); err != nil {
		t.Fatalf("TouchAuthTime() error = %v", err)
	}

	raw, _ := backend.Get(ctx, KeyLastAuthTime)
	if string(raw) != "1700000000123" {
		t.Errorf("stored last_auth_time = %s", raw)
	}

	got, _ = s.LastAuthTime(ctx)
	if !got.Equal(at) {
		t.Errorf("LastAuthTime() = %v, want %v", got, at)
	}
}

func TestFavicon(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1700000000, 0)
	backend := memory.New().WithClock(func() time.Time { return now })
	s := New(backend)

	if _, _, err := s.Favicon(ctx, "  "); !errors.Is(err, ErrEmptyDomain) {
		t.Errorf("Favicon(empty) error = %v, want ErrEmptyDomain", err)
	}

	if err := s.SaveFavicon(ctx, "Go.Dev", "data:image/png;base64,AAA", time.Hour); err != nil {
		t.Fatalf("SaveFavicon() error = %v", err)
	}

	icon, ok, err := s.Favicon(ctx, "go.dev")
	if err != nil || !ok || icon != "data:image/png;base64,AAA" {
		t.Errorf("Favicon() = %q, %v, %v", icon, ok, err)
	}

	now = now.Add(2 * time.Hour)
	if _, ok, _ := s.Favicon(ctx, "go.dev"); ok {
		t.Error("favicon should have expired")
	}
}
