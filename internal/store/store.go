package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MrSnakeDoc/navstash/internal/domain"
	"github.com/MrSnakeDoc/navstash/internal/kv"
)

var (
	ErrUnknownConfig = errors.New("unknown config kind")
	ErrInvalidJSON   = errors.New("config is not valid JSON")
	ErrEmptyDomain   = errors.New("favicon domain is empty")
)

// emptyConfig is served for settings blobs that were never saved.
var emptyConfig = json.RawMessage(`{}`)

// Store gives typed access to the documents kept in the key-value backend.
type Store struct {
	kv kv.Store
}

// New wraps a kv.Store
func New(backend kv.Store) *Store {
	return &Store{kv: backend}
}

// Backend exposes the underlying kv.Store (health checks).
func (s *Store) Backend() kv.Store {
	return s.kv
}

// AppData loads the links/categories document. A missing key yields an
// empty document.
func (s *Store) AppData(ctx context.Context) (*domain.AppData, error) {
	raw, err := s.kv.Get(ctx, KeyAppData)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return domain.EmptyAppData(), nil
		}
		return nil, fmt.Errorf("failed to load app data: %w", err)
	}

	var data domain.AppData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode app data: %w", err)
	}
	data.Normalize()
	return &data, nil
}

// SaveAppData overwrites the whole document.
func (s *Store) SaveAppData(ctx context.Context, data *domain.AppData) error {
	data.Normalize()
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode app data: %w", err)
	}
	if err := s.kv.Put(ctx, KeyAppData, raw, 0); err != nil {
		return fmt.Errorf("failed to save app data: %w", err)
	}
	return nil
}

// Config returns a settings blob verbatim, or {} when it was never saved.
func (s *Store) Config(ctx context.Context, kind domain.ConfigKind) (json.RawMessage, error) {
	if _, ok := domain.ParseConfigKind(string(kind)); !ok {
		return nil, ErrUnknownConfig
	}

	raw, err := s.kv.Get(ctx, ConfigKey(kind))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return emptyConfig, nil
		}
		return nil, fmt.Errorf("failed to load %s config: %w", kind, err)
	}
	return json.RawMessage(raw), nil
}

// SaveConfig stores a settings blob without interpreting it.
func (s *Store) SaveConfig(ctx context.Context, kind domain.ConfigKind, raw json.RawMessage) error {
	if _, ok := domain.ParseConfigKind(string(kind)); !ok {
		return ErrUnknownConfig
	}
	if !json.Valid(raw) {
		return ErrInvalidJSON
	}
	if err := s.kv.Put(ctx, ConfigKey(kind), raw, 0); err != nil {
		return fmt.Errorf("failed to save %s config: %w", kind, err)
	}
	return nil
}

// PasswordExpiry reads passwordExpiry from the website config.
func (s *Store) PasswordExpiry(ctx context.Context) (time.Duration, error) {
	raw, err := s.Config(ctx, domain.ConfigWebsite)
	if err != nil {
		return 0, err
	}
	return domain.PasswordExpiryFrom(raw), nil
}

// LastAuthTime returns the last login time, or the zero time.
func (s *Store) LastAuthTime(ctx context.Context) (time.Time, error) {
	raw, err := s.kv.Get(ctx, KeyLastAuthTime)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to load last auth time: %w", err)
	}

	ms, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		// a corrupt value counts as "never logged in"
		return time.Time{}, nil
	}
	return time.UnixMilli(ms), nil
}

// TouchAuthTime records a successful login at t.
func (s *Store) TouchAuthTime(ctx context.Context, t time.Time) error {
	v := strconv.FormatInt(t.UnixMilli(), 10)
	if err := s.kv.Put(ctx, KeyLastAuthTime, []byte(v), 0); err != nil {
		return fmt.Errorf("failed to save last auth time: %w", err)
	}
	return nil
}

// Favicon returns the cached icon for a domain.
func (s *Store) Favicon(ctx context.Context, domainName string) (string, bool, error) {
	if normalizeDomain(domainName) == "" {
		return "", false, ErrEmptyDomain
	}

	raw, err := s.kv.Get(ctx, FaviconKey(domainName))
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to load favicon: %w", err)
	}
	return string(raw), true, nil
}

// SaveFavicon caches an icon. ttl <= 0 keeps it forever.
func (s *Store) SaveFavicon(ctx context.Context, domainName, icon string, ttl time.Duration) error {
	if normalizeDomain(domainName) == "" {
		return ErrEmptyDomain
	}
	if err := s.kv.Put(ctx, FaviconKey(domainName), []byte(icon), ttl); err != nil {
		return fmt.Errorf("failed to cache favicon: %w", err)
	}
	return nil
}
