// Package backup moves the stored documents to and from a WebDAV
// collection.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/navstash/internal/domain"
	"github.com/MrSnakeDoc/navstash/internal/store"
	"github.com/MrSnakeDoc/navstash/internal/webdav"
)

// ErrInvalidBackup is returned by Parse when a file is not a backup payload.
var ErrInvalidBackup = errors.New("backup: not a valid backup file")

// Snapshot collects app data and every settings blob into one payload.
func Snapshot(ctx context.Context, st *store.Store, now time.Time) (*domain.BackupPayload, error) {
	data, err := st.AppData(ctx)
	if err != nil {
		return nil, err
	}

	p := &domain.BackupPayload{
		Links:      data.Links,
		Categories: data.Categories,
		ExportedAt: now.UnixMilli(),
	}

	blobs := map[domain.ConfigKind]*json.RawMessage{
		domain.ConfigAI:      &p.AIConfig,
		domain.ConfigSearch:  &p.SearchConfig,
		domain.ConfigWebsite: &p.WebsiteConfig,
	}
	for kind, dst := range blobs {
		raw, err := st.Config(ctx, kind)
		if err != nil {
			return nil, err
		}
		*dst = raw
	}

	return p, nil
}

// Restore overwrites app data and the settings blobs present in p.
// Blobs absent from the payload are left untouched.
func Restore(ctx context.Context, st *store.Store, p *domain.BackupPayload) error {
	if err := st.SaveAppData(ctx, p.AppData()); err != nil {
		return err
	}
	for kind, raw := range p.Configs() {
		if err := st.SaveConfig(ctx, kind, raw); err != nil {
			return fmt.Errorf("failed to restore %s config: %w", kind, err)
		}
	}
	return nil
}

// Parse decodes a downloaded backup file. The top level must be an object
// whose links and categories are both JSON arrays, so a stray file never
// replaces the stored document with an empty one.
func Parse(raw []byte) (*domain.BackupPayload, error) {
	var shape struct {
		Links      json.RawMessage `json:"links"`
		Categories json.RawMessage `json:"categories"`
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: top level is not an object", ErrInvalidBackup)
	}
	if err := json.Unmarshal(trimmed, &shape); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if !isArray(shape.Links) {
		return nil, fmt.Errorf("%w: links must be an array", ErrInvalidBackup)
	}
	if !isArray(shape.Categories) {
		return nil, fmt.Errorf("%w: categories must be an array", ErrInvalidBackup)
	}

	var p domain.BackupPayload
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	return &p, nil
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

// Push snapshots the store and uploads it.
func Push(ctx context.Context, st *store.Store, dav *webdav.Client, now time.Time) (*domain.BackupPayload, error) {
	p, err := Snapshot(ctx, st, now)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	if err := dav.Upload(ctx, webdav.BackupFileName, raw); err != nil {
		return nil, err
	}
	return p, nil
}

// Pull downloads the backup and restores it into the store.
func Pull(ctx context.Context, st *store.Store, dav *webdav.Client) (*domain.BackupPayload, error) {
	raw, err := dav.Download(ctx, webdav.BackupFileName)
	if err != nil {
		return nil, err
	}
	p, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	if err := Restore(ctx, st, p); err != nil {
		return nil, err
	}
	return p, nil
}
