package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// ConfigKind names one of the opaque settings blobs.
type ConfigKind string

const (
	ConfigAI      ConfigKind = "ai"
	ConfigSearch  ConfigKind = "search"
	ConfigWebsite ConfigKind = "website"
)

// ParseConfigKind validates a kind received from a client.
func ParseConfigKind(s string) (ConfigKind, bool) {
	switch k := ConfigKind(strings.ToLower(strings.TrimSpace(s))); k {
	case ConfigAI, ConfigSearch, ConfigWebsite:
		return k, true
	default:
		return "", false
	}
}

// PasswordExpiry mirrors the only field of website_config the server reads.
type PasswordExpiry struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Duration converts the setting to a time.Duration. Zero means no expiry.
func (p PasswordExpiry) Duration() time.Duration {
	if p.Value <= 0 {
		return 0
	}
	var unit time.Duration
	switch strings.ToLower(p.Unit) {
	case "day", "days":
		unit = 24 * time.Hour
	case "week", "weeks":
		unit = 7 * 24 * time.Hour
	case "month", "months":
		unit = 30 * 24 * time.Hour
	case "year", "years":
		unit = 365 * 24 * time.Hour
	default:
		// "permanent" and anything unknown
		return 0
	}
	return time.Duration(p.Value * float64(unit))
}

// PasswordExpiryFrom extracts passwordExpiry from a raw website_config blob.
// Malformed blobs yield no expiry.
func PasswordExpiryFrom(raw json.RawMessage) time.Duration {
	if len(raw) == 0 {
		return 0
	}
	var peek struct {
		PasswordExpiry *PasswordExpiry `json:"passwordExpiry"`
	}
	if err := json.Unmarshal(raw, &peek); err != nil || peek.PasswordExpiry == nil {
		return 0
	}
	return peek.PasswordExpiry.Duration()
}

// BackupPayload is the document exchanged with WebDAV.
type BackupPayload struct {
	Links         []Link          `json:"links"`
	Categories    []Category      `json:"categories"`
	SearchConfig  json.RawMessage `json:"searchConfig,omitempty"`
	AIConfig      json.RawMessage `json:"aiConfig,omitempty"`
	WebsiteConfig json.RawMessage `json:"websiteConfig,omitempty"`
	ExportedAt    int64           `json:"exportedAt,omitempty"`
}

// AppData returns the link/category part of the backup.
func (b *BackupPayload) AppData() *AppData {
	d := &AppData{Links: b.Links, Categories: b.Categories}
	d.Normalize()
	return d
}

// Configs returns the settings blobs present in the backup.
func (b *BackupPayload) Configs() map[ConfigKind]json.RawMessage {
	out := make(map[ConfigKind]json.RawMessage, 3)
	if isPresent(b.AIConfig) {
		out[ConfigAI] = b.AIConfig
	}
	if isPresent(b.SearchConfig) {
		out[ConfigSearch] = b.SearchConfig
	}
	if isPresent(b.WebsiteConfig) {
		out[ConfigWebsite] = b.WebsiteConfig
	}
	return out
}

func isPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}
