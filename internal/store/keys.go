package store

import (
	"strings"

	"github.com/MrSnakeDoc/navstash/internal/domain"
)

const (
	// KeyAppData holds the links + categories document
	KeyAppData = "app_data"
	// KeyLastAuthTime holds the millisecond timestamp of the last login
	KeyLastAuthTime = "last_auth_time"
	// KeyPrefixFavicon is the prefix for cached favicons
	KeyPrefixFavicon = "favicon:"
)

// ConfigKey returns the key for a settings blob, e.g. "ai" -> "ai_config".
func ConfigKey(kind domain.ConfigKind) string {
	return string(kind) + "_config"
}

// FaviconKey returns the key for a domain's cached favicon.
func FaviconKey(domainName string) string {
	return KeyPrefixFavicon + normalizeDomain(domainName)
}

func normalizeDomain(d string) string {
	return strings.ToLower(strings.TrimSpace(d))
}
