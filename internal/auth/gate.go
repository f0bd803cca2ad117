package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MrSnakeDoc/navstash/internal/store"
)

// HeaderPassword carries the shared password on mutating requests.
const HeaderPassword = "x-auth-password"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrExpired      = errors.New("password expired")
)

// Options configures the gate.
type Options struct {
	// Password is the shared secret, plaintext or a bcrypt hash.
	// Empty disables the gate.
	Password string
	// TokenSecret enables bearer session tokens when set.
	TokenSecret string
	TokenTTL    time.Duration
}

// Gate authorizes requests against the single shared password.
type Gate struct {
	password string
	tokens   *tokens
	store    *store.Store
	now      func() time.Time
}

// NewGate builds a gate. The store is used for last_auth_time and for the
// password expiry configured in the website settings.
func NewGate(opts Options, st *store.Store) *Gate {
	return newGate(opts, st, time.Now)
}

func newGate(opts Options, st *store.Store, now func() time.Time) *Gate {
	return &Gate{
		password: opts.Password,
		tokens:   newTokens(opts.TokenSecret, opts.TokenTTL, now),
		store:    st,
		now:      now,
	}
}

// HasPassword reports whether a password is configured at all.
func (g *Gate) HasPassword() bool { return g.password != "" }

// TokensEnabled reports whether logins hand out bearer tokens.
func (g *Gate) TokensEnabled() bool { return g.tokens != nil }

// Mode describes the gate for the infra endpoint.
func (g *Gate) Mode() string {
	switch {
	case !g.HasPassword():
		return "open"
	case IsBcryptHash(g.password):
		return "bcrypt"
	default:
		return "plaintext"
	}
}

// Credentialed reports whether r carries a valid password or token,
// ignoring expiry.
func (g *Gate) Credentialed(r *http.Request) bool {
	if !g.HasPassword() {
		return true
	}
	if matchPassword(g.password, r.Header.Get(HeaderPassword)) {
		return true
	}
	if g.tokens != nil {
		if raw, ok := bearer(r); ok && g.tokens.validate(raw) == nil {
			return true
		}
	}
	return false
}

// Authorize gates a mutating request: the credential must be valid and the
// last login must not be older than the configured expiry.
func (g *Gate) Authorize(ctx context.Context, r *http.Request) error {
	if !g.HasPassword() {
		return nil
	}
	if !g.Credentialed(r) {
		return ErrUnauthorized
	}
	expired, err := g.Expired(ctx)
	if err != nil {
		return err
	}
	if expired {
		return ErrExpired
	}
	return nil
}

// Login verifies the password header (never a token, never expiry),
// records the login time and returns a session token when tokens are
// enabled.
func (g *Gate) Login(ctx context.Context, r *http.Request) (string, error) {
	if g.HasPassword() && !matchPassword(g.password, r.Header.Get(HeaderPassword)) {
		return "", ErrUnauthorized
	}

	if err := g.store.TouchAuthTime(ctx, g.now()); err != nil {
		return "", err
	}

	if g.tokens == nil {
		return "", nil
	}
	return g.tokens.issue()
}

// Expired reports whether the last login is older than the password expiry.
// With no expiry configured, or no recorded login, nothing expires.
func (g *Gate) Expired(ctx context.Context) (bool, error) {
	if !g.HasPassword() {
		return false, nil
	}

	expiry, err := g.store.PasswordExpiry(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read password expiry: %w", err)
	}
	if expiry <= 0 {
		return false, nil
	}

	last, err := g.store.LastAuthTime(ctx)
	if err != nil {
		return false, err
	}
	if last.IsZero() {
		return false, nil
	}
	return g.now().Sub(last) > expiry, nil
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
