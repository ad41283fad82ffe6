// Package store keeps the operator's token and profile consistently
// available to two very different readers: application code, which can
// reach the device-keyed persistent store, and the route guard, which
// only ever sees cookies. One Store spans both mediums and reconciles
// them with a "prefer any present value, propagate to the other" policy.
package store

import (
	"context"
	"time"

	"github.com/jasamarga/toll-ops-gateway/internal/domain/models"
	"github.com/jasamarga/toll-ops-gateway/pkg/hasher"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
	wrap "github.com/jasamarga/toll-ops-gateway/pkg/logger/wrapper"
)

// Cookie names. The legacy "token" name is still read for sessions
// created before the jasamarga_ prefix was introduced.
const (
	TokenCookie       = "jasamarga_token"
	UserCookie        = "jasamarga_user"
	LegacyTokenCookie = "token"
	DeviceCookie      = "jasamarga_device"
)

// DefaultCookieMaxAge keeps the cookie alive for 7 days
const DefaultCookieMaxAge = 7 * 24 * time.Hour

// LoginPath is the only location where a token-less synchronize pass
// does not force a logout.
const LoginPath = "/login"

// Medium is one backing location for the credential pair
type Medium interface {
	Token(ctx context.Context) (string, bool)
	SetToken(ctx context.Context, token string) error
	User(ctx context.Context) (*models.UserProfile, bool)
	SetUser(ctx context.Context, u *models.UserProfile) error
	Clear(ctx context.Context) error
}

// SyncResult reports what a synchronization pass decided
type SyncResult struct {
	// RedirectToLogin is set when neither medium held a token and the
	// current location was not the login page. Both mediums have been
	// cleared so the logged-out state is consistent.
	RedirectToLogin bool
}

// Store mirrors a credential pair across the persistent medium and the
// cookie medium. Writes are best effort: a failing medium degrades the
// store to single-medium operation instead of failing the caller.
type Store struct {
	persistent Medium
	cookie     Medium
	log        logger.Logger
}

func New(persistent, cookie Medium, log logger.Logger) *Store {
	return &Store{
		persistent: persistent,
		cookie:     cookie,
		log:        log,
	}
}

// SetToken writes the token to both mediums
func (s *Store) SetToken(ctx context.Context, token string) {
	if err := s.persistent.SetToken(ctx, token); err != nil {
		s.log.Warn(ctx, "persistent medium rejected token write, continuing on cookie only",
			"err", err.Error(), "token_fp", hasher.Fingerprint(token))
	}
	if err := s.cookie.SetToken(ctx, token); err != nil {
		s.log.Warn(ctx, "cookie medium rejected token write",
			"err", err.Error(), "token_fp", hasher.Fingerprint(token))
	}
}

// SetUser writes the serialized profile to both mediums
func (s *Store) SetUser(ctx context.Context, u *models.UserProfile) {
	if err := s.persistent.SetUser(ctx, u); err != nil {
		s.log.Warn(ctx, "persistent medium rejected user write", "err", err.Error())
	}
	if err := s.cookie.SetUser(ctx, u); err != nil {
		s.log.Warn(ctx, "cookie medium rejected user write", "err", err.Error())
	}
}

// ClearAll removes the credential pair from both mediums. Idempotent:
// clearing an already-empty store is a no-op, which is what lets many
// concurrent 401 responses race on it safely.
func (s *Store) ClearAll(ctx context.Context) {
	if err := s.persistent.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear persistent medium", "err", err.Error())
	}
	if err := s.cookie.Clear(ctx); err != nil {
		s.log.Warn(ctx, "failed to clear cookie medium", "err", err.Error())
	}
}

// Token reads the persistent medium first and falls back to the cookie
func (s *Store) Token(ctx context.Context) (string, bool) {
	if tok, ok := s.persistent.Token(ctx); ok {
		return tok, true
	}
	return s.cookie.Token(ctx)
}

// User reads the persistent medium first and falls back to the cookie
func (s *Store) User(ctx context.Context) (*models.UserProfile, bool) {
	if u, ok := s.persistent.User(ctx); ok {
		return u, true
	}
	return s.cookie.User(ctx)
}

// Synchronize reconciles the two mediums:
//
//   - persistent has a token, cookie does not: copy it to the cookie
//   - cookie has a token, persistent does not: copy it back
//   - neither has one and we are not on the login page: clear both and
//     report that the caller must redirect to login
//
// The pass is not atomic across mediums. Concurrent tabs can observe a
// transient mismatch, but every rule only ever adds the token to the
// medium that lacks it, so repeated passes converge.
func (s *Store) Synchronize(ctx context.Context, currentPath string) SyncResult {
	ctx = wrap.WithAction(ctx, "token_store_sync")

	ptok, pok := s.persistent.Token(ctx)
	ctok, cok := s.cookie.Token(ctx)

	switch {
	case pok && !cok:
		if err := s.cookie.SetToken(ctx, ptok); err != nil {
			s.log.Warn(ctx, "failed to mirror token to cookie", "err", err.Error())
		}
		if u, ok := s.persistent.User(ctx); ok {
			if err := s.cookie.SetUser(ctx, u); err != nil {
				s.log.Warn(ctx, "failed to mirror user to cookie", "err", err.Error())
			}
		}

	case cok && !pok:
		if err := s.persistent.SetToken(ctx, ctok); err != nil {
			s.log.Warn(ctx, "failed to mirror token to persistent medium", "err", err.Error())
		}
		if u, ok := s.cookie.User(ctx); ok {
			if err := s.persistent.SetUser(ctx, u); err != nil {
				s.log.Warn(ctx, "failed to mirror user to persistent medium", "err", err.Error())
			}
		}

	case !pok && !cok:
		if currentPath != LoginPath {
			s.ClearAll(ctx)
			s.log.Debug(ctx, "no token in either medium, forcing logout", "path", currentPath)
			return SyncResult{RedirectToLogin: true}
		}
	}

	return SyncResult{}
}
