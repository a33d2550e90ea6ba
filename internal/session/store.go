// Package session holds the process-wide view of who is logged in.
//
// The store is the single source of truth for the current identity.
// It is only ever mutated explicitly through SetUser and Logout; the
// API client never touches it, callers update it after a successful
// login, signup or profile change. All operations are infallible:
// a failed restore degrades to "logged out" rather than returning an
// error.
package session

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/rentd-dev/rentd/internal/auth"
	"github.com/rentd-dev/rentd/internal/models"
)

// Store holds the current authenticated identity for the lifetime of
// the process. The zero value is unusable; construct with New.
type Store struct {
	mu     sync.RWMutex
	user   *models.Identity
	epoch  uint64
	server string

	tokens  auth.TokenStore
	restore sync.Once
}

// New creates a session store that restores its credential for the
// given server from tokens.
func New(server string, tokens auth.TokenStore) *Store {
	return &Store{server: server, tokens: tokens}
}

// SetUser replaces the stored identity. Overwriting an existing
// identity is allowed (re-login).
func (s *Store) SetUser(identity models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := identity
	s.user = &user
	s.epoch++
}

// Logout clears the stored identity. Calling it when already logged
// out is a no-op and does not bump the epoch.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return
	}
	s.user = nil
	s.epoch++
}

// User returns a snapshot of the current identity, or nil when logged
// out.
func (s *Store) User() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// LoggedIn reports whether an identity is present.
func (s *Store) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// HasRole reports whether the current identity carries the given
// role. Always false when logged out.
func (s *Store) HasRole(role models.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return false
	}
	return s.user.HasRole(role)
}

// IsAdmin reports whether the current identity is an administrator.
func (s *Store) IsAdmin() bool {
	return s.HasRole(models.RoleAdmin)
}

// Epoch returns a counter that changes whenever the identity changes.
// Callers that issue a slow operation capture the epoch first and
// discard the result if the epoch moved in the meantime, so a late
// arrival never acts on a stale session.
func (s *Store) Epoch() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.epoch
}

// Restore attempts to reconstruct the identity from the persisted
// credential by decoding its claims, without network I/O. It runs at
// most once per store; repeated calls are no-ops. Any failure
// (missing, corrupt or expired token, panicking decoder) leaves the
// session empty.
func (s *Store) Restore() {
	s.restore.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				log.Debug().Any("panic", r).Msg("credential restore panicked, treating as logged out")
			}
		}()

		token, err := s.tokens.LoadToken(s.server)
		if err != nil {
			log.Debug().Err(err).Msg("no persisted credential to restore")
			return
		}

		identity, err := auth.DecodeIdentity(token)
		if err != nil {
			log.Debug().Err(err).Msg("persisted credential is invalid, staying logged out")
			return
		}

		s.SetUser(identity)
	})
}
