// Package application contains use-case orchestration services.
package application

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dstanchev/invoicepanel/internal/domain/model"
	"github.com/dstanchev/invoicepanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.TokenSource = (*Session)(nil)

// Session holds the authenticated identity for the running process and
// mirrors it to the session store. Token and identity are always set and
// cleared together, in memory and on disk. It doubles as the TokenSource
// every outgoing API call reads its bearer token from.
type Session struct {
	mu      sync.RWMutex
	store   driven.SessionStore
	current *model.Session
}

// NewSession creates a Session backed by the given store.
func NewSession(store driven.SessionStore) *Session {
	return &Session{store: store}
}

// Restore loads a previously persisted session into memory. An absent or
// unreadable record leaves the process logged out; only infrastructure
// failures are reported.
func (s *Session) Restore(ctx context.Context) error {
	stored, err := s.store.Load(ctx)
	if errors.Is(err, driven.ErrNoSession) {
		return nil
	}
	if errors.Is(err, driven.ErrEncryptionKeyNotSet) {
		slog.Warn("session persistence disabled, starting logged out")
		return nil
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.current = &stored
	s.mu.Unlock()

	slog.Info("session restored", "email", stored.Identity.Email, "role", stored.Identity.Role)
	return nil
}

// Set installs a new session and persists it. A persistence failure is
// logged rather than surfaced: the login itself succeeded, it just will not
// survive a restart.
func (s *Session) Set(ctx context.Context, session model.Session) {
	s.mu.Lock()
	s.current = &session
	s.mu.Unlock()

	if err := s.store.Save(ctx, session); err != nil {
		slog.Warn("persisting session failed", "error", err)
	}
}

// Clear logs out: the in-memory identity and the persisted record are
// removed together.
func (s *Session) Clear(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		slog.Warn("clearing persisted session failed", "error", err)
	}
}

// Current returns the authenticated identity, if any.
func (s *Session) Current() (model.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return model.Identity{}, false
	}
	return s.current.Identity, true
}

// Token returns the bearer token for outgoing API calls, or "" when logged
// out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// Invalidate discards the session after the back end rejected its token.
// Called from inside the API client, so it carries no request context.
func (s *Session) Invalidate() {
	slog.Warn("session invalidated by token rejection")
	s.Clear(context.Background())
}
