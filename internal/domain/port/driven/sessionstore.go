package driven

import (
	"context"
	"errors"

	"github.com/dstanchev/invoicepanel/internal/domain/model"
)

// ErrNoSession indicates no persisted session exists.
var ErrNoSession = errors.New("no stored session")

// ErrEncryptionKeyNotSet indicates the store was built without a secret key
// and cannot encrypt or decrypt tokens.
var ErrEncryptionKeyNotSet = errors.New("encryption key not set")

// SessionStore persists the authenticated session across restarts. Token and
// identity are written and cleared together; a store never holds one without
// the other.
type SessionStore interface {
	// Save replaces any stored session with the given one.
	Save(ctx context.Context, session model.Session) error
	// Load returns the stored session, or ErrNoSession when none exists.
	// A stored record that can no longer be decoded is treated as absent
	// and removed.
	Load(ctx context.Context) (model.Session, error)
	// Clear removes any stored session. Clearing an empty store is not an
	// error.
	Clear(ctx context.Context) error
}
