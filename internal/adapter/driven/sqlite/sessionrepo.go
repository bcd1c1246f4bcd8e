package sqlite

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/dstanchev/invoicepanel/internal/domain/model"
	"github.com/dstanchev/invoicepanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SessionStore = (*SessionRepo)(nil)

// SessionRepo is the SQLite implementation of the SessionStore port. The
// bearer token and the serialized identity live in a single row and are
// encrypted with AES-256-GCM before write. Writing them in one statement
// keeps the token-and-identity-together invariant even across a crash.
type SessionRepo struct {
	db  *DB
	key []byte // 32-byte AES-256 key; nil disables persistence.
}

// NewSessionRepo creates a new SessionRepo. key must be 32 bytes for
// AES-256-GCM, or nil to disable session persistence (Save and Load return
// ErrEncryptionKeyNotSet; every start is then a fresh login).
func NewSessionRepo(db *DB, key []byte) *SessionRepo {
	return &SessionRepo{db: db, key: key}
}

// Save replaces any stored session with the given one.
func (r *SessionRepo) Save(ctx context.Context, session model.Session) error {
	identityJSON, err := json.Marshal(session.Identity)
	if err != nil {
		return fmt.Errorf("encode identity: %w", err)
	}

	token, err := r.encrypt([]byte(session.Token))
	if err != nil {
		return err
	}
	identity, err := r.encrypt(identityJSON)
	if err != nil {
		return err
	}

	const query = `INSERT OR REPLACE INTO session (id, token, identity, updated_at) VALUES (1, ?, ?, CURRENT_TIMESTAMP)`
	if _, err := r.db.Writer.ExecContext(ctx, query, token, identity); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the stored session. A row that no longer decrypts or parses
// is removed and reported as absent, so a corrupted store degrades to the
// logged-out state instead of failing startup.
func (r *SessionRepo) Load(ctx context.Context) (model.Session, error) {
	if r.key == nil {
		return model.Session{}, driven.ErrEncryptionKeyNotSet
	}

	const query = `SELECT token, identity FROM session WHERE id = 1`
	var encToken, encIdentity string
	err := r.db.Reader.QueryRowContext(ctx, query).Scan(&encToken, &encIdentity)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Session{}, driven.ErrNoSession
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("load session: %w", err)
	}

	session, err := r.decode(encToken, encIdentity)
	if err != nil {
		slog.Warn("stored session unreadable, clearing", "error", err)
		if clearErr := r.Clear(ctx); clearErr != nil {
			return model.Session{}, fmt.Errorf("clear unreadable session: %w", clearErr)
		}
		return model.Session{}, driven.ErrNoSession
	}
	return session, nil
}

// Clear removes any stored session.
func (r *SessionRepo) Clear(ctx context.Context) error {
	if _, err := r.db.Writer.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (r *SessionRepo) decode(encToken, encIdentity string) (model.Session, error) {
	token, err := r.decrypt(encToken)
	if err != nil {
		return model.Session{}, fmt.Errorf("decrypt token: %w", err)
	}
	identityJSON, err := r.decrypt(encIdentity)
	if err != nil {
		return model.Session{}, fmt.Errorf("decrypt identity: %w", err)
	}

	var identity model.Identity
	if err := json.Unmarshal(identityJSON, &identity); err != nil {
		return model.Session{}, fmt.Errorf("parse identity: %w", err)
	}
	if len(token) == 0 || identity.Email == "" {
		return model.Session{}, errors.New("incomplete session record")
	}

	return model.Session{Token: string(token), Identity: identity}, nil
}

// encrypt encrypts plaintext using AES-256-GCM and returns a base64-encoded
// string containing the nonce (12 bytes) prepended to the ciphertext.
func (r *SessionRepo) encrypt(plaintext []byte) (string, error) {
	if r.key == nil {
		return "", driven.ErrEncryptionKeyNotSet
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return "", fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("rand nonce: %w", err)
	}

	// Seal appends the ciphertext to nonce, producing: nonce || ciphertext || tag.
	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a base64-encoded AES-256-GCM ciphertext.
func (r *SessionRepo) decrypt(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("base64 decode: %w", err)
	}

	block, err := aes.NewCipher(r.key)
	if err != nil {
		return nil, fmt.Errorf("aes.NewCipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher.NewGCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("gcm.Open: %w", err)
	}

	return plaintext, nil
}
