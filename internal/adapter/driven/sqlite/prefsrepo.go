package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dstanchev/invoicepanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.PrefsStore = (*PrefsRepo)(nil)

const activeTabKey = "active_tab"

// PrefsRepo is the SQLite implementation of the PrefsStore port, a plain
// key/value table for UI preferences that survive restarts.
type PrefsRepo struct {
	db *DB
}

// NewPrefsRepo creates a new PrefsRepo.
func NewPrefsRepo(db *DB) *PrefsRepo {
	return &PrefsRepo{db: db}
}

// SaveActiveTab records the most recently selected tab.
func (r *PrefsRepo) SaveActiveTab(ctx context.Context, tab string) error {
	const query = `INSERT OR REPLACE INTO ui_prefs (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)`
	if _, err := r.db.Writer.ExecContext(ctx, query, activeTabKey, tab); err != nil {
		return fmt.Errorf("save active tab: %w", err)
	}
	return nil
}

// ActiveTab returns the recorded tab, or "" when none was saved.
func (r *PrefsRepo) ActiveTab(ctx context.Context) (string, error) {
	const query = `SELECT value FROM ui_prefs WHERE key = ?`
	var tab string
	err := r.db.Reader.QueryRowContext(ctx, query, activeTabKey).Scan(&tab)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load active tab: %w", err)
	}
	return tab, nil
}
