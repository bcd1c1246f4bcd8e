package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefsRepoActiveTab(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPrefsRepo(db)
	ctx := context.Background()

	tab, err := repo.ActiveTab(ctx)
	require.NoError(t, err)
	assert.Empty(t, tab)

	require.NoError(t, repo.SaveActiveTab(ctx, "invoices"))
	tab, err = repo.ActiveTab(ctx)
	require.NoError(t, err)
	assert.Equal(t, "invoices", tab)

	require.NoError(t, repo.SaveActiveTab(ctx, "timesheets"))
	tab, err = repo.ActiveTab(ctx)
	require.NoError(t, err)
	assert.Equal(t, "timesheets", tab)
}
