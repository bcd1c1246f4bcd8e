package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewStateTabPersistence(t *testing.T) {
	prefs := &memPrefsStore{}
	ctx := context.Background()

	vs := NewViewState(prefs)
	assert.Equal(t, DefaultTab, vs.ActiveTab())

	vs.SetActiveTab(ctx, "invoices")
	assert.Equal(t, "invoices", vs.ActiveTab())

	// A fresh ViewState over the same store lands on the saved tab.
	restarted := NewViewState(prefs)
	require.NoError(t, restarted.Restore(ctx))
	assert.Equal(t, "invoices", restarted.ActiveTab())
}

func TestViewStateRejectsUnknownTab(t *testing.T) {
	vs := NewViewState(&memPrefsStore{})
	vs.SetActiveTab(context.Background(), "definitely-not-a-tab")
	assert.Equal(t, DefaultTab, vs.ActiveTab())
}

func TestViewStateRestoreIgnoresUnknownSavedTab(t *testing.T) {
	prefs := &memPrefsStore{tab: "stale-tab-name"}
	vs := NewViewState(prefs)
	require.NoError(t, vs.Restore(context.Background()))
	assert.Equal(t, DefaultTab, vs.ActiveTab())
}

func TestViewStateSingleModal(t *testing.T) {
	vs := NewViewState(&memPrefsStore{})

	vs.OpenModal(FormConsultant)
	assert.Equal(t, FormConsultant, vs.OpenModalKind())

	// Opening another replaces the first.
	vs.OpenModal(FormContract)
	assert.Equal(t, FormContract, vs.OpenModalKind())

	vs.CloseModal()
	assert.Empty(t, vs.OpenModalKind())
}

func TestViewStateSingleInlineEditor(t *testing.T) {
	vs := NewViewState(&memPrefsStore{})

	_, open := vs.Editor()
	assert.False(t, open)

	vs.StartEdit(EditorInvoiceNumber, 7, "INV-2024-001")
	editor, open := vs.Editor()
	require.True(t, open)
	assert.Equal(t, EditorInvoiceNumber, editor.Kind)
	assert.Equal(t, int64(7), editor.RowID)

	// Opening a second editor implicitly closes the first.
	vs.StartEdit(EditorTimesheetDays, 3, "21.5")
	editor, open = vs.Editor()
	require.True(t, open)
	assert.Equal(t, EditorTimesheetDays, editor.Kind)
	assert.Equal(t, int64(3), editor.RowID)

	vs.FinishEdit()
	_, open = vs.Editor()
	assert.False(t, open)
}

func TestViewStateTabSwitchClosesModalAndEditor(t *testing.T) {
	vs := NewViewState(&memPrefsStore{})
	vs.OpenModal(FormClient)
	vs.StartEdit(EditorTimesheetDays, 3, "20")

	vs.SetActiveTab(context.Background(), "dashboard")

	assert.Empty(t, vs.OpenModalKind())
	_, open := vs.Editor()
	assert.False(t, open)
}
