package application

import (
	"context"
	"log/slog"
	"sync"

	"github.com/dstanchev/invoicepanel/internal/domain/port/driven"
)

// DefaultTab is where the panel lands without a saved preference.
const DefaultTab = "dashboard"

// Tabs is the fixed set of top-level tabs, in display order.
var Tabs = []string{
	"dashboard",
	"consultants",
	"clients",
	"contracts",
	"timesheets",
	"invoices",
	"automation",
	"users",
}

// ValidTab reports whether name is one of the known tabs.
func ValidTab(name string) bool {
	for _, t := range Tabs {
		if t == name {
			return true
		}
	}
	return false
}

// EditorKind names the two inline-editable cells.
type EditorKind string

const (
	EditorInvoiceNumber EditorKind = "invoice_number"
	EditorTimesheetDays EditorKind = "timesheet_days"
)

// InlineEditor is the one cell currently being edited, if any.
type InlineEditor struct {
	Kind  EditorKind
	RowID int64
	Draft string
}

// ViewState is the panel's UI state machine: the active tab (persisted
// across restarts), at most one open modal, and at most one inline editor.
type ViewState struct {
	prefs driven.PrefsStore

	mu        sync.RWMutex
	activeTab string
	openModal string
	editor    *InlineEditor
}

// NewViewState creates a ViewState on the default tab.
func NewViewState(prefs driven.PrefsStore) *ViewState {
	return &ViewState{prefs: prefs, activeTab: DefaultTab}
}

// Restore loads the persisted tab selection. An unknown or missing value
// keeps the default.
func (v *ViewState) Restore(ctx context.Context) error {
	tab, err := v.prefs.ActiveTab(ctx)
	if err != nil {
		return err
	}
	if ValidTab(tab) {
		v.mu.Lock()
		v.activeTab = tab
		v.mu.Unlock()
	}
	return nil
}

// ActiveTab returns the current tab.
func (v *ViewState) ActiveTab() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.activeTab
}

// SetActiveTab switches tabs and persists the choice. Unknown tab names are
// ignored. Switching tabs also closes any open modal or inline editor, as
// neither can outlive the view it belongs to.
func (v *ViewState) SetActiveTab(ctx context.Context, tab string) {
	if !ValidTab(tab) {
		return
	}

	v.mu.Lock()
	v.activeTab = tab
	v.openModal = ""
	v.editor = nil
	v.mu.Unlock()

	if err := v.prefs.SaveActiveTab(ctx, tab); err != nil {
		slog.Warn("persisting active tab failed", "tab", tab, "error", err)
	}
}

// OpenModal opens the named modal, replacing any modal already open.
func (v *ViewState) OpenModal(kind string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.openModal = kind
}

// CloseModal closes whatever modal is open.
func (v *ViewState) CloseModal() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.openModal = ""
}

// OpenModalKind returns the open modal's kind, or "" when none is open.
func (v *ViewState) OpenModalKind() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.openModal
}

// StartEdit opens an inline editor on a row. Opening a second editor
// implicitly closes the first; only one cell is ever in the editing state.
func (v *ViewState) StartEdit(kind EditorKind, rowID int64, draft string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editor = &InlineEditor{Kind: kind, RowID: rowID, Draft: draft}
}

// FinishEdit closes the inline editor, on save or cancel alike.
func (v *ViewState) FinishEdit() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.editor = nil
}

// Editor returns the open inline editor, if any.
func (v *ViewState) Editor() (InlineEditor, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.editor == nil {
		return InlineEditor{}, false
	}
	return *v.editor, true
}
