package driven

import "context"

// PrefsStore persists small UI preferences, currently only the active tab.
type PrefsStore interface {
	// SaveActiveTab records the most recently selected tab.
	SaveActiveTab(ctx context.Context, tab string) error
	// ActiveTab returns the recorded tab, or "" when none was saved.
	ActiveTab(ctx context.Context) (string, error)
}
