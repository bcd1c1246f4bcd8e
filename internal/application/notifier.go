package application

import (
	"sync"
	"time"
)

// DefaultNotificationTTL is how long a notification stays up before it
// clears itself.
const DefaultNotificationTTL = 5 * time.Second

// NotificationKind distinguishes success banners from error banners.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a transient banner message.
type Notification struct {
	Message string
	Kind    NotificationKind
	ShownAt time.Time
}

// Notifier holds at most one live notification. A new message preempts the
// previous one and restarts the expiry timer; expiry or explicit dismissal
// clears the banner.
type Notifier struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *Notification
	timer   *time.Timer
}

// NewNotifier creates a Notifier with the given time to live. Zero means
// DefaultNotificationTTL.
func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &Notifier{ttl: ttl}
}

// Success shows a success banner.
func (n *Notifier) Success(message string) {
	n.show(message, NotificationSuccess)
}

// Error shows an error banner.
func (n *Notifier) Error(message string) {
	n.show(message, NotificationError)
}

func (n *Notifier) show(message string, kind NotificationKind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	shown := &Notification{Message: message, Kind: kind, ShownAt: time.Now()}
	n.current = shown
	n.timer = time.AfterFunc(n.ttl, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		// Only clear if no newer notification preempted this one.
		if n.current == shown {
			n.current = nil
		}
	})
}

// Current returns the live notification, if any.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}

// Dismiss clears the banner immediately.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.current = nil
}
