package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierAutoClears(t *testing.T) {
	n := NewNotifier(20 * time.Millisecond)
	n.Success("Saved!")

	note, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "Saved!", note.Message)

	assert.Eventually(t, func() bool {
		_, ok := n.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestNotifierPreemptionRestartsTimer(t *testing.T) {
	n := NewNotifier(40 * time.Millisecond)
	n.Success("first")

	time.Sleep(25 * time.Millisecond)
	n.Error("second")

	// Past the first message's expiry, the second is still up because its
	// own timer started from zero.
	time.Sleep(25 * time.Millisecond)
	note, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "second", note.Message)
	assert.Equal(t, NotificationError, note.Kind)

	assert.Eventually(t, func() bool {
		_, ok := n.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestNotifierDismiss(t *testing.T) {
	n := NewNotifier(time.Hour)
	n.Success("sticky")
	n.Dismiss()

	_, ok := n.Current()
	assert.False(t, ok)
}
