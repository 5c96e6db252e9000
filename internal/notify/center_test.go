package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PhucLe22/lms-client/internal/api"
)

func TestCenterIDsAreMonotonic(t *testing.T) {
	c := NewCenter()
	first := c.Success("one")
	second := c.Error("two")
	third := c.Info("three")

	assert.Less(t, first, second)
	assert.Less(t, second, third)
	assert.Len(t, c.Active(), 3)
}

func TestCenterAutoExpiry(t *testing.T) {
	c := NewCenter(WithTTL(20 * time.Millisecond))
	c.Success("ephemeral")
	require.Len(t, c.Active(), 1)

	assert.Eventually(t, func() bool {
		return len(c.Active()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestCenterDismiss(t *testing.T) {
	c := NewCenter()
	id := c.Info("dismiss me")
	keep := c.Info("keep me")

	c.Dismiss(id)

	active := c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, keep, active[0].ID)
}

func TestCenterSubscribeReceivesToasts(t *testing.T) {
	c := NewCenter()
	ch := c.Subscribe()

	c.Error("boom")

	select {
	case toast := <-ch:
		assert.Equal(t, "boom", toast.Message)
		assert.Equal(t, VariantError, toast.Variant)
	case <-time.After(time.Second):
		t.Fatal("no toast delivered")
	}
}

func TestCenterBridgesTransportToastEvents(t *testing.T) {
	c := NewCenter()
	c.Publish(api.Event{Kind: api.EventToast, Variant: api.VariantError, Message: "Too many requests"})

	active := c.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Too many requests", active[0].Message)
	assert.Equal(t, VariantError, active[0].Variant)
}

func TestCenterBridgesSessionExpiry(t *testing.T) {
	c := NewCenter()
	called := 0
	c.SetSessionExpiredHandler(func() { called++ })

	c.Publish(api.Event{Kind: api.EventSessionExpired})
	assert.Equal(t, 1, called)
	// a session-expired event never produces a toast
	assert.Empty(t, c.Active())
}
