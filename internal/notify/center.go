package notify

import (
	"sync"
	"time"

	"github.com/PhucLe22/lms-client/internal/api"
)

// Variant classifies a toast for rendering.
type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantInfo    Variant = "info"
)

// Toast is one transient message.
type Toast struct {
	ID      int64
	Message string
	Variant Variant
}

// DefaultTTL is how long a toast stays active before automatic removal.
const DefaultTTL = 4 * time.Second

// Center queues transient toast messages with auto-expiry. It also
// implements api.Publisher so the HTTP transport can enqueue toasts and
// signal session expiry without touching UI state directly.
type Center struct {
	mu     sync.Mutex
	nextID int64
	ttl    time.Duration
	active []Toast
	subs   []chan Toast

	onSessionExpired func()
}

// Option configures the center.
type Option func(*Center)

// WithTTL overrides the auto-expiry delay.
func WithTTL(ttl time.Duration) Option {
	return func(c *Center) { c.ttl = ttl }
}

// NewCenter builds a notification center.
func NewCenter(opts ...Option) *Center {
	c := &Center{ttl: DefaultTTL}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Success enqueues a success toast.
func (c *Center) Success(message string) int64 { return c.add(message, VariantSuccess) }

// Error enqueues an error toast.
func (c *Center) Error(message string) int64 { return c.add(message, VariantError) }

// Info enqueues an info toast.
func (c *Center) Info(message string) int64 { return c.add(message, VariantInfo) }

func (c *Center) add(message string, variant Variant) int64 {
	c.mu.Lock()
	c.nextID++
	toast := Toast{ID: c.nextID, Message: message, Variant: variant}
	c.active = append(c.active, toast)
	subs := make([]chan Toast, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, sub := range subs {
		select {
		case sub <- toast:
		default:
			// slow subscriber, drop rather than block the caller
		}
	}

	time.AfterFunc(c.ttl, func() { c.Dismiss(toast.ID) })
	return toast.ID
}

// Active returns a snapshot of not-yet-expired toasts.
func (c *Center) Active() []Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Toast, len(c.active))
	copy(out, c.active)
	return out
}

// Dismiss removes a toast before its TTL.
func (c *Center) Dismiss(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, toast := range c.active {
		if toast.ID == id {
			c.active = append(c.active[:i], c.active[i+1:]...)
			return
		}
	}
}

// Subscribe returns a channel delivering each new toast. Intended for a
// renderer goroutine; messages are dropped when the subscriber lags.
func (c *Center) Subscribe() <-chan Toast {
	ch := make(chan Toast, 16)
	c.mu.Lock()
	c.subs = append(c.subs, ch)
	c.mu.Unlock()
	return ch
}

// SetSessionExpiredHandler registers the front-end reaction to a 401
// (typically: navigate to login).
func (c *Center) SetSessionExpiredHandler(fn func()) {
	c.mu.Lock()
	c.onSessionExpired = fn
	c.mu.Unlock()
}

// Publish implements api.Publisher, bridging transport events into toasts.
func (c *Center) Publish(e api.Event) {
	switch e.Kind {
	case api.EventSessionExpired:
		c.mu.Lock()
		fn := c.onSessionExpired
		c.mu.Unlock()
		if fn != nil {
			fn()
		}
	case api.EventToast:
		switch e.Variant {
		case api.VariantSuccess:
			c.Success(e.Message)
		case api.VariantInfo:
			c.Info(e.Message)
		default:
			c.Error(e.Message)
		}
	}
}
