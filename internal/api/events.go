package api

// EventKind discriminates out-of-band client events.
type EventKind int

const (
	// EventToast asks the notification layer to show a transient message.
	EventToast EventKind = iota
	// EventSessionExpired signals a 401; the front-end should drop to login.
	EventSessionExpired
)

// Variant mirrors the toast variants understood by the notification layer.
type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantInfo    Variant = "info"
)

// Event is published by the transport for conditions it cannot surface
// through a return value alone (global session expiry, retry exhaustion).
type Event struct {
	Kind    EventKind
	Variant Variant
	Message string
}

// Publisher receives transport events. The notification layer implements it;
// the transport has no dependency on any UI state.
type Publisher interface {
	Publish(Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(Event) {}
