package eventbus

import (
	"context"

	"github.com/amirasaad/fintech-ledger/pkg/domain/events"
)

// HandlerFunc consumes one event delivered by a Bus.
type HandlerFunc func(ctx context.Context, event events.Event) error

// Bus publishes ledger outcome events and dispatches them to registered handlers.
type Bus interface {
	Emit(ctx context.Context, event events.Event) error
	Register(eventType events.EventType, handler HandlerFunc)
}
