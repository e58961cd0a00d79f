package handler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/domain/events"
	"github.com/amirasaad/fintech-ledger/pkg/eventbus"
	"golang.org/x/sync/singleflight"
)

// KeyExtractor extracts an idempotency key from an event.
type KeyExtractor func(events.Event) string

// DefaultIdempotencyTTL is how long a processed key is remembered.
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyTracker tracks processed events by key. Keys expire after the
// tracker's TTL; expired keys are swept at most once per TTL, on Store.
type IdempotencyTracker struct {
	mu        sync.Mutex
	processed map[string]time.Time
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
	inflight  singleflight.Group
}

// NewIdempotencyTracker creates a tracker remembering keys for DefaultIdempotencyTTL.
func NewIdempotencyTracker() *IdempotencyTracker {
	return NewIdempotencyTrackerWithTTL(DefaultIdempotencyTTL)
}

// NewIdempotencyTrackerWithTTL creates a tracker remembering keys for ttl.
// A non-positive ttl falls back to DefaultIdempotencyTTL.
func NewIdempotencyTrackerWithTTL(ttl time.Duration) *IdempotencyTracker {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &IdempotencyTracker{
		processed: make(map[string]time.Time),
		ttl:       ttl,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

// Store marks a key as processed.
func (t *IdempotencyTracker) Store(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.processed[key] = now.Add(t.ttl)
	if now.Sub(t.lastSweep) < t.ttl {
		return
	}
	for k, expiresAt := range t.processed {
		if !now.Before(expiresAt) {
			delete(t.processed, k)
		}
	}
	t.lastSweep = now
}

// Processed reports whether key has been handled successfully within the TTL.
func (t *IdempotencyTracker) Processed(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	expiresAt, ok := t.processed[key]
	if !ok {
		return false
	}
	if !t.now().Before(expiresAt) {
		delete(t.processed, key)
		return false
	}
	return true
}

// ByEventID keys events by their emitted id, so redeliveries of the same
// message from a stream or topic are handled once.
func ByEventID(e events.Event) string {
	if ided, ok := e.(interface{ EventID() string }); ok {
		return ided.EventID()
	}
	return ""
}

// WithIdempotency wraps a handler so each key is handled successfully at most
// once. Concurrent deliveries of one key share a single in-flight attempt; a
// failed attempt leaves the key unprocessed.
func WithIdempotency(
	handler eventbus.HandlerFunc,
	tracker *IdempotencyTracker,
	keyExtractor KeyExtractor,
	handlerName string,
	logger *slog.Logger,
) eventbus.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, e events.Event) error {
		key := keyExtractor(e)
		if key == "" {
			return handler(ctx, e)
		}
		log := logger.With(
			"handler", handlerName,
			"event_type", e.Type(),
			"idempotency_key", key,
		)
		if tracker.Processed(key) {
			log.Info("🔁 [SKIP] Event already processed")
			return nil
		}

		_, err, _ := tracker.inflight.Do(key, func() (any, error) {
			if tracker.Processed(key) {
				return nil, nil
			}
			if err := handler(ctx, e); err != nil {
				return nil, err
			}
			tracker.Store(key)
			return nil, nil
		})
		return err
	}
}
