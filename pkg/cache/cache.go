package cache

import (
	"context"
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/domain/ledger"
	"github.com/google/uuid"
)

// EntryCache caches terminal ledger entries for the read path. A miss is
// reported as (nil, nil).
type EntryCache interface {
	Get(ctx context.Context, id uuid.UUID) (*ledger.Entry, error)
	Set(ctx context.Context, entry *ledger.Entry, ttl time.Duration) error
	Delete(ctx context.Context, id uuid.UUID) error
}
