package storage

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind distinguishes journal rows.
type EntryKind string

const (
	// EntryOrder records an order accepted into the window.
	EntryOrder EntryKind = "order"
	// EntryClear records a delete-all.
	EntryClear EntryKind = "clear"
)

// JournalEntry is one audit row. Amount and OrderTimestamp are only set for EntryOrder.
type JournalEntry struct {
	ID             string
	Kind           EntryKind
	Amount         decimal.Decimal
	OrderTimestamp time.Time
	RecordedAt     time.Time
}

// JournalStore persists audit entries. The journal is write-only: nothing
// reads it back into the statistics window.
type JournalStore interface {
	// SaveEntries writes a batch atomically. Implementations must not retain entries.
	SaveEntries(ctx context.Context, entries []*JournalEntry) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
