package postgres

import (
	"database/sql"
	"fmt"

	"github.com/kasunkula/middys-assignment/internal/core/storage"
	"github.com/shopspring/decimal"
)

// journalArgs builds the insert arguments for one entry.
// Clear entries carry no order, so amount and order_timestamp are NULL.
func journalArgs(e *storage.JournalEntry) ([]interface{}, error) {
	switch e.Kind {
	case storage.EntryOrder:
		return []interface{}{
			e.ID,
			string(e.Kind),
			decimal.NullDecimal{Decimal: e.Amount, Valid: true},
			sql.NullTime{Time: e.OrderTimestamp.UTC(), Valid: true},
			e.RecordedAt.UTC(),
		}, nil
	case storage.EntryClear:
		return []interface{}{
			e.ID,
			string(e.Kind),
			decimal.NullDecimal{},
			sql.NullTime{},
			e.RecordedAt.UTC(),
		}, nil
	default:
		return nil, fmt.Errorf("unknown journal entry kind %q", e.Kind)
	}
}
