package postgres

// SQL queries for the order journal

const (
	// queryInsertJournalEntry appends one audit row.
	// ON CONFLICT DO NOTHING keeps a retried batch from failing on rows already written.
	queryInsertJournalEntry = `
		INSERT INTO order_journal (
			id, kind, amount, order_timestamp, recorded_at
		)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`

	// queryJournalTableExists checks that migrations created the journal table.
	queryJournalTableExists = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_name = 'order_journal'
		)
	`
)
