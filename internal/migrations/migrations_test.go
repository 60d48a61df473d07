package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_ArePaired(t *testing.T) {
	entries, err := fs.ReadDir(MigrationFiles, ".")
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}

	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestMigrationFiles_CreateJournalTable(t *testing.T) {
	up, err := fs.ReadFile(MigrationFiles, "001_create_order_journal.up.sql")
	require.NoError(t, err)

	assert.Contains(t, string(up), "CREATE TABLE IF NOT EXISTS order_journal")
}
