package migrations

import (
	"strings"

	"gorm.io/gorm"
)

// Migration001DuelLookupIndex serves the join lookup: WHERE code = ? AND status = 'waiting'
func Migration001DuelLookupIndex() Migration {
	return Migration{
		ID:   "001_duel_lookup_index",
		Name: "Index duels by code and status",
		Up: func(db *gorm.DB) error {
			return createIndex(db, "duels", "idx_duels_code_status", "code", "status")
		},
	}
}

// createIndex is a no-op when the index already exists
func createIndex(db *gorm.DB, table, name string, columns ...string) error {
	if db.Migrator().HasIndex(table, name) {
		return nil
	}
	return db.Exec("CREATE INDEX " + name + " ON " + table + " (" + strings.Join(columns, ", ") + ")").Error
}
