package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
//
// Both inventory lists share the records table; seq keeps insertion order
// within a list.
const schema = `
CREATE TABLE IF NOT EXISTS records (
    seq              INTEGER PRIMARY KEY AUTOINCREMENT,
    id               TEXT NOT NULL UNIQUE,
    list             TEXT NOT NULL CHECK (list IN ('confirmed', 'draft')),
    model            TEXT NOT NULL DEFAULT '',
    condition        TEXT NOT NULL DEFAULT '',
    purchase_price   TEXT NOT NULL DEFAULT '',
    purchase_date    TEXT,
    serial_number    TEXT NOT NULL DEFAULT '',
    color            TEXT NOT NULL DEFAULT '',
    controller_count TEXT NOT NULL DEFAULT '',
    has_warranty     INTEGER NOT NULL DEFAULT 0,
    has_receipt      INTEGER NOT NULL DEFAULT 0,
    photo_links      TEXT NOT NULL DEFAULT '',
    accessories      INTEGER NOT NULL DEFAULT 0,
    notes            TEXT NOT NULL DEFAULT '',
    created_at       DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_records_list ON records(list, seq);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
