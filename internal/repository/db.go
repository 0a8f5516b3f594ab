package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens (or creates) a SQLite database at the given path and ensures
// all required tables exist. Pass ":memory:" for an in-memory database.
func InitDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sellers (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			position INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS customers (
			id TEXT PRIMARY KEY,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS products (
			sku TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			purchase_price REAL NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS ingest_batches (
			id TEXT PRIMARY KEY,
			format TEXT NOT NULL,
			file_hash TEXT UNIQUE NOT NULL,
			record_count INTEGER NOT NULL,
			ingested_at DATETIME NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS purchase_records (
			id TEXT PRIMARY KEY,
			batch_id TEXT,
			seller_id TEXT NOT NULL,
			total_amount REAL NOT NULL,
			ingested_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_purchase_records_seller ON purchase_records(seller_id)`,
		`CREATE INDEX IF NOT EXISTS idx_purchase_records_batch ON purchase_records(batch_id)`,

		`CREATE TABLE IF NOT EXISTS line_items (
			record_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			sku TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			sale_price REAL NOT NULL,
			discount REAL NOT NULL DEFAULT 0,
			PRIMARY KEY (record_id, position),
			FOREIGN KEY (record_id) REFERENCES purchase_records(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_line_items_sku ON line_items(sku)`,

		`CREATE TABLE IF NOT EXISTS report_runs (
			id TEXT PRIMARY KEY,
			generated_at DATETIME NOT NULL,
			seller_count INTEGER NOT NULL,
			records_processed INTEGER NOT NULL,
			items_processed INTEGER NOT NULL,
			skipped_records INTEGER NOT NULL,
			skipped_items INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_report_runs_generated ON report_runs(generated_at)`,

		`CREATE TABLE IF NOT EXISTS report_entries (
			run_id TEXT NOT NULL,
			rank INTEGER NOT NULL,
			seller_id TEXT NOT NULL,
			name TEXT NOT NULL,
			revenue REAL NOT NULL,
			profit REAL NOT NULL,
			sales_count INTEGER NOT NULL,
			bonus REAL NOT NULL,
			top_products TEXT NOT NULL,
			PRIMARY KEY (run_id, rank),
			FOREIGN KEY (run_id) REFERENCES report_runs(id)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:60], err)
		}
	}

	return nil
}
