package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/soko/salesreport/internal/domain"
)

type ReportRepo struct {
	db *sql.DB
}

func NewReportRepo(db *sql.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

// SaveRun persists a report run with all its entries. The per-seller top
// products are stored as a JSON column; they are bounded (at most 10) and
// only ever read back whole.
func (r *ReportRepo) SaveRun(run *domain.ReportRun) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO report_runs
		(id, generated_at, seller_count, records_processed, items_processed, skipped_records, skipped_items)
		VALUES (?,?,?,?,?,?,?)`,
		run.ID, run.GeneratedAt.Format(time.RFC3339), run.SellerCount,
		run.RecordsProcessed, run.ItemsProcessed, run.SkippedRecords, run.SkippedItems,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO report_entries
		(run_id, rank, seller_id, name, revenue, profit, sales_count, bonus, top_products)
		VALUES (?,?,?,?,?,?,?,?,?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare entry: %w", err)
	}
	defer stmt.Close()

	for i, e := range run.Entries {
		tops, err := json.Marshal(e.TopProducts)
		if err != nil {
			return fmt.Errorf("marshal top products for %s: %w", e.SellerID, err)
		}
		if _, err := stmt.Exec(run.ID, i, e.SellerID, e.Name, e.Revenue, e.Profit, e.SalesCount, e.Bonus, string(tops)); err != nil {
			return fmt.Errorf("insert entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetRun loads one run with its entries in rank order.
func (r *ReportRepo) GetRun(id string) (*domain.ReportRun, error) {
	run, err := r.scanRun(r.db.QueryRow(
		`SELECT id, generated_at, seller_count, records_processed, items_processed, skipped_records, skipped_items
		FROM report_runs WHERE id = ?`, id,
	))
	if err != nil || run == nil {
		return nil, err
	}
	if err := r.loadEntries(run); err != nil {
		return nil, err
	}
	return run, nil
}

// GetLatestRun loads the most recently stored run with its entries.
// Insertion order (rowid) disambiguates runs generated within the same
// second.
func (r *ReportRepo) GetLatestRun() (*domain.ReportRun, error) {
	run, err := r.scanRun(r.db.QueryRow(
		`SELECT id, generated_at, seller_count, records_processed, items_processed, skipped_records, skipped_items
		FROM report_runs ORDER BY rowid DESC LIMIT 1`,
	))
	if err != nil || run == nil {
		return nil, err
	}
	if err := r.loadEntries(run); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns run metadata (no entries), newest first.
func (r *ReportRepo) ListRuns(limit int) ([]domain.ReportRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(
		`SELECT id, generated_at, seller_count, records_processed, items_processed, skipped_records, skipped_items
		FROM report_runs ORDER BY rowid DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.ReportRun
	for rows.Next() {
		run, err := r.scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ReportRepo) scanRun(row rowScanner) (*domain.ReportRun, error) {
	var run domain.ReportRun
	var generated string
	err := row.Scan(&run.ID, &generated, &run.SellerCount, &run.RecordsProcessed,
		&run.ItemsProcessed, &run.SkippedRecords, &run.SkippedItems)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, generated); err == nil {
		run.GeneratedAt = t
	}
	return &run, nil
}

func (r *ReportRepo) loadEntries(run *domain.ReportRun) error {
	rows, err := r.db.Query(
		`SELECT seller_id, name, revenue, profit, sales_count, bonus, top_products
		FROM report_entries WHERE run_id = ? ORDER BY rank`, run.ID,
	)
	if err != nil {
		return fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.ReportEntry
		var tops string
		if err := rows.Scan(&e.SellerID, &e.Name, &e.Revenue, &e.Profit, &e.SalesCount, &e.Bonus, &tops); err != nil {
			return fmt.Errorf("scan entry: %w", err)
		}
		if err := json.Unmarshal([]byte(tops), &e.TopProducts); err != nil {
			return fmt.Errorf("unmarshal top products for %s: %w", e.SellerID, err)
		}
		run.Entries = append(run.Entries, e)
	}
	return rows.Err()
}
