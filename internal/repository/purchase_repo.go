package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/soko/salesreport/internal/domain"
)

type PurchaseRepo struct {
	db *sql.DB
}

func NewPurchaseRepo(db *sql.DB) *PurchaseRepo {
	return &PurchaseRepo{db: db}
}

// IngestBatch records one ingested file for idempotency checks.
type IngestBatch struct {
	ID          string    `json:"id"`
	Format      string    `json:"format"`
	FileHash    string    `json:"file_hash"`
	RecordCount int       `json:"record_count"`
	IngestedAt  time.Time `json:"ingested_at"`
}

func (r *PurchaseRepo) BatchExistsByHash(hash string) (bool, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM ingest_batches WHERE file_hash = ?", hash,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check batch hash: %w", err)
	}
	return count > 0, nil
}

func (r *PurchaseRepo) InsertBatch(b *IngestBatch) error {
	_, err := r.db.Exec(
		`INSERT INTO ingest_batches (id, format, file_hash, record_count, ingested_at)
		VALUES (?,?,?,?,?)`,
		b.ID, b.Format, b.FileHash, b.RecordCount, b.IngestedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// BulkInsert stores purchase records with their line items. Records whose
// id already exists are skipped whole, items included.
func (r *PurchaseRepo) BulkInsert(records []domain.PurchaseRecord, batchID string) (int, error) {
	inserted := 0
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	recStmt, err := tx.Prepare(
		`INSERT OR IGNORE INTO purchase_records (id, batch_id, seller_id, total_amount, ingested_at)
		VALUES (?,?,?,?,?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare record: %w", err)
	}
	defer recStmt.Close()

	itemStmt, err := tx.Prepare(
		`INSERT INTO line_items (record_id, position, sku, quantity, sale_price, discount)
		VALUES (?,?,?,?,?,?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare item: %w", err)
	}
	defer itemStmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for i := range records {
		rec := &records[i]
		res, err := recStmt.Exec(rec.ID, batchID, rec.SellerID, rec.TotalAmount, now)
		if err != nil {
			return inserted, fmt.Errorf("insert record %d: %w", i, err)
		}
		ra, _ := res.RowsAffected()
		if ra == 0 {
			continue
		}
		for pos, item := range rec.Items {
			if _, err := itemStmt.Exec(rec.ID, pos, item.SKU, item.Quantity, item.SalePrice, item.Discount); err != nil {
				return inserted, fmt.Errorf("insert item %d of record %s: %w", pos, rec.ID, err)
			}
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

func (r *PurchaseRepo) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM purchase_records").Scan(&count)
	return count, err
}

// ListAll returns every purchase record with its line items in stored
// order, for feeding a report run.
func (r *PurchaseRepo) ListAll() ([]domain.PurchaseRecord, error) {
	rows, err := r.db.Query(
		`SELECT id, seller_id, total_amount, ingested_at
		FROM purchase_records ORDER BY ingested_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []domain.PurchaseRecord
	byID := make(map[string]int)
	for rows.Next() {
		var rec domain.PurchaseRecord
		var ingested string
		if err := rows.Scan(&rec.ID, &rec.SellerID, &rec.TotalAmount, &ingested); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, ingested); err == nil {
			rec.IngestedAt = t
		}
		byID[rec.ID] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.db.Query(
		`SELECT record_id, sku, quantity, sale_price, discount
		FROM line_items ORDER BY record_id, position`,
	)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var recID string
		var item domain.LineItem
		if err := itemRows.Scan(&recID, &item.SKU, &item.Quantity, &item.SalePrice, &item.Discount); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		if i, ok := byID[recID]; ok {
			records[i].Items = append(records[i].Items, item)
		}
	}
	return records, itemRows.Err()
}

type PurchaseFilter struct {
	SellerID string
	Page     int
	Limit    int
}

// List returns a page of purchase records (without line items) plus the
// total count for the filter.
func (r *PurchaseRepo) List(f PurchaseFilter) ([]domain.PurchaseRecord, int, error) {
	where := ""
	var args []any
	if f.SellerID != "" {
		where = " WHERE seller_id = ?"
		args = append(args, f.SellerID)
	}

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM purchase_records"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}

	if f.Limit <= 0 {
		f.Limit = 50
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	offset := (f.Page - 1) * f.Limit

	query := "SELECT id, seller_id, total_amount, ingested_at FROM purchase_records" +
		where + " ORDER BY ingested_at, id LIMIT ? OFFSET ?"
	rows, err := r.db.Query(query, append(args, f.Limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var records []domain.PurchaseRecord
	for rows.Next() {
		var rec domain.PurchaseRecord
		var ingested string
		if err := rows.Scan(&rec.ID, &rec.SellerID, &rec.TotalAmount, &ingested); err != nil {
			return nil, 0, fmt.Errorf("scan record: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, ingested); err == nil {
			rec.IngestedAt = t
		}
		records = append(records, rec)
	}
	return records, total, rows.Err()
}
