package repository

import (
	"database/sql"
	"fmt"

	"github.com/soko/salesreport/internal/domain"
)

type SellerRepo struct {
	db *sql.DB
}

func NewSellerRepo(db *sql.DB) *SellerRepo {
	return &SellerRepo{db: db}
}

// BulkInsert stores sellers, preserving their input order in the position
// column so report tie-breaks stay deterministic across restarts.
func (r *SellerRepo) BulkInsert(sellers []domain.Seller) (int, error) {
	inserted := 0
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var maxPos sql.NullInt64
	if err := tx.QueryRow("SELECT MAX(position) FROM sellers").Scan(&maxPos); err != nil {
		return 0, fmt.Errorf("max position: %w", err)
	}
	next := int(maxPos.Int64) + 1

	stmt, err := tx.Prepare(
		`INSERT OR IGNORE INTO sellers (id, first_name, last_name, position)
		VALUES (?,?,?,?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i := range sellers {
		s := &sellers[i]
		res, err := stmt.Exec(s.ID, s.FirstName, s.LastName, next)
		if err != nil {
			return inserted, fmt.Errorf("insert row %d: %w", i, err)
		}
		ra, _ := res.RowsAffected()
		inserted += int(ra)
		next++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

func (r *SellerRepo) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM sellers").Scan(&count)
	return count, err
}

// ListAll returns every seller in stored input order.
func (r *SellerRepo) ListAll() ([]domain.Seller, error) {
	rows, err := r.db.Query(
		"SELECT id, first_name, last_name FROM sellers ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("query sellers: %w", err)
	}
	defer rows.Close()

	var sellers []domain.Seller
	for rows.Next() {
		var s domain.Seller
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName); err != nil {
			return nil, fmt.Errorf("scan seller: %w", err)
		}
		sellers = append(sellers, s)
	}
	return sellers, rows.Err()
}

func (r *SellerRepo) GetByID(id string) (*domain.Seller, error) {
	var s domain.Seller
	err := r.db.QueryRow(
		"SELECT id, first_name, last_name FROM sellers WHERE id = ?", id,
	).Scan(&s.ID, &s.FirstName, &s.LastName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get seller: %w", err)
	}
	return &s, nil
}
