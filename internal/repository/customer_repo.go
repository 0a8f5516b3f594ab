package repository

import (
	"database/sql"
	"fmt"

	"github.com/soko/salesreport/internal/domain"
)

// CustomerRepo stores the customer collection. The report pipeline never
// reads customers; they are persisted so a dataset reloaded from the store
// still satisfies the four-collection input contract.
type CustomerRepo struct {
	db *sql.DB
}

func NewCustomerRepo(db *sql.DB) *CustomerRepo {
	return &CustomerRepo{db: db}
}

func (r *CustomerRepo) BulkInsert(customers []domain.Customer) (int, error) {
	inserted := 0
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT OR IGNORE INTO customers (id, first_name, last_name, email)
		VALUES (?,?,?,?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i := range customers {
		c := &customers[i]
		res, err := stmt.Exec(c.ID, c.FirstName, c.LastName, c.Email)
		if err != nil {
			return inserted, fmt.Errorf("insert row %d: %w", i, err)
		}
		ra, _ := res.RowsAffected()
		inserted += int(ra)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

func (r *CustomerRepo) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM customers").Scan(&count)
	return count, err
}

func (r *CustomerRepo) ListAll() ([]domain.Customer, error) {
	rows, err := r.db.Query("SELECT id, first_name, last_name, email FROM customers ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}
