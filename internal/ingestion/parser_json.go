package ingestion

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/soko/salesreport/internal/domain"
)

var validate = validator.New()

// ParseDatasetJSON parses a full dataset file: the four named collections
// (customers, products, sellers, purchase_records). The payload is checked
// against the contract before anything is stored: every collection must be
// present and non-empty, reference data must carry its required fields.
func ParseDatasetJSON(data []byte) (*domain.Dataset, error) {
	var ds domain.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("unmarshal dataset: %w", err)
	}
	if err := validate.Struct(&ds); err != nil {
		return nil, fmt.Errorf("dataset failed validation: %w", err)
	}

	// Receipts without an id cannot be deduplicated in the store.
	for i := range ds.PurchaseRecords {
		if ds.PurchaseRecords[i].ID == "" {
			ds.PurchaseRecords[i].ID = fmt.Sprintf("PR-%04d", i+1)
		}
	}

	return &ds, nil
}
