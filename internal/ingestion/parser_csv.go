package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/soko/salesreport/internal/domain"
)

// ParsePurchaseCSV parses a purchase-record batch in the flat CSV format
// used by the POS export. One row per line item; consecutive rows with the
// same receipt_id belong to one receipt. Reference data (sellers, products)
// must already be in the store.
//
// Expected header:
//
//	receipt_id,seller_id,total_amount,sku,quantity,sale_price,discount_pct
func ParsePurchaseCSV(data []byte) ([]domain.PurchaseRecord, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 7 {
		return nil, fmt.Errorf("expected 7 columns, got %d", len(header))
	}

	var records []domain.PurchaseRecord
	var current *domain.PurchaseRecord
	lineNum := 1

	for {
		lineNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if len(row) < 7 {
			continue
		}

		receiptID := strings.TrimSpace(row[0])
		sellerID := strings.TrimSpace(row[1])
		totalStr := strings.TrimSpace(row[2])
		sku := strings.TrimSpace(row[3])
		qtyStr := strings.TrimSpace(row[4])
		priceStr := strings.TrimSpace(row[5])
		discountStr := strings.TrimSpace(row[6])

		if receiptID == "" || sellerID == "" {
			return nil, fmt.Errorf("line %d: receipt_id and seller_id are required", lineNum)
		}

		total, err := strconv.ParseFloat(totalStr, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d total_amount: %w", lineNum, err)
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			return nil, fmt.Errorf("line %d quantity: %w", lineNum, err)
		}
		if qty <= 0 {
			return nil, fmt.Errorf("line %d: quantity must be positive, got %d", lineNum, qty)
		}
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d sale_price: %w", lineNum, err)
		}

		// Discount defaults to 0 when the column is blank.
		var discount float64
		if discountStr != "" {
			discount, err = strconv.ParseFloat(discountStr, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d discount_pct: %w", lineNum, err)
			}
			if discount < 0 || discount > 100 {
				return nil, fmt.Errorf("line %d: discount_pct out of range: %v", lineNum, discount)
			}
		}

		if current == nil || current.ID != receiptID {
			records = append(records, domain.PurchaseRecord{
				ID:          receiptID,
				SellerID:    sellerID,
				TotalAmount: total,
			})
			current = &records[len(records)-1]
		}

		current.Items = append(current.Items, domain.LineItem{
			SKU:       sku,
			Quantity:  qty,
			SalePrice: price,
			Discount:  discount,
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no purchase records in file")
	}

	return records, nil
}
