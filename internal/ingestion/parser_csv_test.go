package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `receipt_id,seller_id,total_amount,sku,quantity,sale_price,discount_pct
PR-1001,SLR-001,76.00,SKU_1,4,9.00,
PR-1001,SLR-001,76.00,SKU_8,2,20.00,
PR-1002,SLR-002,85.00,SKU_10,2,50.00,15
`

func TestParsePurchaseCSV(t *testing.T) {
	records, err := ParsePurchaseCSV([]byte(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "PR-1001", first.ID)
	assert.Equal(t, "SLR-001", first.SellerID)
	assert.Equal(t, 76.0, first.TotalAmount)
	require.Len(t, first.Items, 2)
	assert.Equal(t, "SKU_1", first.Items[0].SKU)
	assert.Equal(t, 4, first.Items[0].Quantity)
	// Blank discount column defaults to 0.
	assert.Zero(t, first.Items[0].Discount)

	second := records[1]
	require.Len(t, second.Items, 1)
	assert.Equal(t, 15.0, second.Items[0].Discount)
}

func TestParsePurchaseCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty file", ""},
		{"header only", "receipt_id,seller_id,total_amount,sku,quantity,sale_price,discount_pct\n"},
		{"short header", "receipt_id,seller_id\n"},
		{"zero quantity", "receipt_id,seller_id,total_amount,sku,quantity,sale_price,discount_pct\nPR-1,SLR-1,5,SKU_1,0,5,\n"},
		{"bad price", "receipt_id,seller_id,total_amount,sku,quantity,sale_price,discount_pct\nPR-1,SLR-1,5,SKU_1,1,abc,\n"},
		{"discount out of range", "receipt_id,seller_id,total_amount,sku,quantity,sale_price,discount_pct\nPR-1,SLR-1,5,SKU_1,1,5,120\n"},
		{"missing seller", "receipt_id,seller_id,total_amount,sku,quantity,sale_price,discount_pct\nPR-1,,5,SKU_1,1,5,\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePurchaseCSV([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
