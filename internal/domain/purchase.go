package domain

import "time"

// LineItem is one position on a receipt. Discount is a percentage in
// [0, 100]; absent in the input it stays 0.
type LineItem struct {
	SKU       string  `json:"sku" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	SalePrice float64 `json:"sale_price" validate:"gte=0"`
	Discount  float64 `json:"discount" validate:"gte=0,lte=100"`
}

// PurchaseRecord is one receipt: a seller reference plus its ordered
// line items.
type PurchaseRecord struct {
	ID          string     `json:"id"`
	SellerID    string     `json:"seller_id" validate:"required"`
	TotalAmount float64    `json:"total_amount"`
	Items       []LineItem `json:"items" validate:"dive"`
	IngestedAt  time.Time  `json:"ingested_at,omitempty"`
}
