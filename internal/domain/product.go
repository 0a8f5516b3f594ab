package domain

// Product is read-only reference data for one stocked item.
// PurchasePrice is the unit cost paid to acquire the item.
type Product struct {
	SKU           string  `json:"sku" validate:"required"`
	Name          string  `json:"name"`
	PurchasePrice float64 `json:"purchase_price" validate:"gte=0"`
}
