package domain

// Dataset is the full input contract: four named, non-empty collections.
// Customers are unused by the report pipeline but required to be present.
type Dataset struct {
	Customers       []Customer       `json:"customers" validate:"min=1"`
	Products        []Product        `json:"products" validate:"min=1,dive"`
	Sellers         []Seller         `json:"sellers" validate:"min=1,dive"`
	PurchaseRecords []PurchaseRecord `json:"purchase_records" validate:"min=1,dive"`
}
