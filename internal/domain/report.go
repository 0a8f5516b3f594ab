package domain

import "time"

// ProductQuantity is one entry in a seller's best-seller list.
type ProductQuantity struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// ReportEntry is one seller's row in the final ranked report. Revenue and
// profit are rounded to 2 decimal places; Bonus is in the unit of the bonus
// strategy that produced it (a rate for the default schedule).
type ReportEntry struct {
	SellerID    string            `json:"seller_id"`
	Name        string            `json:"name"`
	Revenue     float64           `json:"revenue"`
	Profit      float64           `json:"profit"`
	SalesCount  int               `json:"sales_count"`
	TopProducts []ProductQuantity `json:"top_products"`
	Bonus       float64           `json:"bonus"`
}

// ReportRun is one generated report plus the counters collected while
// producing it.
type ReportRun struct {
	ID               string        `json:"id"`
	GeneratedAt      time.Time     `json:"generated_at"`
	SellerCount      int           `json:"seller_count"`
	RecordsProcessed int           `json:"records_processed"`
	ItemsProcessed   int           `json:"items_processed"`
	SkippedRecords   int           `json:"skipped_records"`
	SkippedItems     int           `json:"skipped_items"`
	Entries          []ReportEntry `json:"entries"`
}
