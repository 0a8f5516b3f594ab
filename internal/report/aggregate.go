package report

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/soko/salesreport/internal/domain"
)

// AggregateResult summarises one aggregation pass.
type AggregateResult struct {
	RecordsProcessed int `json:"records_processed"`
	ItemsProcessed   int `json:"items_processed"`
	SkippedRecords   int `json:"skipped_records"`
	SkippedItems     int `json:"skipped_items"`
}

// Aggregate folds the purchase records into the seller accumulators.
//
// A record with an unknown seller is skipped whole; a line item with an
// unknown SKU is skipped alone while the rest of its receipt still
// processes. Both are counted, logged and non-fatal. SalesCount counts
// receipts with a known seller regardless of how many of their items
// survived. The pass is fatal only when not a single line item could be
// processed.
func Aggregate(records []domain.PurchaseRecord, idx *Indexes, revenue RevenueStrategy, log *logrus.Logger) (*AggregateResult, error) {
	res := &AggregateResult{}

	for _, rec := range records {
		stats, ok := idx.Sellers[rec.SellerID]
		if !ok {
			res.SkippedRecords++
			log.Warnf("[report] skipping receipt %s: unknown seller %s", rec.ID, rec.SellerID)
			continue
		}

		for _, item := range rec.Items {
			product, ok := idx.Products[item.SKU]
			if !ok {
				res.SkippedItems++
				log.Warnf("[report] skipping line item on receipt %s: unknown sku %s", rec.ID, item.SKU)
				continue
			}

			itemRevenue, err := revenue.Revenue(item, product)
			if err != nil {
				return nil, fmt.Errorf("revenue strategy on sku %s (receipt %s): %w", item.SKU, rec.ID, err)
			}
			cost := decimal.NewFromFloat(product.PurchasePrice).Mul(decimal.NewFromInt(int64(item.Quantity)))

			stats.Revenue = stats.Revenue.Add(itemRevenue)
			stats.Profit = stats.Profit.Add(itemRevenue.Sub(cost))
			stats.ProductsSold[item.SKU] += item.Quantity
			res.ItemsProcessed++
		}

		stats.SalesCount++
		res.RecordsProcessed++
	}

	if res.ItemsProcessed == 0 {
		return nil, validationErrorf("no line items could be processed from %d purchase records", len(records))
	}

	for _, stats := range idx.Sellers {
		stats.Revenue = stats.Revenue.Round(2)
		stats.Profit = stats.Profit.Round(2)
	}

	return res, nil
}
