package report

import (
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/soko/salesreport/internal/domain"
)

// TopProductLimit caps the per-seller best-seller list.
const TopProductLimit = 10

// Rank produces the final report from the accumulators: sellers with at
// least one receipt, sorted by profit descending (stable, so equal profits
// keep the order of the input slice), each with its rank-based bonus and
// its top products.
//
// A bonus strategy error is isolated: the seller keeps its place with a
// zero bonus and no product breakdown, and the run continues.
func Rank(stats []*SellerStats, bonus BonusStrategy, log *logrus.Logger) ([]domain.ReportEntry, error) {
	ranked := make([]*SellerStats, 0, len(stats))
	for _, s := range stats {
		if s.SalesCount > 0 {
			ranked = append(ranked, s)
		}
	}
	if len(ranked) == 0 {
		return nil, validationErrorf("no sellers with sales to rank")
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Profit.GreaterThan(ranked[j].Profit)
	})

	total := len(ranked)
	entries := make([]domain.ReportEntry, 0, total)
	for i, s := range ranked {
		entry := domain.ReportEntry{
			SellerID:   s.SellerID,
			Name:       s.Name,
			Revenue:    s.Revenue.Round(2).InexactFloat64(),
			Profit:     s.Profit.Round(2).InexactFloat64(),
			SalesCount: s.SalesCount,
		}

		b, err := bonus.Bonus(i, total, s)
		if err != nil {
			log.Warnf("[report] bonus strategy failed for seller %s (rank %d): %v", s.SellerID, i, err)
			entry.Bonus = 0
			entry.TopProducts = []domain.ProductQuantity{}
			entries = append(entries, entry)
			continue
		}

		entry.Bonus = b
		entry.TopProducts = topProducts(s.ProductsSold, TopProductLimit)
		entries = append(entries, entry)
	}

	return entries, nil
}

// topProducts orders the quantity map: quantity descending, ties broken by
// ascending SKU with the numeric suffix compared as a number, so SKU_12
// sorts before SKU_100.
func topProducts(sold map[string]int, limit int) []domain.ProductQuantity {
	pairs := make([]domain.ProductQuantity, 0, len(sold))
	for sku, qty := range sold {
		pairs = append(pairs, domain.ProductQuantity{SKU: sku, Quantity: qty})
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Quantity != pairs[j].Quantity {
			return pairs[i].Quantity > pairs[j].Quantity
		}
		return skuLess(pairs[i].SKU, pairs[j].SKU)
	})

	if len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}

func skuLess(a, b string) bool {
	ap, an, aok := splitNumericSuffix(a)
	bp, bn, bok := splitNumericSuffix(b)
	if aok && bok && ap == bp {
		return an < bn
	}
	return a < b
}

// splitNumericSuffix splits "SKU_12" into ("SKU_", 12, true). SKUs without
// trailing digits report ok=false and fall back to plain string order.
func splitNumericSuffix(s string) (prefix string, n int, ok bool) {
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) {
		return s, 0, false
	}
	n, err := strconv.Atoi(s[i:])
	if err != nil {
		return s, 0, false
	}
	return s[:i], n, true
}
