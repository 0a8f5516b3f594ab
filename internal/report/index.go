package report

import (
	"github.com/shopspring/decimal"

	"github.com/soko/salesreport/internal/domain"
)

// SellerStats is the mutable accumulator for one seller. It is written
// only during the aggregation fold and read by the ranker afterwards.
// The sum of ProductsSold quantities need not equal SalesCount:
// SalesCount counts receipts, not items.
type SellerStats struct {
	SellerID     string
	Name         string
	Revenue      decimal.Decimal
	Profit       decimal.Decimal
	SalesCount   int
	ProductsSold map[string]int
}

// Indexes holds the lookup structures the aggregation fold runs against.
type Indexes struct {
	Sellers  map[string]*SellerStats
	Products map[string]domain.Product

	order []string // seller ids in dataset order; ranking tie-break
}

// BuildIndexes creates the seller accumulators and the product lookup from
// the reference collections. Empty or malformed collections are fatal.
func BuildIndexes(sellers []domain.Seller, products []domain.Product) (*Indexes, error) {
	if len(sellers) == 0 {
		return nil, validationErrorf("sellers collection is missing or empty")
	}
	if len(products) == 0 {
		return nil, validationErrorf("products collection is missing or empty")
	}

	idx := &Indexes{
		Sellers:  make(map[string]*SellerStats, len(sellers)),
		Products: make(map[string]domain.Product, len(products)),
		order:    make([]string, 0, len(sellers)),
	}

	for i, s := range sellers {
		if s.ID == "" {
			return nil, validationErrorf("seller at position %d has no id", i)
		}
		if _, dup := idx.Sellers[s.ID]; dup {
			return nil, validationErrorf("duplicate seller id %q", s.ID)
		}
		idx.Sellers[s.ID] = &SellerStats{
			SellerID:     s.ID,
			Name:         s.DisplayName(),
			Revenue:      decimal.Zero,
			Profit:       decimal.Zero,
			ProductsSold: make(map[string]int),
		}
		idx.order = append(idx.order, s.ID)
	}

	for i, p := range products {
		if p.SKU == "" {
			return nil, validationErrorf("product at position %d has no sku", i)
		}
		if p.PurchasePrice < 0 {
			return nil, validationErrorf("product %q has a negative purchase price", p.SKU)
		}
		idx.Products[p.SKU] = p
	}

	return idx, nil
}

// InOrder returns the accumulators in original dataset order. The ranker's
// stable sort relies on this to break equal-profit ties deterministically.
func (idx *Indexes) InOrder() []*SellerStats {
	out := make([]*SellerStats, 0, len(idx.order))
	for _, id := range idx.order {
		out = append(out, idx.Sellers[id])
	}
	return out
}
