package report

import (
	"github.com/shopspring/decimal"

	"github.com/soko/salesreport/internal/domain"
)

// RevenueStrategy computes the monetary revenue of one purchased line item.
// Implementations must be deterministic and side-effect-free; an error
// return aborts the whole aggregation pass.
type RevenueStrategy interface {
	Revenue(item domain.LineItem, product domain.Product) (decimal.Decimal, error)
}

// RevenueFunc adapts a plain function to RevenueStrategy.
type RevenueFunc func(item domain.LineItem, product domain.Product) (decimal.Decimal, error)

func (f RevenueFunc) Revenue(item domain.LineItem, product domain.Product) (decimal.Decimal, error) {
	return f(item, product)
}

// BonusStrategy computes a seller's bonus from its 0-based rank after the
// profit sort and the total number of ranked sellers. Errors are isolated
// to the seller they occurred on.
type BonusStrategy interface {
	Bonus(index, total int, stats *SellerStats) (float64, error)
}

// BonusFunc adapts a plain function to BonusStrategy.
type BonusFunc func(index, total int, stats *SellerStats) (float64, error)

func (f BonusFunc) Bonus(index, total int, stats *SellerStats) (float64, error) {
	return f(index, total, stats)
}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// DefaultRevenue returns the reference revenue strategy:
// sale_price * quantity * (1 - discount/100), rounded half-up to 2 decimal
// places.
func DefaultRevenue() RevenueStrategy {
	return RevenueFunc(func(item domain.LineItem, _ domain.Product) (decimal.Decimal, error) {
		price := decimal.NewFromFloat(item.SalePrice)
		qty := decimal.NewFromInt(int64(item.Quantity))
		factor := one.Sub(decimal.NewFromFloat(item.Discount).Div(hundred))
		return price.Mul(qty).Mul(factor).Round(2), nil
	})
}

// DefaultBonus returns the reference rank-based bonus schedule, expressed
// as a rate: last place pays 0, first place 0.15, second and third 0.10,
// everyone in between 0.05. The last-place rule is checked first, so a
// sole seller is both first and last and receives 0.
func DefaultBonus() BonusStrategy {
	return BonusFunc(func(index, total int, _ *SellerStats) (float64, error) {
		switch {
		case index == total-1:
			return 0, nil
		case index == 0:
			return 0.15, nil
		case index <= 2:
			return 0.10, nil
		default:
			return 0.05, nil
		}
	})
}
