package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soko/salesreport/internal/domain"
	"github.com/soko/salesreport/internal/report"
)

func TestBuildIndexes(t *testing.T) {
	sellers := []domain.Seller{
		{ID: "SLR-001", FirstName: "Amina", LastName: "Mwangi"},
		{ID: "SLR-002", FirstName: "Brian", LastName: "Okafor"},
	}
	products := []domain.Product{
		{SKU: "SKU_1", PurchasePrice: 4.5},
	}

	idx, err := report.BuildIndexes(sellers, products)
	require.NoError(t, err)

	require.Len(t, idx.Sellers, 2)
	stats := idx.Sellers["SLR-001"]
	require.NotNil(t, stats)
	assert.Equal(t, "Amina Mwangi", stats.Name)
	assert.True(t, stats.Revenue.IsZero())
	assert.True(t, stats.Profit.IsZero())
	assert.Zero(t, stats.SalesCount)
	assert.Empty(t, stats.ProductsSold)

	assert.Equal(t, 4.5, idx.Products["SKU_1"].PurchasePrice)

	order := idx.InOrder()
	require.Len(t, order, 2)
	assert.Equal(t, "SLR-001", order[0].SellerID)
	assert.Equal(t, "SLR-002", order[1].SellerID)
}

func TestBuildIndexes_Validation(t *testing.T) {
	seller := domain.Seller{ID: "SLR-001", FirstName: "Amina"}
	product := domain.Product{SKU: "SKU_1", PurchasePrice: 1}

	tests := []struct {
		name     string
		sellers  []domain.Seller
		products []domain.Product
	}{
		{"empty sellers", nil, []domain.Product{product}},
		{"empty products", []domain.Seller{seller}, nil},
		{"seller without id", []domain.Seller{{FirstName: "X"}}, []domain.Product{product}},
		{"duplicate seller id", []domain.Seller{seller, seller}, []domain.Product{product}},
		{"product without sku", []domain.Seller{seller}, []domain.Product{{PurchasePrice: 1}}},
		{"negative purchase price", []domain.Seller{seller}, []domain.Product{{SKU: "SKU_1", PurchasePrice: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := report.BuildIndexes(tt.sellers, tt.products)
			require.Error(t, err)
			assert.True(t, report.IsValidationError(err), "expected ValidationError, got %v", err)
		})
	}
}
