package report_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soko/salesreport/internal/domain"
	"github.com/soko/salesreport/internal/report"
)

func singleSellerDataset() *domain.Dataset {
	return &domain.Dataset{
		Customers: []domain.Customer{{ID: "CST-001"}},
		Products:  []domain.Product{{SKU: "SKU_1", PurchasePrice: 10}},
		Sellers:   []domain.Seller{{ID: "SLR-001", FirstName: "Amina", LastName: "Mwangi"}},
		PurchaseRecords: []domain.PurchaseRecord{
			{ID: "PR-1", SellerID: "SLR-001", Items: []domain.LineItem{
				{SKU: "SKU_1", Quantity: 2, SalePrice: 20},
			}},
		},
	}
}

func TestGenerate_SingleSellerScenario(t *testing.T) {
	svc := report.NewService(testLogger())

	run, err := svc.Generate(singleSellerDataset(), report.DefaultOptions())
	require.NoError(t, err)

	require.Len(t, run.Entries, 1)
	e := run.Entries[0]
	assert.Equal(t, "SLR-001", e.SellerID)
	assert.Equal(t, "Amina Mwangi", e.Name)
	assert.Equal(t, 40.0, e.Revenue)
	assert.Equal(t, 20.0, e.Profit)
	assert.Equal(t, 1, e.SalesCount)
	// The sole seller is also last and gets no bonus.
	assert.Equal(t, 0.0, e.Bonus)
	assert.Equal(t, []domain.ProductQuantity{{SKU: "SKU_1", Quantity: 2}}, e.TopProducts)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 1, run.SellerCount)
	assert.Equal(t, 1, run.RecordsProcessed)
	assert.Equal(t, 1, run.ItemsProcessed)
}

func TestGenerate_BonusScheduleAcrossFiveSellers(t *testing.T) {
	ds := &domain.Dataset{
		Customers: []domain.Customer{{ID: "CST-001"}},
		Products:  []domain.Product{{SKU: "SKU_1", PurchasePrice: 10}},
	}
	// Seller i sells at a higher price than seller i+1, so profit strictly
	// decreases with input order.
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("SLR-%03d", i+1)
		ds.Sellers = append(ds.Sellers, domain.Seller{ID: id, FirstName: id})
		ds.PurchaseRecords = append(ds.PurchaseRecords, domain.PurchaseRecord{
			ID:       fmt.Sprintf("PR-%d", i+1),
			SellerID: id,
			Items: []domain.LineItem{
				{SKU: "SKU_1", Quantity: 1, SalePrice: float64(100 - 10*i)},
			},
		})
	}

	svc := report.NewService(testLogger())
	run, err := svc.Generate(ds, report.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, run.Entries, 5)

	wantBonus := []float64{0.15, 0.10, 0.10, 0.05, 0}
	for i, e := range run.Entries {
		assert.Equal(t, fmt.Sprintf("SLR-%03d", i+1), e.SellerID)
		assert.Equal(t, wantBonus[i], e.Bonus, "rank %d", i)
	}
}

func TestGenerate_ValidatesOptionsAndDataset(t *testing.T) {
	svc := report.NewService(testLogger())
	opts := report.DefaultOptions()

	tests := []struct {
		name string
		ds   *domain.Dataset
		opts report.Options
	}{
		{"nil revenue strategy", singleSellerDataset(), report.Options{Bonus: opts.Bonus}},
		{"nil bonus strategy", singleSellerDataset(), report.Options{Revenue: opts.Revenue}},
		{"nil dataset", nil, opts},
		{"empty customers", func() *domain.Dataset {
			ds := singleSellerDataset()
			ds.Customers = nil
			return ds
		}(), opts},
		{"empty sellers", func() *domain.Dataset {
			ds := singleSellerDataset()
			ds.Sellers = nil
			return ds
		}(), opts},
		{"empty products", func() *domain.Dataset {
			ds := singleSellerDataset()
			ds.Products = nil
			return ds
		}(), opts},
		{"empty purchase records", func() *domain.Dataset {
			ds := singleSellerDataset()
			ds.PurchaseRecords = nil
			return ds
		}(), opts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(tt.ds, tt.opts)
			require.Error(t, err)
			assert.True(t, report.IsValidationError(err), "expected ValidationError, got %v", err)
		})
	}
}

// Two runs over the same input must produce identical entries.
func TestGenerate_Idempotent(t *testing.T) {
	svc := report.NewService(testLogger())

	first, err := svc.Generate(singleSellerDataset(), report.DefaultOptions())
	require.NoError(t, err)
	second, err := svc.Generate(singleSellerDataset(), report.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, first.Entries, second.Entries)
	assert.Equal(t, first.ItemsProcessed, second.ItemsProcessed)
}
