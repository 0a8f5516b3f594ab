// Command generate produces testdata/dataset.json: a deterministic sample
// dataset for seeding the server and exercising the report pipeline,
// including a few receipts with unknown sellers and unknown SKUs.
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/soko/salesreport/internal/domain"
)

func main() {
	rng := rand.New(rand.NewSource(42))
	baseDir := findTestdataDir()

	firstNames := []string{"Amina", "Brian", "Chiamaka", "David", "Esther", "Farai", "Grace", "Hassan"}
	lastNames := []string{"Mwangi", "Okafor", "Dlamini", "Abebe", "Njoroge", "Mensah", "Banda", "Keita"}

	sellers := make([]domain.Seller, 0, 8)
	for i := 0; i < 8; i++ {
		sellers = append(sellers, domain.Seller{
			ID:        fmt.Sprintf("SLR-%03d", i+1),
			FirstName: firstNames[i],
			LastName:  lastNames[i],
		})
	}

	products := make([]domain.Product, 0, 40)
	for i := 1; i <= 40; i++ {
		price := 2 + rng.Float64()*58
		products = append(products, domain.Product{
			SKU:           fmt.Sprintf("SKU_%d", i),
			Name:          fmt.Sprintf("Product %d", i),
			PurchasePrice: math.Round(price*100) / 100,
		})
	}

	customers := make([]domain.Customer, 0, 15)
	for i := 1; i <= 15; i++ {
		customers = append(customers, domain.Customer{
			ID:        fmt.Sprintf("CST-%03d", i),
			FirstName: firstNames[rng.Intn(len(firstNames))],
			LastName:  lastNames[rng.Intn(len(lastNames))],
			Email:     fmt.Sprintf("customer%d@example.com", i),
		})
	}

	var records []domain.PurchaseRecord
	for i := 1; i <= 120; i++ {
		sellerID := sellers[rng.Intn(len(sellers))].ID
		// ~3% of receipts reference a seller the store does not know.
		if rng.Float64() < 0.03 {
			sellerID = fmt.Sprintf("SLR-%03d", 900+rng.Intn(10))
		}

		itemCount := 1 + rng.Intn(4)
		items := make([]domain.LineItem, 0, itemCount)
		total := 0.0
		for j := 0; j < itemCount; j++ {
			sku := fmt.Sprintf("SKU_%d", 1+rng.Intn(len(products)))
			// ~2% of line items reference an unknown SKU.
			if rng.Float64() < 0.02 {
				sku = fmt.Sprintf("SKU_%d", 900+rng.Intn(10))
			}

			qty := 1 + rng.Intn(5)
			salePrice := 5 + rng.Float64()*95
			salePrice = math.Round(salePrice*100) / 100

			var discount float64
			if rng.Float64() < 0.3 {
				discount = float64(5 * (1 + rng.Intn(6))) // 5..30 in steps of 5
			}

			items = append(items, domain.LineItem{
				SKU:       sku,
				Quantity:  qty,
				SalePrice: salePrice,
				Discount:  discount,
			})
			total += salePrice * float64(qty) * (1 - discount/100)
		}

		records = append(records, domain.PurchaseRecord{
			ID:          fmt.Sprintf("PR-%04d", i),
			SellerID:    sellerID,
			TotalAmount: math.Round(total*100) / 100,
			Items:       items,
		})
	}

	ds := domain.Dataset{
		Customers:       customers,
		Products:        products,
		Sellers:         sellers,
		PurchaseRecords: records,
	}

	out := filepath.Join(baseDir, "dataset.json")
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write %s: %v\n", out, err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %s: %d sellers, %d products, %d customers, %d purchase records\n",
		out, len(sellers), len(products), len(customers), len(records))
}

func findTestdataDir() string {
	candidates := []string{"testdata", filepath.Join("..", "..", "testdata"), "."}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			return c
		}
	}
	return "."
}
