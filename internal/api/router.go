package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/soko/salesreport/internal/ingestion"
	"github.com/soko/salesreport/internal/repository"
)

// NewRouter creates the Chi router with all API routes mounted.
func NewRouter(
	sellerRepo *repository.SellerRepo,
	productRepo *repository.ProductRepo,
	customerRepo *repository.CustomerRepo,
	purchaseRepo *repository.PurchaseRepo,
	reportRepo *repository.ReportRepo,
	ingestionSvc *ingestion.Service,
	log *logrus.Logger,
) http.Handler {
	h := &Handlers{
		sellerRepo:   sellerRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		purchaseRepo: purchaseRepo,
		reportRepo:   reportRepo,
		ingestionSvc: ingestionSvc,
		log:          log,
	}

	r := chi.NewRouter()

	// Middleware.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		// Ingestion.
		r.Post("/datasets/ingest", h.IngestDataset)

		// Reports.
		r.Post("/reports/run", h.RunReport)
		r.Get("/reports", h.ListReports)
		r.Get("/reports/latest", h.GetLatestReport)
		r.Get("/reports/{id}", h.GetReport)
		r.Get("/reports/{id}/export", h.ExportReport)

		// Reference data.
		r.Get("/sellers", h.ListSellers)
		r.Get("/products", h.ListProducts)
		r.Get("/purchases", h.ListPurchases)

		// Dashboard.
		r.Get("/dashboard", h.GetDashboard)
	})

	return r
}
