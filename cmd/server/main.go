package main

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/soko/salesreport/internal/api"
	"github.com/soko/salesreport/internal/config"
	"github.com/soko/salesreport/internal/ingestion"
	"github.com/soko/salesreport/internal/report"
	"github.com/soko/salesreport/internal/repository"
)

func main() {
	cfg := config.Load()
	log := config.NewLogger(cfg.LogLevel)

	log.Infof("Initializing database at %s", cfg.DBPath)
	db, err := repository.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to init DB: %v", err)
	}
	defer db.Close()

	// Create repositories.
	sellerRepo := repository.NewSellerRepo(db)
	productRepo := repository.NewProductRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	reportRepo := repository.NewReportRepo(db)

	// Create services.
	reportSvc := report.NewService(log)
	ingestionSvc := ingestion.NewService(
		sellerRepo, productRepo, customerRepo, purchaseRepo, reportRepo, reportSvc, log,
	)

	// Seed the dataset if the store is empty.
	count, err := sellerRepo.Count()
	if err != nil {
		log.Fatalf("Failed to count sellers: %v", err)
	}
	if count == 0 {
		log.Info("Store is empty, seeding dataset from testdata...")
		if err := seedDataset(ingestionSvc, cfg.SeedPath); err != nil {
			log.Warnf("Failed to seed dataset: %v", err)
		}
	} else {
		log.Infof("Store already has %d sellers, skipping seed", count)
	}

	// Create router.
	router := api.NewRouter(
		sellerRepo, productRepo, customerRepo, purchaseRepo, reportRepo, ingestionSvc, log,
	)

	log.Info("Soko Sales Performance Reporter")
	log.Infof("Listening on http://localhost:%s", cfg.Port)
	log.Infof("API base: http://localhost:%s/api/v1", cfg.Port)
	log.Info("Endpoints:")
	log.Info("  POST   /api/v1/datasets/ingest")
	log.Info("  POST   /api/v1/reports/run")
	log.Info("  GET    /api/v1/reports")
	log.Info("  GET    /api/v1/reports/latest")
	log.Info("  GET    /api/v1/reports/{id}")
	log.Info("  GET    /api/v1/reports/{id}/export")
	log.Info("  GET    /api/v1/sellers")
	log.Info("  GET    /api/v1/products")
	log.Info("  GET    /api/v1/purchases")
	log.Info("  GET    /api/v1/dashboard")

	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func seedDataset(svc *ingestion.Service, seedPath string) error {
	// Try multiple possible locations for testdata.
	candidates := []string{seedPath}

	// Also try to find relative to the executable.
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		candidates = append(candidates,
			filepath.Join(dir, seedPath),
			filepath.Join(dir, "..", "..", seedPath),
		)
	}

	var data []byte
	var loadErr error
	for _, path := range candidates {
		data, loadErr = os.ReadFile(path)
		if loadErr == nil {
			break
		}
	}
	if loadErr != nil {
		return loadErr
	}

	_, err := svc.Ingest(data, "json")
	return err
}
