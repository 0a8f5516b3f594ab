package ingestion

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/soko/salesreport/internal/domain"
	"github.com/soko/salesreport/internal/report"
	"github.com/soko/salesreport/internal/repository"
)

// IngestResult is returned from a successful ingestion.
type IngestResult struct {
	BatchID           string `json:"batch_id"`
	SellersIngested   int    `json:"sellers_ingested"`
	ProductsIngested  int    `json:"products_ingested"`
	CustomersIngested int    `json:"customers_ingested"`
	PurchasesIngested int    `json:"purchases_ingested"`
	DuplicatesSkipped int    `json:"duplicates_skipped"`
	ReportRunID       string `json:"report_run_id,omitempty"`
}

// Service handles ingestion of dataset and purchase-batch files, and runs
// reports over the stored data.
type Service struct {
	sellerRepo   *repository.SellerRepo
	productRepo  *repository.ProductRepo
	customerRepo *repository.CustomerRepo
	purchaseRepo *repository.PurchaseRepo
	reportRepo   *repository.ReportRepo
	reportSvc    *report.Service
	log          *logrus.Logger
}

// NewService creates a new ingestion service.
func NewService(
	sellerRepo *repository.SellerRepo,
	productRepo *repository.ProductRepo,
	customerRepo *repository.CustomerRepo,
	purchaseRepo *repository.PurchaseRepo,
	reportRepo *repository.ReportRepo,
	reportSvc *report.Service,
	log *logrus.Logger,
) *Service {
	return &Service{
		sellerRepo:   sellerRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		purchaseRepo: purchaseRepo,
		reportRepo:   reportRepo,
		reportSvc:    reportSvc,
		log:          log,
	}
}

// Ingest parses an uploaded file, stores its contents and triggers a report
// run over everything in the store. Re-uploading a byte-identical file is a
// no-op.
//
// format must be one of: json (full dataset), csv (purchase batch).
func (s *Service) Ingest(data []byte, format string) (*IngestResult, error) {
	// Idempotency check via file hash.
	hash := fmt.Sprintf("%x", sha256.Sum256(data))
	exists, err := s.purchaseRepo.BatchExistsByHash(hash)
	if err != nil {
		return nil, fmt.Errorf("check hash: %w", err)
	}
	if exists {
		return &IngestResult{BatchID: "already-ingested"}, nil
	}

	batchID := fmt.Sprintf("BATCH-%s", uuid.NewString())
	res := &IngestResult{BatchID: batchID}

	var records []domain.PurchaseRecord
	switch format {
	case "json":
		ds, err := ParseDatasetJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		if res.SellersIngested, err = s.sellerRepo.BulkInsert(ds.Sellers); err != nil {
			return nil, fmt.Errorf("insert sellers: %w", err)
		}
		if res.ProductsIngested, err = s.productRepo.BulkInsert(ds.Products); err != nil {
			return nil, fmt.Errorf("insert products: %w", err)
		}
		if res.CustomersIngested, err = s.customerRepo.BulkInsert(ds.Customers); err != nil {
			return nil, fmt.Errorf("insert customers: %w", err)
		}
		records = ds.PurchaseRecords
	case "csv":
		records, err = ParsePurchaseCSV(data)
		if err != nil {
			return nil, fmt.Errorf("parse csv: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	inserted, err := s.purchaseRepo.BulkInsert(records, batchID)
	if err != nil {
		return nil, fmt.Errorf("insert purchases: %w", err)
	}
	res.PurchasesIngested = inserted
	res.DuplicatesSkipped = len(records) - inserted

	if err := s.purchaseRepo.InsertBatch(&repository.IngestBatch{
		ID:          batchID,
		Format:      format,
		FileHash:    hash,
		RecordCount: len(records),
		IngestedAt:  time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("insert batch: %w", err)
	}

	s.log.Infof("[ingestion] batch %s: %d purchase records (%d new) from %s file",
		batchID, len(records), inserted, format)

	// Regenerate the report over the full store.
	run, err := s.RunReport(report.DefaultOptions())
	if err != nil {
		// Do not fail ingestion if the report cannot be produced yet
		// (e.g. a csv batch arriving before any reference data).
		s.log.Warnf("[ingestion] report run failed after ingest: %v", err)
		return res, nil
	}
	res.ReportRunID = run.ID

	return res, nil
}

// RunReport loads the stored dataset, generates a report with the given
// options and persists the run.
func (s *Service) RunReport(opts report.Options) (*domain.ReportRun, error) {
	ds, err := s.loadDataset()
	if err != nil {
		return nil, err
	}

	run, err := s.reportSvc.Generate(ds, opts)
	if err != nil {
		return nil, err
	}

	if err := s.reportRepo.SaveRun(run); err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}
	return run, nil
}

func (s *Service) loadDataset() (*domain.Dataset, error) {
	sellers, err := s.sellerRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("load sellers: %w", err)
	}
	products, err := s.productRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	customers, err := s.customerRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	records, err := s.purchaseRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("load purchases: %w", err)
	}

	return &domain.Dataset{
		Customers:       customers,
		Products:        products,
		Sellers:         sellers,
		PurchaseRecords: records,
	}, nil
}
