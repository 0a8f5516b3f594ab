package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/soko/salesreport/internal/domain"
)

// Options carries the two pluggable strategies. Both are required.
type Options struct {
	Revenue RevenueStrategy
	Bonus   BonusStrategy
}

// DefaultOptions returns the reference strategies.
func DefaultOptions() Options {
	return Options{
		Revenue: DefaultRevenue(),
		Bonus:   DefaultBonus(),
	}
}

// Service generates per-seller performance reports. It holds no state
// between runs; Generate is a pure function of its inputs.
type Service struct {
	log *logrus.Logger
}

// NewService creates a new report service.
func NewService(log *logrus.Logger) *Service {
	return &Service{log: log}
}

// Generate validates the dataset and options, then runs the full pipeline:
// index construction, aggregation fold, ranking. All failures before the
// fold are ValidationErrors; see Aggregate and Rank for the in-pipeline
// failure semantics.
func (s *Service) Generate(ds *domain.Dataset, opts Options) (*domain.ReportRun, error) {
	if opts.Revenue == nil {
		return nil, validationErrorf("options: revenue strategy is required")
	}
	if opts.Bonus == nil {
		return nil, validationErrorf("options: bonus strategy is required")
	}
	if ds == nil {
		return nil, validationErrorf("dataset is required")
	}
	if len(ds.Customers) == 0 {
		return nil, validationErrorf("customers collection is missing or empty")
	}
	if len(ds.PurchaseRecords) == 0 {
		return nil, validationErrorf("purchase_records collection is missing or empty")
	}

	idx, err := BuildIndexes(ds.Sellers, ds.Products)
	if err != nil {
		return nil, err
	}

	agg, err := Aggregate(ds.PurchaseRecords, idx, opts.Revenue, s.log)
	if err != nil {
		return nil, err
	}

	entries, err := Rank(idx.InOrder(), opts.Bonus, s.log)
	if err != nil {
		return nil, err
	}

	run := &domain.ReportRun{
		ID:               uuid.NewString(),
		GeneratedAt:      time.Now().UTC(),
		SellerCount:      len(entries),
		RecordsProcessed: agg.RecordsProcessed,
		ItemsProcessed:   agg.ItemsProcessed,
		SkippedRecords:   agg.SkippedRecords,
		SkippedItems:     agg.SkippedItems,
		Entries:          entries,
	}

	s.log.Infof("[report] run %s: sellers=%d receipts=%d items=%d skipped_records=%d skipped_items=%d",
		run.ID, run.SellerCount, run.RecordsProcessed, run.ItemsProcessed,
		run.SkippedRecords, run.SkippedItems)

	return run, nil
}
