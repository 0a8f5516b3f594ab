package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/soko/salesreport/internal/export"
	"github.com/soko/salesreport/internal/ingestion"
	"github.com/soko/salesreport/internal/report"
	"github.com/soko/salesreport/internal/repository"
)

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	sellerRepo   *repository.SellerRepo
	productRepo  *repository.ProductRepo
	customerRepo *repository.CustomerRepo
	purchaseRepo *repository.PurchaseRepo
	reportRepo   *repository.ReportRepo
	ingestionSvc *ingestion.Service
	log          *logrus.Logger
}

// --- helpers ---

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("[api] encode error: %v", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return def
	}
	return v
}

// --- IngestDataset ---

func (h *Handlers) IngestDataset(w http.ResponseWriter, r *http.Request) {
	// Accept multipart form.
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	format := r.FormValue("format")
	if format == "" {
		h.writeError(w, http.StatusBadRequest, "format is required")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "file field is required: "+err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "read file: "+err.Error())
		return
	}

	result, err := h.ingestionSvc.Ingest(data, format)
	if err != nil {
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, result)
}

// --- RunReport ---

func (h *Handlers) RunReport(w http.ResponseWriter, r *http.Request) {
	run, err := h.ingestionSvc.RunReport(report.DefaultOptions())
	if err != nil {
		if report.IsValidationError(err) {
			h.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, run)
}

// --- ListReports ---

func (h *Handlers) ListReports(w http.ResponseWriter, r *http.Request) {
	limit := parseIntDefault(r.URL.Query().Get("limit"), 20)
	runs, err := h.reportRepo.ListRuns(limit)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"reports": runs,
		"limit":   limit,
	})
}

// --- GetLatestReport ---

func (h *Handlers) GetLatestReport(w http.ResponseWriter, r *http.Request) {
	run, err := h.reportRepo.GetLatestRun()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if run == nil {
		h.writeError(w, http.StatusNotFound, "no report has been generated yet")
		return
	}

	h.writeJSON(w, http.StatusOK, run)
}

// --- GetReport ---

func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := h.reportRepo.GetRun(id)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if run == nil {
		h.writeError(w, http.StatusNotFound, "report not found")
		return
	}

	h.writeJSON(w, http.StatusOK, run)
}

// --- ExportReport ---

func (h *Handlers) ExportReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, err := h.reportRepo.GetRun(id)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if run == nil {
		h.writeError(w, http.StatusNotFound, "report not found")
		return
	}

	f, err := export.ReportWorkbook(run)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=report-%s.xlsx", run.ID))
	if err := f.Write(w); err != nil {
		h.log.Errorf("[api] write workbook: %v", err)
	}
}

// --- ListSellers ---

func (h *Handlers) ListSellers(w http.ResponseWriter, r *http.Request) {
	sellers, err := h.sellerRepo.ListAll()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"sellers": sellers,
		"total":   len(sellers),
	})
}

// --- ListProducts ---

func (h *Handlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.productRepo.ListAll()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"products": products,
		"total":    len(products),
	})
}

// --- ListPurchases ---

func (h *Handlers) ListPurchases(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.PurchaseFilter{
		SellerID: q.Get("seller_id"),
		Page:     parseIntDefault(q.Get("page"), 1),
		Limit:    parseIntDefault(q.Get("limit"), 50),
	}

	records, total, err := h.purchaseRepo.List(filter)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"purchases": records,
		"total":     total,
		"page":      filter.Page,
		"limit":     filter.Limit,
	})
}

// --- GetDashboard ---

func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	sellerCount, err := h.sellerRepo.Count()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	productCount, err := h.productRepo.Count()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	customerCount, err := h.customerRepo.Count()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	purchaseCount, err := h.purchaseRepo.Count()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dashboard := map[string]any{
		"store": map[string]int{
			"sellers":          sellerCount,
			"products":         productCount,
			"customers":        customerCount,
			"purchase_records": purchaseCount,
		},
	}

	// The latest run summary, when one exists.
	if run, err := h.reportRepo.GetLatestRun(); err == nil && run != nil {
		var topSeller *string
		if len(run.Entries) > 0 {
			topSeller = &run.Entries[0].Name
		}
		dashboard["latest_report"] = map[string]any{
			"id":                run.ID,
			"generated_at":      run.GeneratedAt,
			"seller_count":      run.SellerCount,
			"records_processed": run.RecordsProcessed,
			"items_processed":   run.ItemsProcessed,
			"skipped_records":   run.SkippedRecords,
			"skipped_items":     run.SkippedItems,
			"top_seller":        topSeller,
		}
	}

	h.writeJSON(w, http.StatusOK, dashboard)
}
