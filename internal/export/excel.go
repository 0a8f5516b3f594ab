package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/soko/salesreport/internal/domain"
)

const sheetName = "Sales Performance"

// ReportWorkbook renders a report run as an XLSX workbook, one row per
// ranked seller.
func ReportWorkbook(run *domain.ReportRun) (*excelize.File, error) {
	f := excelize.NewFile()
	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	headers := []string{"Rank", "Seller ID", "Name", "Revenue", "Profit", "Sales Count", "Bonus", "Top Products"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("set header %s: %w", h, err)
		}
	}

	for i, e := range run.Entries {
		row := i + 2
		values := []any{
			i + 1, e.SellerID, e.Name, e.Revenue, e.Profit,
			e.SalesCount, e.Bonus, formatTopProducts(e.TopProducts),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, fmt.Errorf("cell row %d: %w", row, err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, fmt.Errorf("set row %d: %w", row, err)
			}
		}
	}

	return f, nil
}

func formatTopProducts(tops []domain.ProductQuantity) string {
	parts := make([]string, 0, len(tops))
	for _, tp := range tops {
		parts = append(parts, fmt.Sprintf("%s x%d", tp.SKU, tp.Quantity))
	}
	return strings.Join(parts, "; ")
}
