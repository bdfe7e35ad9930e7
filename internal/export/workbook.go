// Package export writes dashboard tables to spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/garyjia/bill-collection-dashboard/internal/render"
)

// BillsSheet is the sheet name of the bills export
const BillsSheet = "Bills"

// exportColumns are the bill table columns without the Actions column
var exportColumns = []string{"Bill Number", "Customer", "Phone", "Amount", "Due Date", "Status"}

// BillsWorkbook writes the bills table as an xlsx workbook
type BillsWorkbook struct {
	logger *zap.Logger
}

// NewBillsWorkbook creates a BillsWorkbook
func NewBillsWorkbook(logger *zap.Logger) *BillsWorkbook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BillsWorkbook{logger: logger}
}

// Write renders table to w. An empty table produces the header row only.
func (b *BillsWorkbook) Write(w io.Writer, table render.BillTable) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", BillsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E7FF"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, title := range exportColumns {
		b.setCell(f, cellName(i, 1), title)
	}
	last := cellName(len(exportColumns)-1, 1)
	if err := f.SetCellStyle(BillsSheet, "A1", last, header); err != nil {
		b.logger.Warn("Failed to style header", zap.Error(err))
	}

	for r, row := range table.Rows {
		values := []string{
			row.BillNumber,
			row.CustomerName,
			row.CustomerPhone,
			row.Amount,
			row.DueDate,
			row.Status.Label,
		}
		for c, v := range values {
			b.setCell(f, cellName(c, r+2), v)
		}
	}

	if err := f.SetColWidth(BillsSheet, "A", "F", 18); err != nil {
		b.logger.Warn("Failed to set column width", zap.Error(err))
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	b.logger.Info("Bills workbook written",
		zap.String("filter", table.Filter),
		zap.Int("rows", len(table.Rows)))
	return nil
}

// setCell sets a cell value on the bills sheet
func (b *BillsWorkbook) setCell(f *excelize.File, cell, value string) {
	if err := f.SetCellValue(BillsSheet, cell, value); err != nil {
		b.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}
