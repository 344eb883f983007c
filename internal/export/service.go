package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/gotvi/gotvi-backend/internal/entity"
	"github.com/gotvi/gotvi-backend/internal/repository"
)

// Service is a tiny façade over the receipt repository that produces XLSX
// bytes for exports.
type Service struct {
	receipts repository.ReceiptRepository
	logger   *slog.Logger
}

func NewService(receipts repository.ReceiptRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{receipts: receipts, logger: logger}
}

// ExportReceiptsXLSX returns an XLSX workbook (as bytes) with one row per
// receipt line item for the given user and date window.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
// If neither is provided   -> all receipts for the user.
func (s *Service) ExportReceiptsXLSX(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	var fromDate, toDate *time.Time
	if from != nil {
		f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
		fromDate = &f
	}
	if to != nil {
		t := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, time.UTC)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		today := time.Now().UTC()
		t := time.Date(today.Year(), today.Month(), today.Day(), 23, 59, 59, 0, time.UTC)
		toDate = &t
	}

	receipts, err := s.receipts.ListByUser(ctx, userID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query receipts: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Receipts"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Processed At",
		"Receipt ID",
		"Kind",
		"Item",
		"Quantity",
		"Unit",
		"Price",
		"Receipt Total",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	row := 2
	for _, stored := range receipts {
		for _, item := range stored.Receipt.FoodItems {
			if err := s.writeRow(f, sheet, row, stored, "food", item); err != nil {
				return nil, err
			}
			row++
		}
		for _, item := range stored.Receipt.Beverages {
			if err := s.writeRow(f, sheet, row, stored, "beverage", item); err != nil {
				return nil, err
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.receipts.ok",
		"user_id", userID,
		"receipts", len(receipts),
		"rows", row-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func (s *Service) writeRow(f *excelize.File, sheet string, row int, stored entity.StoredReceipt, kind string, item entity.ReceiptItem) error {
	values := []any{
		stored.ProcessedAt.Format("2006-01-02 15:04"),
		stored.ID.String(),
		kind,
		item.Name,
		derefFloat(item.Quantity),
		derefString(item.Unit),
		derefFloat(item.Price),
		stored.Receipt.TotalAmount,
	}
	for i, v := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

func derefFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func derefString(v *string) any {
	if v == nil {
		return ""
	}
	return *v
}
