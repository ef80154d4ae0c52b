package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"pos-kemasan/apperr"
	"pos-kemasan/logger"
	"pos-kemasan/models"
	"pos-kemasan/repositories"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ImportColumns is the expected header row of a material sheet.
var ImportColumns = []string{"NAME", "UNIT", "CATEGORY", "LOW_STOCK_THRESHOLD", "INITIAL_STOCK"}

type MaterialImportResult struct {
	TotalRows     int      `json:"total_rows"`
	SuccessCount  int      `json:"success_count"`
	SkippedCount  int      `json:"skipped_count"`
	ErrorCount    int      `json:"error_count"`
	SkippedItems  []string `json:"skipped_items"`
	ErrorMessages []string `json:"error_messages"`
}

// Import reads the first sheet of an xlsx workbook and creates one material
// per row. Existing names are skipped and invalid rows reported; the rows that
// pass are committed together.
func (s *MaterialService) Import(ctx context.Context, r io.Reader, actor Actor) (*MaterialImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.Validation("file", "Gagal membaca file Excel.")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.Validation("file", "File Excel tidak memiliki sheet.")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperr.Validation("file", "Gagal membaca baris Excel.")
	}
	if len(rows) < 2 {
		return nil, apperr.Validation("file", "File Excel harus berisi header dan minimal satu baris data.")
	}

	result := &MaterialImportResult{
		TotalRows:     len(rows) - 1,
		SkippedItems:  []string{},
		ErrorMessages: []string{},
	}
	rowError := func(rowNum int, format string, args ...interface{}) {
		result.ErrorCount++
		result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("Row %d: ", rowNum)+fmt.Sprintf(format, args...))
	}

	var created []*models.Material
	err = s.store.Transaction(ctx, func(tx *repositories.Store) error {
		created = created[:0]
		seen := map[string]bool{}
		for i, row := range rows[1:] {
			rowNum := i + 2

			if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
				continue
			}
			for len(row) < len(ImportColumns) {
				row = append(row, "")
			}

			name := strings.TrimSpace(row[0])
			unit := strings.TrimSpace(row[1])
			categoryName := strings.TrimSpace(row[2])
			if unit == "" {
				rowError(rowNum, "UNIT is required")
				continue
			}

			threshold, err := parseQuantity(row[3])
			if err != nil {
				rowError(rowNum, "invalid LOW_STOCK_THRESHOLD '%s'%s", row[3], quantityHint(err))
				continue
			}
			opening, err := parseQuantity(row[4])
			if err != nil {
				rowError(rowNum, "invalid INITIAL_STOCK '%s'%s", row[4], quantityHint(err))
				continue
			}

			key := strings.ToLower(name)
			if seen[key] {
				result.SkippedCount++
				result.SkippedItems = append(result.SkippedItems, name)
				continue
			}
			taken, err := tx.Materials.NameTaken(ctx, name, 0)
			if err != nil {
				return err
			}
			if taken {
				result.SkippedCount++
				result.SkippedItems = append(result.SkippedItems, name)
				continue
			}

			material := &models.Material{Name: name, Unit: unit, LowStockThreshold: threshold}
			if categoryName != "" {
				category, err := tx.Categories.GetByName(ctx, categoryName)
				if err != nil {
					if apperr.KindOf(err) == apperr.KindNotFound {
						rowError(rowNum, "unknown CATEGORY '%s'", categoryName)
						continue
					}
					return err
				}
				material.CategoryID = &category.ID
			}

			if err := s.createMaterial(ctx, tx, material, opening, actor); err != nil {
				return err
			}
			seen[key] = true
			created = append(created, material)
			result.SuccessCount++
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Storage("import materials", err)
	}
	s.recordOpeningStock(created...)

	logger.FromCtx(ctx).Info("materials imported",
		"total", result.TotalRows, "created", result.SuccessCount,
		"skipped", result.SkippedCount, "errors", result.ErrorCount)
	return result, nil
}

func quantityHint(err error) string {
	if errors.Is(err, errAmbiguousQuantity) {
		return ", write the number without thousands separators"
	}
	return ""
}

// groupedNumber matches cells such as "1.000" or "12,500" where the
// separator may be a thousands separator rather than a decimal point.
var groupedNumber = regexp.MustCompile(`^[1-9][0-9]{0,2}([.,][0-9]{3})+$`)

var errAmbiguousQuantity = errors.New("ambiguous thousands separator")

// parseQuantity reads a non-negative decimal cell. Empty cells are zero.
// Either "." or "," is accepted as the decimal point, but cells that could
// be thousand-grouped are rejected instead of guessed.
func parseQuantity(cell string) (decimal.Decimal, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return decimal.Zero, nil
	}
	if groupedNumber.MatchString(cell) {
		return decimal.Zero, errAmbiguousQuantity
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(cell, ",", "."))
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative quantity %s", d)
	}
	return d, nil
}
