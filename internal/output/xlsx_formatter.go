package output

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rpgo/financial-planner/internal/domain"
)

// XLSXFormatter writes the detailed columns to a single-sheet workbook.
// Amounts are stored as numbers so spreadsheet formulas work on them.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string      { return "xlsx" }
func (x XLSXFormatter) Extension() string { return "xlsx" }

const xlsxSheet = "Simulation"

func (x XLSXFormatter) Format(results []domain.PeriodResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return nil, err
	}

	header := append(append([]string(nil), SummaryHeader...), "Living Costs", "Housing Costs")
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(xlsxSheet, cell, h); err != nil {
			return nil, err
		}
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return nil, err
	}

	for i, r := range results {
		row := i + 2
		values := []any{
			r.Year,
			r.TotalIncome.InexactFloat64(),
			r.TotalTaxes.InexactFloat64(),
			r.TotalMandatoryExpenses.InexactFloat64(),
			r.Leftover.InexactFloat64(),
			r.NaiveDiscretionary.InexactFloat64(),
			r.LivingCosts.InexactFloat64(),
			r.HousingCosts.InexactFloat64(),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return nil, err
			}
		}
		if err := f.SetCellStyle(xlsxSheet, fmt.Sprintf("B%d", row), fmt.Sprintf("H%d", row), moneyStyle); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(xlsxSheet, "A", "H", 18); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
