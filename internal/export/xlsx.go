// Package export renders an aligned return table as a spreadsheet.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/guttosm/b3dash/internal/domain/models"
)

const (
	SheetName   = "Rentabilidade"
	DateHeader  = "Data"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// built-in number format "0.00"
	numFmtTwoDecimals = 2
)

// WriteXLSX writes table to w as a single sheet: a Data column followed by one
// column per series. Cells without a value are left blank.
func WriteXLSX(w io.Writer, table models.AlignedTable) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, 0, len(table.Columns)+1)
	header = append(header, DateHeader)
	for _, c := range table.Columns {
		header = append(header, models.DisplayTicker(c))
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range table.Rows {
		row := i + 2
		if err := setCell(f, 1, row, r.Date.Format(models.DateLayout)); err != nil {
			return err
		}
		for j, col := range table.Columns {
			v, ok := table.Value(i, col)
			if !ok {
				continue
			}
			if err := setCell(f, j+2, row, v); err != nil {
				return err
			}
		}
	}

	if len(table.Columns) > 0 && len(table.Rows) > 0 {
		style, err := f.NewStyle(&excelize.Style{NumFmt: numFmtTwoDecimals})
		if err != nil {
			return fmt.Errorf("style: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(len(table.Columns)+1, len(table.Rows)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetName, "B2", last, style); err != nil {
			return fmt.Errorf("apply style: %w", err)
		}
	}
	if err := f.SetColWidth(SheetName, "A", "A", 12); err != nil {
		return err
	}
	if err := f.SetPanes(SheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, cell, v); err != nil {
		return fmt.Errorf("cell %s: %w", cell, err)
	}
	return nil
}
