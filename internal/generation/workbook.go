package generation

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
)

// BuildWorkbook writes the code records into an xlsx sheet mirroring the
// columns customers import into their inventory tools.
func BuildWorkbook(sheet string, records []CodeRecord) (_ []byte, err error) {
	if sheet == "" {
		sheet = "Barcode_Data"
	}

	wb := excelize.NewFile()
	defer func() {
		err = multierr.Append(err, wb.Close())
	}()

	index, err := wb.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	wb.SetActiveSheet(index)
	if err := wb.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	headers := []string{"Barcode ID", "Type", "Data", "Generated At"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := wb.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, record := range records {
		values := []any{
			record.ID,
			record.Type,
			record.Data,
			record.GeneratedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := wb.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
