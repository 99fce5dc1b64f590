package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXExporter renders one worksheet per sheet, mirroring the day tabs of the shared spreadsheet.
type XLSXExporter struct{}

// NewXLSXExporter constructs an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Render builds the workbook.
func (e *XLSXExporter) Render(sheets []Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one sheet")
	}
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx header style: %w", err)
	}
	cellStyle, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return nil, fmt.Errorf("xlsx cell style: %w", err)
	}

	for i, sheet := range sheets {
		if len(sheet.Data.Headers) == 0 {
			return nil, fmt.Errorf("sheet %q has no headers", sheet.Name)
		}
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return nil, fmt.Errorf("rename sheet %q: %w", sheet.Name, err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, fmt.Errorf("add sheet %q: %w", sheet.Name, err)
		}
		if err := writeSheet(f, sheet, headerStyle, cellStyle); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle, cellStyle int) error {
	headers := make([]interface{}, len(sheet.Data.Headers))
	for i, h := range sheet.Data.Headers {
		headers[i] = h
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &headers); err != nil {
		return fmt.Errorf("write %s headers: %w", sheet.Name, err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet.Name, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("style %s headers: %w", sheet.Name, err)
	}

	for r, row := range sheet.Data.Rows {
		values := make([]interface{}, len(sheet.Data.Headers))
		for i, h := range sheet.Data.Headers {
			values[i] = row[h]
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet.Name, r+2, err)
		}
	}
	if len(sheet.Data.Rows) > 0 {
		end := fmt.Sprintf("%s%d", lastCol, len(sheet.Data.Rows)+1)
		if err := f.SetCellStyle(sheet.Name, "A2", end, cellStyle); err != nil {
			return fmt.Errorf("style %s rows: %w", sheet.Name, err)
		}
	}
	return f.SetColWidth(sheet.Name, "A", lastCol, 26)
}
