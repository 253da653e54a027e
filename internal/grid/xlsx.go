package grid

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXLoader reads one worksheet of an Excel workbook.
type XLSXLoader struct {
	Sheet string // empty selects the first sheet
}

// Format returns the loader name.
func (l *XLSXLoader) Format() string { return "xlsx" }

// Load reads the formatted text of every cell in the worksheet.
func (l *XLSXLoader) Load(r io.Reader) (*Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := l.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return New(rows), nil
}
