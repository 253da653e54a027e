// Package header recovers the logical schema of a survey grid: which rows
// hold the year and type labels, where data starts, and what each column means.
package header

import (
	"errors"
	"fmt"

	"github.com/ecomstat/ecomclean/internal/grid"
	"github.com/ecomstat/ecomclean/internal/model"
	"github.com/ecomstat/ecomclean/internal/naics"
)

// ErrNoYearColumns means the grid layout does not match the expected schema.
var ErrNoYearColumns = errors.New("no year columns resolved")

// Auto marks a layout offset that is detected from content.
const Auto = -1

// minYearTokens is how many year cells make a row the year row.
const minYearTokens = 2

// Layout fixes parts of the header band. Offsets set to Auto are detected.
type Layout struct {
	YearRow     int
	TypeRow     int
	DataStart   int
	ScanRows    int // rows searched for the year and type rows
	CodeCol     int // NAICS code column, or model.NoColumn
	IndustryCol int
}

// DefaultLayout detects all offsets with the code in column 0 and the
// description in column 1.
func DefaultLayout() Layout {
	return Layout{
		YearRow:     Auto,
		TypeRow:     Auto,
		DataStart:   Auto,
		ScanRows:    12,
		CodeCol:     0,
		IndustryCol: 1,
	}
}

// Resolution is the recovered schema of a grid.
type Resolution struct {
	YearRow   int
	TypeRow   int
	DataStart int
	Labels    []model.HeaderLabel
}

// Years returns the distinct years of labeled columns in column order.
func (r Resolution) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for _, l := range r.Labels {
		if l.Kind == model.ColumnIgnored || seen[l.Year] {
			continue
		}
		seen[l.Year] = true
		years = append(years, l.Year)
	}
	return years
}

type state int

const (
	seekYearRow state = iota
	seekTypeRow
	seekDataStart
	resolved
)

// Resolve walks the header band and labels every column of g.
func Resolve(g *grid.Grid, layout Layout) (Resolution, error) {
	res := Resolution{YearRow: Auto, TypeRow: Auto, DataStart: Auto}
	band := min(layout.ScanRows, g.NumRows())
	if layout.ScanRows <= 0 {
		band = g.NumRows()
	}

	for st := seekYearRow; st != resolved; {
		switch st {
		case seekYearRow:
			row, err := locate(g, layout.YearRow, 0, band, isYearRow)
			if err != nil {
				return res, fmt.Errorf("%w: year row: %w", ErrNoYearColumns, err)
			}
			res.YearRow = row
			st = seekTypeRow

		case seekTypeRow:
			row, err := locate(g, layout.TypeRow, res.YearRow+1, band, isTypeRow)
			if err != nil {
				return res, fmt.Errorf("%w: type row: %w", ErrNoYearColumns, err)
			}
			res.TypeRow = row
			st = seekDataStart

		case seekDataStart:
			row, err := locate(g, layout.DataStart, res.TypeRow+1, g.NumRows(), dataRowTest(layout))
			if err != nil {
				// A header-only grid has an empty data region.
				row = g.NumRows()
			}
			res.DataStart = row
			st = resolved
		}
	}

	skip := map[int]bool{layout.IndustryCol: true}
	if layout.CodeCol != model.NoColumn {
		skip[layout.CodeCol] = true
	}
	res.Labels = Label(g.Row(res.YearRow), g.Row(res.TypeRow), skip)

	if len(res.Years()) == 0 {
		return res, fmt.Errorf("%w: year row %d and type row %d label no Total or E-commerce column",
			ErrNoYearColumns, res.YearRow+1, res.TypeRow+1)
	}
	return res, nil
}

var errNotFound = errors.New("not found")

// locate returns the explicit offset when set, otherwise the first row in
// [from, to) accepted by match.
func locate(g *grid.Grid, explicit, from, to int, match func([]string) bool) (int, error) {
	if explicit != Auto {
		if explicit < 0 || explicit >= g.NumRows() {
			return 0, fmt.Errorf("row %d outside grid of %d rows", explicit+1, g.NumRows())
		}
		return explicit, nil
	}
	for i := from; i < to; i++ {
		if match(g.Row(i)) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w in rows %d-%d", errNotFound, from+1, to)
}

func isYearRow(row []string) bool {
	n := 0
	for _, cell := range row {
		if _, ok := ExtractYear(cell); ok {
			n++
		}
	}
	return n >= minYearTokens
}

func isTypeRow(row []string) bool {
	for _, cell := range row {
		if ClassifyType(cell) != model.ColumnIgnored {
			return true
		}
	}
	return false
}

func dataRowTest(layout Layout) func([]string) bool {
	return func(row []string) bool {
		if layout.CodeCol != model.NoColumn {
			return naics.Valid(cellAt(row, layout.CodeCol))
		}
		return cellAt(row, layout.IndustryCol) != "" && !isTypeRow(row) && !isYearRow(row)
	}
}
