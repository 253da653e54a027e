// Package records walks the data region of a survey grid and emits tidy
// (industry, year) records.
package records

import (
	"strings"

	"github.com/mozillazg/go-unidecode"

	"github.com/ecomstat/ecomclean/internal/grid"
	"github.com/ecomstat/ecomclean/internal/model"
	"github.com/ecomstat/ecomclean/internal/naics"
	"github.com/ecomstat/ecomclean/internal/sanitize"
)

// Params locates the data region and its key columns.
type Params struct {
	DataStart   int
	DataEnd     int // exclusive; 0 means the end of the grid
	IndustryCol int
	CodeCol     int // model.NoColumn when rows carry no NAICS code
}

// Stats counts what the builder skipped and emitted.
type Stats struct {
	RowsScanned     int
	RowsSkipped     int // empty industry or invalid row key
	CellsEmpty      int // e-commerce cell blank
	CellsSuppressed int // e-commerce cell held a suppression token
	CellsUnparsable int // e-commerce cell was not a number
	MissingTotal    int // records emitted with no total value
	Duplicates      int
	Records         int
}

// CellsSkipped returns the number of (row, year) combinations with no e-commerce value.
func (s Stats) CellsSkipped() int {
	return s.CellsEmpty + s.CellsSuppressed + s.CellsUnparsable
}

// Duplicate is an (industry, year) seen again after its first record.
// Rows are 1-based grid row numbers.
type Duplicate struct {
	Industry string
	Year     int
	FirstRow int
	Row      int
}

// Result is the output of Build.
type Result struct {
	Records    []model.TidyRecord
	Stats      Stats
	Duplicates []Duplicate
}

// Build emits at most one record per (row, pair), in row order and then
// ascending year. A pair without a Total column, or with a withheld total,
// yields a record whose total and share are empty. When an (industry, year)
// repeats, the first occurrence wins and the repeat is reported.
func Build(g *grid.Grid, p Params, pairs []model.ColumnPair, s *sanitize.Sanitizer) Result {
	end := p.DataEnd
	if end <= 0 || end > g.NumRows() {
		end = g.NumRows()
	}

	var res Result
	firstRow := make(map[industryYear]int)

	for row := p.DataStart; row < end; row++ {
		res.Stats.RowsScanned++

		industry := strings.TrimSpace(g.Cell(row, p.IndustryCol))
		if industry == "" || !validKey(g, row, p.CodeCol) {
			res.Stats.RowsSkipped++
			continue
		}
		key := IndustryKey(industry)

		for _, pair := range pairs {
			if !pair.HasEcommerce() {
				continue
			}
			ecom, outcome := s.Classify(g.Cell(row, pair.EcomCol))
			switch outcome {
			case sanitize.Empty:
				res.Stats.CellsEmpty++
				continue
			case sanitize.Suppressed:
				res.Stats.CellsSuppressed++
				continue
			case sanitize.Unparsable:
				res.Stats.CellsUnparsable++
				continue
			}

			k := industryYear{industry: key, year: pair.Year}
			if first, seen := firstRow[k]; seen {
				res.Stats.Duplicates++
				res.Duplicates = append(res.Duplicates, Duplicate{
					Industry: industry,
					Year:     pair.Year,
					FirstRow: first + 1,
					Row:      row + 1,
				})
				continue
			}
			firstRow[k] = row

			var total *float64
			if pair.HasTotal() {
				if v, ok := s.Sanitize(g.Cell(row, pair.TotalCol)); ok {
					total = model.Float(v)
				}
			}
			if total == nil {
				res.Stats.MissingTotal++
			}
			rec := model.NewTidyRecord(industry, pair.Year, ecom, total)
			res.Records = append(res.Records, rec)
		}
	}

	res.Stats.Records = len(res.Records)
	return res
}

type industryYear struct {
	industry string
	year     int
}

func validKey(g *grid.Grid, row, codeCol int) bool {
	if codeCol == model.NoColumn {
		return true
	}
	return naics.Valid(g.Cell(row, codeCol))
}

// IndustryKey normalizes a description for duplicate detection: transliterated
// to ASCII, whitespace collapsed, lower-cased.
func IndustryKey(industry string) string {
	return strings.ToLower(strings.Join(strings.Fields(unidecode.Unidecode(industry)), " "))
}
