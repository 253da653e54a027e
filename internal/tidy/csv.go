// Package tidy serializes, reads back and checks the long-format record set.
package tidy

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ecomstat/ecomclean/internal/model"
)

// Header is the CSV header of the tidy table. The column order is fixed.
const Header = "industry,year,ecommerce_value,total_value,ecommerce_share_pct"

const (
	numFields    = 5
	colIndustry  = 0
	colYear      = 1
	colEcommerce = 2
	colTotal     = 3
	colShare     = 4
)

// FormatNumber renders v in its shortest exact decimal form: no exponent, no
// thousands separators.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return decimal.NewFromFloat(v).String()
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return FormatNumber(*v)
}

// MarshalRecord converts a record to a CSV row. Empty optional fields are
// written as empty strings so every row has all five fields.
func MarshalRecord(r model.TidyRecord) []string {
	row := make([]string, numFields)
	row[colIndustry] = r.Industry
	row[colYear] = strconv.Itoa(r.Year)
	row[colEcommerce] = FormatNumber(r.EcommerceValue)
	row[colTotal] = formatOptional(r.TotalValue)
	row[colShare] = formatOptional(r.EcommerceSharePct)
	return row
}

// WriteRecords writes the header and every record.
func WriteRecords(w io.Writer, recs []model.TidyRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range recs {
		if err := cw.Write(MarshalRecord(r)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// columnMap locates tidy columns by header name. Optional columns map to -1.
type columnMap struct {
	industry, year, ecommerce, total, share int
}

var errMissingColumn = errors.New("missing column")

func mapColumns(header []string) (columnMap, error) {
	m := columnMap{industry: -1, year: -1, ecommerce: -1, total: -1, share: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case "industry":
			m.industry = i
		case "year":
			m.year = i
		case "ecommerce_value":
			m.ecommerce = i
		case "total_value":
			m.total = i
		case "ecommerce_share_pct":
			m.share = i
		}
	}
	required := []struct {
		name string
		idx  int
	}{{"industry", m.industry}, {"year", m.year}, {"ecommerce_value", m.ecommerce}}
	for _, c := range required {
		if c.idx < 0 {
			return m, fmt.Errorf("%w %s", errMissingColumn, c.name)
		}
	}
	return m, nil
}

// ReadRecords reads a tidy CSV. Columns are matched by header name;
// total_value and ecommerce_share_pct may be absent and extra columns are ignored.
func ReadRecords(r io.Reader) ([]model.TidyRecord, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading tidy CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	cols, err := mapColumns(records[0])
	if err != nil {
		return nil, fmt.Errorf("reading tidy CSV header: %w", err)
	}

	var recs []model.TidyRecord
	for i, row := range records[1:] {
		rec, err := UnmarshalRecord(row, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// UnmarshalRecord converts a CSV row to a record using the column map.
func UnmarshalRecord(row []string, cols columnMap) (model.TidyRecord, error) {
	year, err := strconv.Atoi(strings.TrimSpace(row[cols.year]))
	if err != nil {
		return model.TidyRecord{}, fmt.Errorf("parsing year %q: %w", row[cols.year], err)
	}

	ecom, err := parseNumber(row[cols.ecommerce])
	if err != nil {
		return model.TidyRecord{}, fmt.Errorf("parsing ecommerce_value %q: %w", row[cols.ecommerce], err)
	}

	rec := model.TidyRecord{
		Industry:       row[cols.industry],
		Year:           year,
		EcommerceValue: ecom,
	}
	if rec.TotalValue, err = parseOptional(row, cols.total); err != nil {
		return model.TidyRecord{}, fmt.Errorf("parsing total_value: %w", err)
	}
	if rec.EcommerceSharePct, err = parseOptional(row, cols.share); err != nil {
		return model.TidyRecord{}, fmt.Errorf("parsing ecommerce_share_pct: %w", err)
	}
	return rec, nil
}

func parseNumber(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

func parseOptional(row []string, col int) (*float64, error) {
	if col < 0 || strings.TrimSpace(row[col]) == "" {
		return nil, nil
	}
	v, err := parseNumber(row[col])
	if err != nil {
		return nil, fmt.Errorf("%q: %w", row[col], err)
	}
	return &v, nil
}
