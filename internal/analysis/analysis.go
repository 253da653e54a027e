// Package analysis derives growth metrics from a tidy record set.
package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ecomstat/ecomclean/internal/model"
	"github.com/ecomstat/ecomclean/internal/records"
)

var (
	// ErrNoRecords is returned when there is nothing to summarize.
	ErrNoRecords = errors.New("no records")
	// ErrUnknownIndustry is returned when no record matches the industry.
	ErrUnknownIndustry = errors.New("unknown industry")
)

// YearTotal is the e-commerce value summed over all industries for a year.
type YearTotal struct {
	Year           int
	EcommerceValue float64
}

// Summary describes growth of the summed e-commerce value across years.
type Summary struct {
	Years      []YearTotal // ascending
	StartYear  int
	EndYear    int
	StartValue float64
	EndValue   float64
	CAGRPct    *float64 // nil with fewer than two years or a non-positive start
}

// Summarize sums e-commerce value per year and computes the compound annual
// growth rate between the first and last year. The exponent counts distinct
// years, not calendar distance, so gaps in the series are not interpolated.
func Summarize(recs []model.TidyRecord) (Summary, error) {
	if len(recs) == 0 {
		return Summary{}, ErrNoRecords
	}

	sums := make(map[int]decimal.Decimal)
	for _, r := range recs {
		sums[r.Year] = sums[r.Year].Add(decimal.NewFromFloat(r.EcommerceValue))
	}

	s := Summary{Years: make([]YearTotal, 0, len(sums))}
	for year, sum := range sums {
		s.Years = append(s.Years, YearTotal{Year: year, EcommerceValue: sum.InexactFloat64()})
	}
	sort.Slice(s.Years, func(i, j int) bool { return s.Years[i].Year < s.Years[j].Year })

	first, last := s.Years[0], s.Years[len(s.Years)-1]
	s.StartYear, s.StartValue = first.Year, first.EcommerceValue
	s.EndYear, s.EndValue = last.Year, last.EcommerceValue

	periods := len(s.Years) - 1
	if periods > 0 && s.StartValue > 0 {
		cagr := (math.Pow(s.EndValue/s.StartValue, 1/float64(periods)) - 1) * 100
		s.CAGRPct = &cagr
	}
	return s, nil
}

// Trend is the series of one industry.
type Trend struct {
	Industry    string
	Series      []model.TidyRecord // ascending year
	Latest      model.TidyRecord
	YoYGrowth   *float64 // percent change from the previous point; nil when unavailable
	LatestShare *float64 // the latest record's e-commerce share of total
}

// IndustryTrend extracts one industry's series. Industries match on their
// normalized key, so spacing and case differences are ignored. The share is
// the recorded share of the latest year; nothing is approximated when the
// total is missing.
func IndustryTrend(recs []model.TidyRecord, industry string) (Trend, error) {
	key := records.IndustryKey(industry)

	var t Trend
	for _, r := range recs {
		if records.IndustryKey(r.Industry) == key {
			t.Series = append(t.Series, r)
		}
	}
	if len(t.Series) == 0 {
		return Trend{}, fmt.Errorf("%w %q", ErrUnknownIndustry, industry)
	}
	sort.SliceStable(t.Series, func(i, j int) bool { return t.Series[i].Year < t.Series[j].Year })

	t.Latest = t.Series[len(t.Series)-1]
	t.Industry = t.Latest.Industry
	t.LatestShare = t.Latest.EcommerceSharePct

	if n := len(t.Series); n >= 2 {
		prev := t.Series[n-2].EcommerceValue
		if prev > 0 {
			g := (t.Latest.EcommerceValue - prev) / prev * 100
			t.YoYGrowth = &g
		}
	}
	return t, nil
}

// Industries returns the distinct industry names in first-seen order.
func Industries(recs []model.TidyRecord) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range recs {
		k := records.IndustryKey(r.Industry)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r.Industry)
	}
	return out
}
