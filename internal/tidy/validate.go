package tidy

import (
	"fmt"
	"math"

	"github.com/ecomstat/ecomclean/internal/model"
)

// Year bounds accepted by Validate.
const (
	MinYear = 1900
	MaxYear = 2099
)

// shareTolerance is the allowed absolute drift between a stored share and
// one recomputed from its value columns.
const shareTolerance = 1e-9

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	Key         model.RecordKey
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s %d]: %s", e.Invariant, e.Key.Industry, e.Key.Year, e.Description)
}

// Validate enforces the record-set invariants before anything is written.
func Validate(recs []model.TidyRecord) []ValidationError {
	var errs []ValidationError
	seen := make(map[model.RecordKey]bool, len(recs))

	for _, r := range recs {
		key := r.Key()

		// Invariant 1: (industry, year) is unique and the industry is named.
		if r.Industry == "" {
			errs = append(errs, ValidationError{Invariant: 1, Key: key, Description: "empty industry"})
		}
		if seen[key] {
			errs = append(errs, ValidationError{Invariant: 1, Key: key, Description: "duplicate (industry, year)"})
		}
		seen[key] = true

		// Invariant 2: year is a plausible four-digit survey year.
		if r.Year < MinYear || r.Year > MaxYear {
			errs = append(errs, ValidationError{
				Invariant:   2,
				Key:         key,
				Description: fmt.Sprintf("year %d outside %d-%d", r.Year, MinYear, MaxYear),
			})
		}

		// Invariant 3: values are finite.
		for _, f := range []struct {
			name string
			v    *float64
		}{
			{"ecommerce_value", &r.EcommerceValue},
			{"total_value", r.TotalValue},
			{"ecommerce_share_pct", r.EcommerceSharePct},
		} {
			if f.v != nil && !finite(*f.v) {
				errs = append(errs, ValidationError{Invariant: 3, Key: key, Description: f.name + " is not finite"})
			}
		}

		// Invariant 4: a share exists only against a positive total and matches it.
		// A share that would overflow is left empty.
		switch {
		case r.EcommerceSharePct == nil:
			if r.TotalValue != nil && *r.TotalValue > 0 && finite(r.EcommerceValue / *r.TotalValue * 100) {
				errs = append(errs, ValidationError{Invariant: 4, Key: key, Description: "share missing for positive total"})
			}
		case r.TotalValue == nil || *r.TotalValue <= 0:
			errs = append(errs, ValidationError{Invariant: 4, Key: key, Description: "share present without positive total"})
		default:
			want := r.EcommerceValue / *r.TotalValue * 100
			if math.Abs(want-*r.EcommerceSharePct) > shareTolerance*math.Max(1, math.Abs(want)) {
				errs = append(errs, ValidationError{
					Invariant:   4,
					Key:         key,
					Description: fmt.Sprintf("share %s != %s", FormatNumber(*r.EcommerceSharePct), FormatNumber(want)),
				})
			}
		}
	}
	return errs
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
