package model

import "math"

// TidyRecord is one normalized (industry, year) observation.
type TidyRecord struct {
	Industry          string
	Year              int
	EcommerceValue    float64
	TotalValue        *float64 // nil when the year has no Total column or the cell is withheld
	EcommerceSharePct *float64 // nil unless TotalValue is present and > 0
}

// NewTidyRecord builds a record and derives the e-commerce share from the total.
// The share is only computed against a strictly positive total; it is never
// substituted with another denominator. A share that overflows stays nil.
func NewTidyRecord(industry string, year int, ecommerce float64, total *float64) TidyRecord {
	rec := TidyRecord{
		Industry:       industry,
		Year:           year,
		EcommerceValue: ecommerce,
	}
	if total != nil {
		t := *total
		rec.TotalValue = &t
		if t > 0 {
			share := ecommerce / t * 100
			if !math.IsInf(share, 0) && !math.IsNaN(share) {
				rec.EcommerceSharePct = &share
			}
		}
	}
	return rec
}

// Key returns the (industry, year) identity of the record.
func (r TidyRecord) Key() RecordKey {
	return RecordKey{Industry: r.Industry, Year: r.Year}
}

// RecordKey identifies a tidy record.
type RecordKey struct {
	Industry string
	Year     int
}

// Float returns a pointer to v. Convenience for optional fields.
func Float(v float64) *float64 { return &v }
