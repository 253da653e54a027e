package model

import "fmt"

// ColumnKind classifies a value column of the survey grid.
type ColumnKind int

const (
	// ColumnIgnored covers identifier, description, percentage and unlabeled columns.
	ColumnIgnored ColumnKind = iota
	ColumnTotal
	ColumnEcommerce
)

func (k ColumnKind) String() string {
	switch k {
	case ColumnTotal:
		return "total"
	case ColumnEcommerce:
		return "e-commerce"
	default:
		return "ignored"
	}
}

// HeaderLabel is the decoded meaning of one grid column.
// Year is 0 when no year token was seen at or left of the column.
// A label with Kind != ColumnIgnored always carries a year.
type HeaderLabel struct {
	Column int
	Year   int
	Kind   ColumnKind
}

// TotalColumn labels a column holding total shipments for year.
func TotalColumn(col, year int) HeaderLabel {
	return HeaderLabel{Column: col, Year: year, Kind: ColumnTotal}
}

// EcommerceColumn labels a column holding e-commerce shipments for year.
func EcommerceColumn(col, year int) HeaderLabel {
	return HeaderLabel{Column: col, Year: year, Kind: ColumnEcommerce}
}

// Ignored labels a column that carries no value for any pair.
// year may still be set when it was forward-filled from the year row.
func Ignored(col, year int) HeaderLabel {
	return HeaderLabel{Column: col, Year: year, Kind: ColumnIgnored}
}

func (l HeaderLabel) String() string {
	if l.Kind == ColumnIgnored {
		return "ignored"
	}
	return fmt.Sprintf("%s(%d)", l.Kind, l.Year)
}

// NoColumn marks an absent side of a ColumnPair.
const NoColumn = -1

// ColumnPair groups the Total and E-commerce columns of one year.
type ColumnPair struct {
	Year     int
	TotalCol int // NoColumn when the year has no Total column
	EcomCol  int // NoColumn when the year has no E-commerce column
}

// HasTotal reports whether the pair has a Total column.
func (p ColumnPair) HasTotal() bool { return p.TotalCol != NoColumn }

// HasEcommerce reports whether the pair has an E-commerce column.
func (p ColumnPair) HasEcommerce() bool { return p.EcomCol != NoColumn }
