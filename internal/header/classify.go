package header

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ecomstat/ecomclean/internal/model"
)

// yearPattern finds a standalone 19xx/20xx token; qualifiers such as
// "revised" or footnote letters around it are ignored.
var yearPattern = regexp.MustCompile(`(?:^|[^0-9])((?:19|20)[0-9]{2})(?:[^0-9]|$)`)

// ExtractYear returns the first year token in cell.
func ExtractYear(cell string) (int, bool) {
	m := yearPattern.FindStringSubmatch(cell)
	if m == nil {
		return 0, false
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return y, true
}

var ecommerceSpelling = strings.NewReplacer("-", "", "\u2010", "", "\u2011", "", " ", "")

// ClassifyType maps a type-row cell to a column kind. Derived percentage
// columns ("E-commerce as percent of total") are ignored.
func ClassifyType(cell string) model.ColumnKind {
	text := strings.ToLower(strings.Join(strings.Fields(cell), " "))
	switch {
	case text == "":
		return model.ColumnIgnored
	case strings.Contains(text, "percent") || strings.Contains(text, "%"):
		return model.ColumnIgnored
	case strings.Contains(ecommerceSpelling.Replace(text), "ecommerce"):
		return model.ColumnEcommerce
	case strings.Contains(text, "total"):
		return model.ColumnTotal
	default:
		return model.ColumnIgnored
	}
}

// Label decodes every column from the year row and the type row.
// Years are forward-filled across columns because one year header spans a
// Total/E-commerce group. Columns in skip never carry a label.
func Label(yearRow, typeRow []string, skip map[int]bool) []model.HeaderLabel {
	n := max(len(yearRow), len(typeRow))
	labels := make([]model.HeaderLabel, n)
	year := 0
	for col := 0; col < n; col++ {
		if skip[col] {
			labels[col] = model.Ignored(col, 0)
			continue
		}
		if y, ok := ExtractYear(cellAt(yearRow, col)); ok {
			year = y
		}
		if year == 0 {
			labels[col] = model.Ignored(col, 0)
			continue
		}
		switch ClassifyType(cellAt(typeRow, col)) {
		case model.ColumnTotal:
			labels[col] = model.TotalColumn(col, year)
		case model.ColumnEcommerce:
			labels[col] = model.EcommerceColumn(col, year)
		default:
			labels[col] = model.Ignored(col, year)
		}
	}
	return labels
}

func cellAt(row []string, col int) string {
	if col < len(row) {
		return row[col]
	}
	return ""
}
