package header

import (
	"sort"

	"github.com/ecomstat/ecomclean/internal/model"
)

// Conflict records a second column labeled with a kind a year already has.
// The first column in grid order is kept.
type Conflict struct {
	Year    int
	Kind    model.ColumnKind
	Kept    int
	Dropped int
}

// Pair groups labeled columns by year, ordered by ascending year.
// A year with an E-commerce column but no Total column keeps
// TotalCol == model.NoColumn; the record builder leaves its total empty.
func Pair(labels []model.HeaderLabel) ([]model.ColumnPair, []Conflict) {
	byYear := make(map[int]*model.ColumnPair)
	var conflicts []Conflict

	for _, l := range labels {
		if l.Kind == model.ColumnIgnored {
			continue
		}
		p, ok := byYear[l.Year]
		if !ok {
			p = &model.ColumnPair{Year: l.Year, TotalCol: model.NoColumn, EcomCol: model.NoColumn}
			byYear[l.Year] = p
		}

		slot := &p.EcomCol
		if l.Kind == model.ColumnTotal {
			slot = &p.TotalCol
		}
		if *slot != model.NoColumn {
			conflicts = append(conflicts, Conflict{Year: l.Year, Kind: l.Kind, Kept: *slot, Dropped: l.Column})
			continue
		}
		*slot = l.Column
	}

	pairs := make([]model.ColumnPair, 0, len(byYear))
	for _, p := range byYear {
		pairs = append(pairs, *p)
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Year < pairs[j].Year })
	return pairs, conflicts
}
