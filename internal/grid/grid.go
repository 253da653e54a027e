// Package grid loads survey files into an untyped, rectangular table of raw text.
package grid

// Grid is the raw contents of a survey file: rows of text cells, padded so
// every row has the same number of columns. A Grid is never modified after New.
type Grid struct {
	rows [][]string
	cols int
}

// New copies rows into a Grid, padding short rows with empty cells.
func New(rows [][]string) *Grid {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		row := make([]string, cols)
		copy(row, r)
		out[i] = row
	}
	return &Grid{rows: out, cols: cols}
}

// NumRows returns the number of rows.
func (g *Grid) NumRows() int { return len(g.rows) }

// NumCols returns the number of columns.
func (g *Grid) NumCols() int { return g.cols }

// Cell returns the raw text at (row, col), or "" when out of range.
func (g *Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.rows) || col < 0 || col >= g.cols {
		return ""
	}
	return g.rows[row][col]
}

// Row returns a copy of row i, or nil when out of range.
func (g *Grid) Row(i int) []string {
	if i < 0 || i >= len(g.rows) {
		return nil
	}
	row := make([]string, g.cols)
	copy(row, g.rows[i])
	return row
}
