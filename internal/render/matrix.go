package render

import (
	"github.com/samber/lo"

	"github.com/five82/paddock/internal/f1api"
)

// Podium classifies a race finish for highlighting.
type Podium int

const (
	NoPodium Podium = iota
	Gold
	Silver
	Bronze
)

// Cell is one race entry of a points matrix.
type Cell struct {
	Points   float64
	Position int
}

// Text is the points value, or "-" when nothing was scored.
func (c Cell) Text() string {
	if c.Points > 0 {
		return f1api.FormatPoints(c.Points)
	}
	return "-"
}

// Podium reports the finish class of the cell.
func (c Cell) Podium() Podium {
	switch c.Position {
	case 1:
		return Gold
	case 2:
		return Silver
	case 3:
		return Bronze
	default:
		return NoPodium
	}
}

// MatrixRow is one driver or constructor line of a points matrix.
type MatrixRow struct {
	Position int
	Name     string
	Team     string
	Cells    []Cell
	Total    float64
}

// Matrix is a season points table. Columns come from the first record's
// races; every row is aligned to them by race name.
type Matrix struct {
	Label   string
	Columns []string
	Rows    []MatrixRow
}

// Empty reports whether the matrix has no rows.
func (m Matrix) Empty() bool { return len(m.Rows) == 0 }

// DriverMatrix builds the drivers points matrix.
func DriverMatrix(rows []f1api.DriverPoints) Matrix {
	m := Matrix{Label: "Driver"}
	if len(rows) == 0 {
		return m
	}
	races := rows[0].Races
	m.Columns = columnHeaders(races)
	m.Rows = lo.Map(rows, func(d f1api.DriverPoints, _ int) MatrixRow {
		return MatrixRow{
			Position: d.Position,
			Name:     d.Name,
			Team:     d.Constructor,
			Cells:    alignCells(races, d.Races),
			Total:    d.Total,
		}
	})
	return m
}

// ConstructorMatrix builds the constructors points matrix.
func ConstructorMatrix(rows []f1api.ConstructorPoints) Matrix {
	m := Matrix{Label: "Constructor"}
	if len(rows) == 0 {
		return m
	}
	races := rows[0].Races
	m.Columns = columnHeaders(races)
	m.Rows = lo.Map(rows, func(c f1api.ConstructorPoints, _ int) MatrixRow {
		return MatrixRow{
			Position: c.Position,
			Name:     c.Constructor,
			Cells:    alignCells(races, c.Races),
			Total:    c.Total,
		}
	})
	return m
}

// columnHeaders labels each race by country, falling back to its name.
func columnHeaders(races []f1api.RacePoints) []string {
	return lo.Map(races, func(r f1api.RacePoints, _ int) string {
		return lo.Ternary(r.Country != "", r.Country, r.Name)
	})
}

// alignCells looks each column race up by name in own, first match wins. A
// missing race is an empty cell.
func alignCells(columns, own []f1api.RacePoints) []Cell {
	byName := make(map[string]f1api.RacePoints, len(own))
	for _, r := range own {
		if _, seen := byName[r.Name]; !seen {
			byName[r.Name] = r
		}
	}
	return lo.Map(columns, func(col f1api.RacePoints, _ int) Cell {
		r, ok := byName[col.Name]
		if !ok {
			return Cell{}
		}
		return Cell{Points: r.Points, Position: r.Position}
	})
}
