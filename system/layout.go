package system

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lixenwraith/vi-saber/config"
	"github.com/lixenwraith/vi-saber/parameter"
)

// Layout maps a spawn cell to a world position
type Layout interface {
	Position(column, row int) (r3.Vec, bool)
}

// GridLayout centers a Columns x Rows grid on x = 0 and CenterY at depth SpawnZ
type GridLayout struct {
	Columns       int
	Rows          int
	ColumnSpacing float64
	RowSpacing    float64
	CenterY       float64
	SpawnZ        float64
}

// DefaultGridLayout is the 4x3 reference grid
func DefaultGridLayout() GridLayout {
	return GridLayout{
		Columns:       parameter.GridColumns,
		Rows:          parameter.GridRows,
		ColumnSpacing: parameter.GridColumnSpacing,
		RowSpacing:    parameter.GridRowSpacing,
		CenterY:       parameter.GridCenterY,
		SpawnZ:        parameter.GridSpawnZ,
	}
}

// GridLayoutFromConfig builds the grid from the grid.* keys
func GridLayoutFromConfig(c config.GridConfig) GridLayout {
	return GridLayout{
		Columns:       c.Columns,
		Rows:          c.Rows,
		ColumnSpacing: c.ColumnSpacing,
		RowSpacing:    c.RowSpacing,
		CenterY:       c.CenterY,
		SpawnZ:        c.SpawnZ,
	}
}

// Valid reports whether the cell lies inside the grid
func (g GridLayout) Valid(column, row int) bool {
	return column >= 0 && column < g.Columns && row >= 0 && row < g.Rows
}

// Position returns the spawn point of a cell; row 0 is the bottom row
func (g GridLayout) Position(column, row int) (r3.Vec, bool) {
	if !g.Valid(column, row) {
		return r3.Vec{}, false
	}
	startX := -float64(g.Columns-1) * g.ColumnSpacing * 0.5
	startY := g.CenterY - float64(g.Rows-1)*g.RowSpacing*0.5
	return r3.Vec{
		X: startX + float64(column)*g.ColumnSpacing,
		Y: startY + float64(row)*g.RowSpacing,
		Z: g.SpawnZ,
	}, true
}
