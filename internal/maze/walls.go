package maze

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Walls is a read-only view of a generated wall set.
type Walls struct {
	set mapset.Set[Cell]
}

func wallsOf(cells ...Cell) Walls {
	return Walls{set: mapset.Of(cells...)}
}

// Has reports whether c is a wall.
func (w Walls) Has(c Cell) bool {
	return w.set.Has(c)
}

// Len returns the number of walls.
func (w Walls) Len() int {
	return w.set.Size()
}

// Cells returns every wall in row-major order.
func (w Walls) Cells() []Cell {
	cells := make([]Cell, 0, w.Len())
	w.set.Each(func(c Cell) {
		cells = append(cells, c)
	})
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}
