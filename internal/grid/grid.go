package grid

import "math"

// Cell is an integer lattice coordinate on the ground plane.
type Cell struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// neighborDirs is the fixed scan order for 4-neighborhoods. Every caller in
// the planner iterates neighbors in this order so selection is deterministic.
var neighborDirs = [4]Cell{{X: 1}, {X: -1}, {Z: 1}, {Z: -1}}

// Neighbors4 returns the orthogonal neighbors of c in fixed scan order.
func (c Cell) Neighbors4() [4]Cell {
	var out [4]Cell
	for i, d := range neighborDirs {
		out[i] = Cell{X: c.X + d.X, Z: c.Z + d.Z}
	}
	return out
}

// Vec3 is a continuous world-space position. Y is up.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// DistXZ returns the horizontal distance between two positions.
func DistXZ(a, b Vec3) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dz*dz)
}

// Dist returns the full 3D distance between two positions.
func Dist(a, b Vec3) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Units maps lattice coordinates to world space.
type Units struct {
	CellSize   float64 `yaml:"cell_size" json:"cell_size"`
	UnitHeight float64 `yaml:"unit_height" json:"unit_height"`
}

// DefaultUnits is the canonical world scale: one meter cells, one meter
// per stacked block.
func DefaultUnits() Units {
	return Units{CellSize: 1.0, UnitHeight: 1.0}
}

// CellTop returns the world position of the center of a cell's top surface
// when the cell holds height stacked blocks.
func (u Units) CellTop(c Cell, height int) Vec3 {
	return Vec3{
		X: (float64(c.X) + 0.5) * u.CellSize,
		Y: float64(height) * u.UnitHeight,
		Z: (float64(c.Z) + 0.5) * u.CellSize,
	}
}

// CellOf returns the lattice cell containing a world position.
func (u Units) CellOf(p Vec3) Cell {
	return Cell{
		X: int(math.Floor(p.X / u.CellSize)),
		Z: int(math.Floor(p.Z / u.CellSize)),
	}
}

// LevelOf returns the discrete block level a world position stands at.
func (u Units) LevelOf(p Vec3) int {
	return int(math.Floor(p.Y / u.UnitHeight))
}

// HeightGrid is a width×depth matrix of stacked block counts. Heights are
// never negative; Lower refuses to go below zero.
type HeightGrid struct {
	W, D    int
	heights []int
}

func NewHeightGrid(w, d int) *HeightGrid {
	return &HeightGrid{W: w, D: d, heights: make([]int, w*d)}
}

func (g *HeightGrid) index(c Cell) int {
	// x fastest, then z
	return c.X + c.Z*g.W
}

func (g *HeightGrid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.W && c.Z >= 0 && c.Z < g.D
}

// At returns the stacked height at c, zero outside the grid.
func (g *HeightGrid) At(c Cell) int {
	if !g.InBounds(c) {
		return 0
	}
	return g.heights[g.index(c)]
}

// Set overwrites the height at c. Negative values are clamped to zero.
func (g *HeightGrid) Set(c Cell, h int) {
	if !g.InBounds(c) {
		return
	}
	if h < 0 {
		h = 0
	}
	g.heights[g.index(c)] = h
}

// Raise adds one block at c and reports whether the cell was in bounds.
func (g *HeightGrid) Raise(c Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	g.heights[g.index(c)]++
	return true
}

// Lower removes one block at c. It fails when the cell is out of bounds or
// already empty, keeping the never-negative invariant.
func (g *HeightGrid) Lower(c Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	i := g.index(c)
	if g.heights[i] <= 0 {
		return false
	}
	g.heights[i]--
	return true
}

// Sum returns the total number of stacked blocks on the grid.
func (g *HeightGrid) Sum() int {
	total := 0
	for _, h := range g.heights {
		total += h
	}
	return total
}

// Clone returns an independent copy. Snapshot planning relies on clones
// never sharing backing storage with the live grid.
func (g *HeightGrid) Clone() *HeightGrid {
	out := &HeightGrid{W: g.W, D: g.D, heights: make([]int, len(g.heights))}
	copy(out.heights, g.heights)
	return out
}

// Heights exposes the raw row-major height values for export.
func (g *HeightGrid) Heights() []int {
	out := make([]int, len(g.heights))
	copy(out, g.heights)
	return out
}
