package nav

import (
	"stairforge.ai/internal/grid"
)

// Options is the fixed tuning data for navmesh generation. It lives outside
// planner logic; the planner treats the mesh as an oracle.
type Options struct {
	CellSize    float64 `yaml:"cell_size" json:"cell_size"`
	UnitHeight  float64 `yaml:"unit_height" json:"unit_height"`
	AgentRadius float64 `yaml:"agent_radius" json:"agent_radius"`
	// ClimbHeight is the maximum height difference, in blocks, the agent
	// can step between adjacent cells.
	ClimbHeight int `yaml:"climb_height" json:"climb_height"`
	// SlopeLimit is the maximum walkable surface slope in degrees. Block
	// tops are flat, so surfaces only fail this if the limit is negative.
	SlopeLimit float64 `yaml:"slope_limit" json:"slope_limit"`
}

func DefaultOptions() Options {
	return Options{
		CellSize:    1.0,
		UnitHeight:  1.0,
		AgentRadius: 0.35,
		ClimbHeight: 1,
		SlopeLimit:  45,
	}
}

func (o Options) units() grid.Units {
	return grid.Units{CellSize: o.CellSize, UnitHeight: o.UnitHeight}
}

// NavMesh is the walkable-surface graph of one height grid: a node per cell
// top, an edge between orthogonal neighbors whose height difference is
// within ClimbHeight. It is immutable once generated; grid mutations are
// reflected by generating a fresh mesh.
type NavMesh struct {
	opts    Options
	w, d    int
	heights []int
}

// Generate builds a NavMesh from the walkable surfaces of a geometry. It is
// a pure function of its inputs, safe to call speculatively on snapshot
// grids.
func Generate(geo grid.Geometry, opts Options) *NavMesh {
	maxX, maxZ := 0, 0
	for _, s := range geo.Surfaces {
		if s.Cell.X > maxX {
			maxX = s.Cell.X
		}
		if s.Cell.Z > maxZ {
			maxZ = s.Cell.Z
		}
	}
	m := &NavMesh{
		opts:    opts,
		w:       maxX + 1,
		d:       maxZ + 1,
		heights: make([]int, (maxX+1)*(maxZ+1)),
	}
	for i := range m.heights {
		m.heights[i] = -1 // no surface
	}
	for _, s := range geo.Surfaces {
		if opts.SlopeLimit < 0 {
			continue
		}
		m.heights[s.Cell.X+s.Cell.Z*m.w] = s.Height
	}
	return m
}

// Rebuild regenerates a mesh directly from a height grid with the same
// options. Convenience for callers that do not keep the geometry around.
func Rebuild(g *grid.HeightGrid, opts Options) *NavMesh {
	return Generate(grid.BuildGeometry(g, opts.units()), opts)
}

func (m *NavMesh) inBounds(c grid.Cell) bool {
	return c.X >= 0 && c.X < m.w && c.Z >= 0 && c.Z < m.d
}

// HeightAt returns the surface height of a cell's node. ok is false when the
// cell has no walkable surface.
func (m *NavMesh) HeightAt(c grid.Cell) (int, bool) {
	if !m.inBounds(c) {
		return 0, false
	}
	h := m.heights[c.X+c.Z*m.w]
	if h < 0 {
		return 0, false
	}
	return h, true
}

// Top returns the world position of a cell's walkable surface center.
func (m *NavMesh) Top(c grid.Cell) grid.Vec3 {
	h, _ := m.HeightAt(c)
	return m.opts.units().CellTop(c, h)
}

// climbable reports whether the agent can step between two adjacent nodes.
func (m *NavMesh) climbable(from, to grid.Cell) bool {
	hf, ok := m.HeightAt(from)
	if !ok {
		return false
	}
	ht, ok := m.HeightAt(to)
	if !ok {
		return false
	}
	d := ht - hf
	if d < 0 {
		d = -d
	}
	return d <= m.opts.ClimbHeight
}
