package grid

// Surface is the walkable top face of one cell at its current stack height.
type Surface struct {
	Cell   Cell
	Height int
	Top    Vec3
}

// Geometry is the render mesh for a height grid plus the walkable surfaces
// the navmesh generator consumes. It is a pure function of the grid: two
// calls on equal grids produce identical output.
type Geometry struct {
	Vertices []Vec3
	Indices  []int
	Surfaces []Surface
}

// BuildGeometry emits one axis-aligned box per non-empty cell (for
// rendering) and one Surface per cell, empty cells included: ground level
// is walkable too.
func BuildGeometry(g *HeightGrid, u Units) Geometry {
	geo := Geometry{
		Surfaces: make([]Surface, 0, g.W*g.D),
	}
	for z := 0; z < g.D; z++ {
		for x := 0; x < g.W; x++ {
			c := Cell{X: x, Z: z}
			h := g.At(c)
			geo.Surfaces = append(geo.Surfaces, Surface{
				Cell:   c,
				Height: h,
				Top:    u.CellTop(c, h),
			})
			if h > 0 {
				geo.appendBox(c, h, u)
			}
		}
	}
	return geo
}

// appendBox adds the 8 corners and 12 triangles of a cell's block stack.
func (geo *Geometry) appendBox(c Cell, height int, u Units) {
	x0 := float64(c.X) * u.CellSize
	x1 := x0 + u.CellSize
	z0 := float64(c.Z) * u.CellSize
	z1 := z0 + u.CellSize
	y0 := 0.0
	y1 := float64(height) * u.UnitHeight

	base := len(geo.Vertices)
	geo.Vertices = append(geo.Vertices,
		Vec3{X: x0, Y: y0, Z: z0},
		Vec3{X: x1, Y: y0, Z: z0},
		Vec3{X: x1, Y: y0, Z: z1},
		Vec3{X: x0, Y: y0, Z: z1},
		Vec3{X: x0, Y: y1, Z: z0},
		Vec3{X: x1, Y: y1, Z: z0},
		Vec3{X: x1, Y: y1, Z: z1},
		Vec3{X: x0, Y: y1, Z: z1},
	)

	quads := [6][4]int{
		{0, 1, 5, 4}, // -z
		{1, 2, 6, 5}, // +x
		{2, 3, 7, 6}, // +z
		{3, 0, 4, 7}, // -x
		{4, 5, 6, 7}, // top
		{3, 2, 1, 0}, // bottom
	}
	for _, q := range quads {
		geo.Indices = append(geo.Indices,
			base+q[0], base+q[1], base+q[2],
			base+q[0], base+q[2], base+q[3],
		)
	}
}
