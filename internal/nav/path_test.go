package nav

import (
	"testing"

	"stairforge.ai/internal/grid"
)

func flatMesh(w, d int) (*NavMesh, *grid.HeightGrid) {
	g := grid.NewHeightGrid(w, d)
	return Rebuild(g, DefaultOptions()), g
}

func TestFindPath_FlatGrid(t *testing.T) {
	m, _ := flatMesh(6, 6)
	u := grid.DefaultUnits()

	res := FindPath(m, u.CellTop(grid.Cell{X: 0, Z: 0}, 0), u.CellTop(grid.Cell{X: 4, Z: 3}, 0), 0.35, nil)
	if !res.Success {
		t.Fatalf("flat grid path should succeed")
	}
	// BFS shortest: manhattan distance 7 means 8 waypoints.
	if len(res.Waypoints) != 8 {
		t.Fatalf("waypoints = %d, want 8", len(res.Waypoints))
	}
	dest := res.Destination()
	if u.CellOf(dest) != (grid.Cell{X: 4, Z: 3}) {
		t.Fatalf("destination cell %+v", u.CellOf(dest))
	}
}

func TestFindPath_SameCell(t *testing.T) {
	m, _ := flatMesh(3, 3)
	u := grid.DefaultUnits()
	p := u.CellTop(grid.Cell{X: 1, Z: 1}, 0)

	res := FindPath(m, p, p, 0.35, nil)
	if !res.Success || len(res.Waypoints) != 1 {
		t.Fatalf("same-cell query: success=%v waypoints=%d", res.Success, len(res.Waypoints))
	}
}

func TestFindPath_ClimbHeightLimitsEdges(t *testing.T) {
	g := grid.NewHeightGrid(5, 1)
	// Heights 0,1,2,3,4 along x: every edge climbs exactly one block.
	for x := 0; x < 5; x++ {
		g.Set(grid.Cell{X: x, Z: 0}, x)
	}
	m := Rebuild(g, DefaultOptions())
	u := grid.DefaultUnits()

	res := FindPath(m, u.CellTop(grid.Cell{X: 0, Z: 0}, 0), u.CellTop(grid.Cell{X: 4, Z: 0}, 4), 0.35, nil)
	if !res.Success {
		t.Fatalf("staircase should be climbable")
	}

	// A two-block jump in a corridor is not.
	g.Set(grid.Cell{X: 2, Z: 0}, 4)
	m = Rebuild(g, DefaultOptions())
	res = FindPath(m, u.CellTop(grid.Cell{X: 0, Z: 0}, 0), u.CellTop(grid.Cell{X: 4, Z: 0}, 4), 0.35, nil)
	if res.Success {
		t.Fatalf("two-block step should be unreachable in a 1-wide corridor")
	}
}

func TestFindPath_RoutesAroundTallStack(t *testing.T) {
	g := grid.NewHeightGrid(5, 3)
	g.Set(grid.Cell{X: 2, Z: 1}, 3)
	m := Rebuild(g, DefaultOptions())
	u := grid.DefaultUnits()

	res := FindPath(m, u.CellTop(grid.Cell{X: 0, Z: 1}, 0), u.CellTop(grid.Cell{X: 4, Z: 1}, 0), 0.35, nil)
	if !res.Success {
		t.Fatalf("detour around stack should succeed")
	}
	for _, wp := range res.Waypoints {
		if u.CellOf(wp) == (grid.Cell{X: 2, Z: 1}) {
			t.Fatalf("path crosses the tall stack")
		}
	}
}

func TestFindPath_DeterministicNeighborOrder(t *testing.T) {
	m, _ := flatMesh(4, 4)
	u := grid.DefaultUnits()
	start := u.CellTop(grid.Cell{X: 0, Z: 0}, 0)
	goal := u.CellTop(grid.Cell{X: 2, Z: 2}, 0)

	a := FindPath(m, start, goal, 0.35, nil)
	b := FindPath(m, start, goal, 0.35, nil)
	if !a.Success || !b.Success {
		t.Fatalf("paths should succeed")
	}
	if len(a.Waypoints) != len(b.Waypoints) {
		t.Fatalf("path length not stable")
	}
	for i := range a.Waypoints {
		if a.Waypoints[i] != b.Waypoints[i] {
			t.Fatalf("waypoint %d differs across identical queries", i)
		}
	}
}

func TestFindPath_FootprintClearance(t *testing.T) {
	m, _ := flatMesh(3, 3)
	u := grid.DefaultUnits()

	res := FindPath(m, u.CellTop(grid.Cell{X: 0, Z: 0}, 0), u.CellTop(grid.Cell{X: 2, Z: 2}, 0), 1.5, nil)
	if res.Success {
		t.Fatalf("footprint wider than a cell should fail")
	}
}

func TestFindPath_FilterExcludesNodes(t *testing.T) {
	m, _ := flatMesh(3, 1)
	u := grid.DefaultUnits()

	block := grid.Cell{X: 1, Z: 0}
	res := FindPath(m,
		u.CellTop(grid.Cell{X: 0, Z: 0}, 0),
		u.CellTop(grid.Cell{X: 2, Z: 0}, 0),
		0.35,
		func(c grid.Cell, height int) bool { return c != block },
	)
	if res.Success {
		t.Fatalf("filter should make the corridor unreachable")
	}
}

func TestPathResult_Length(t *testing.T) {
	r := PathResult{Success: true, Waypoints: []grid.Vec3{
		{X: 0.5, Y: 0, Z: 0.5},
		{X: 1.5, Y: 0, Z: 0.5},
		{X: 2.5, Y: 0, Z: 0.5},
	}}
	if got := r.Length(); got != 2.0 {
		t.Fatalf("length = %f, want 2.0", got)
	}
}
