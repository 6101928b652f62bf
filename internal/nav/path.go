package nav

import (
	"stairforge.ai/internal/grid"
)

// Filter restricts a path query to nodes it accepts. A nil Filter accepts
// every node.
type Filter func(c grid.Cell, height int) bool

// PathResult is the outcome of one path query. Failure means "unreachable";
// it is never an error condition for the caller.
type PathResult struct {
	Success   bool
	Waypoints []grid.Vec3
}

// Length returns the summed Euclidean length of the waypoint chain.
func (r PathResult) Length() float64 {
	total := 0.0
	for i := 1; i < len(r.Waypoints); i++ {
		total += grid.Dist(r.Waypoints[i-1], r.Waypoints[i])
	}
	return total
}

// Destination returns the final waypoint. Callers must only use it on a
// successful result.
func (r PathResult) Destination() grid.Vec3 {
	return r.Waypoints[len(r.Waypoints)-1]
}

// FindPath answers a reachability query between two world positions. The
// search is breadth-first with a fixed neighbor order, so results are
// deterministic for a fixed mesh: among equally short paths the (+x, -x,
// +z, -z) scan decides. Waypoints run from the start cell's surface to the
// goal cell's surface inclusive.
func FindPath(m *NavMesh, start, goal grid.Vec3, footprint float64, filter Filter) PathResult {
	if m == nil {
		return PathResult{}
	}
	// Clearance: a footprint wider than one cell cannot stand anywhere on
	// a lattice of single-cell surfaces.
	if footprint > m.opts.CellSize {
		return PathResult{}
	}

	u := m.opts.units()
	startCell := u.CellOf(start)
	goalCell := u.CellOf(goal)

	if _, ok := m.HeightAt(startCell); !ok {
		return PathResult{}
	}
	if _, ok := m.HeightAt(goalCell); !ok {
		return PathResult{}
	}
	if filter != nil {
		if h, _ := m.HeightAt(goalCell); !filter(goalCell, h) {
			return PathResult{}
		}
	}

	if startCell == goalCell {
		return PathResult{Success: true, Waypoints: []grid.Vec3{m.Top(startCell)}}
	}

	prev := map[grid.Cell]grid.Cell{startCell: startCell}
	queue := []grid.Cell{startCell}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, n := range cur.Neighbors4() {
			if _, seen := prev[n]; seen {
				continue
			}
			if !m.inBounds(n) {
				continue
			}
			if !m.climbable(cur, n) {
				continue
			}
			if filter != nil {
				if h, _ := m.HeightAt(n); !filter(n, h) {
					continue
				}
			}
			prev[n] = cur
			if n == goalCell {
				return PathResult{Success: true, Waypoints: m.reconstruct(prev, startCell, goalCell)}
			}
			queue = append(queue, n)
		}
	}
	return PathResult{}
}

func (m *NavMesh) reconstruct(prev map[grid.Cell]grid.Cell, start, goal grid.Cell) []grid.Vec3 {
	cells := []grid.Cell{goal}
	for c := goal; c != start; c = prev[c] {
		cells = append(cells, prev[c])
	}
	// cells is goal..start; reverse into waypoints.
	out := make([]grid.Vec3, 0, len(cells))
	for i := len(cells) - 1; i >= 0; i-- {
		out = append(out, m.Top(cells[i]))
	}
	return out
}
