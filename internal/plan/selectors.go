package plan

import (
	"stairforge.ai/internal/grid"
	"stairforge.ai/internal/nav"
)

// PlannedStep is the supply choice for one planning pass: where to fetch a
// block, where to stand while picking, which step it feeds, and the staging
// anchor if direct placement fails. Discarded when the pass ends.
type PlannedStep struct {
	Frontier    StepDefinition
	Supply      grid.Cell
	Stand       grid.Cell
	Anchor      grid.Cell
	PathToStand nav.PathResult
}

// placementMove is a navigate target adjacent to the frontier from which a
// carried block can be placed.
type placementMove struct {
	Cell         grid.Cell
	TargetHeight int
	Path         nav.PathResult
}

// chooseSupply picks the nearest reachable stocked supply. For each supply
// with stock, each in-bounds orthogonal neighbor is probed for a path from
// the agent to the neighbor's top at its own height; the shortest approach
// per supply survives, then the globally shortest across supplies. Ties go
// to declaration order. nil means no supply has a reachable stand cell.
func chooseSupply(g *grid.HeightGrid, mesh *nav.NavMesh, agent grid.Vec3, steps []StepDefinition, supplies []SupplySource, start grid.Cell, opts nav.Options) *PlannedStep {
	fi := frontierIndex(g, steps)
	if fi < 0 {
		return nil
	}
	u := grid.Units{CellSize: opts.CellSize, UnitHeight: opts.UnitHeight}

	var best *PlannedStep
	bestLen := 0.0
	for _, sup := range supplies {
		if g.At(sup.Cell) <= 0 {
			continue
		}
		found := false
		var supStand grid.Cell
		var supPath nav.PathResult
		supLen := 0.0
		for _, n := range sup.Cell.Neighbors4() {
			if !g.InBounds(n) {
				continue
			}
			res := nav.FindPath(mesh, agent, u.CellTop(n, g.At(n)), opts.AgentRadius, nil)
			if !res.Success {
				continue
			}
			l := res.Length()
			if !found || l < supLen {
				found = true
				supStand = n
				supPath = res
				supLen = l
			}
		}
		if !found {
			continue
		}
		if best == nil || supLen < bestLen {
			best = &PlannedStep{
				Frontier:    steps[fi],
				Supply:      sup.Cell,
				Stand:       supStand,
				Anchor:      anchorFor(steps, fi, start),
				PathToStand: supPath,
			}
			bestLen = supLen
		}
	}
	return best
}

// canPlaceDirectlyOnAdjacent reports whether a carried block can go straight
// onto the frontier from where the agent stands: the agent's cell must be an
// orthogonal neighbor of the frontier and its standing level must be within
// one block of the frontier's current height.
func canPlaceDirectlyOnAdjacent(g *grid.HeightGrid, u grid.Units, agent grid.Vec3, carrying bool, frontier grid.Cell) bool {
	if !carrying {
		return false
	}
	agentCell := u.CellOf(agent)
	adjacent := false
	for _, n := range frontier.Neighbors4() {
		if n == agentCell {
			adjacent = true
			break
		}
	}
	if !adjacent {
		return false
	}
	agentHeight := u.LevelOf(agent)
	frontierHeight := g.At(frontier)
	return frontierHeight <= agentHeight && agentHeight <= frontierHeight+1
}

// findAdjacentPlacementMove scans the frontier's neighbors for a cell the
// agent can walk to and place from. The first neighbor, in fixed scan order,
// with a compatible standing height and a valid path wins.
func findAdjacentPlacementMove(g *grid.HeightGrid, mesh *nav.NavMesh, agent grid.Vec3, frontier grid.Cell, opts nav.Options) *placementMove {
	u := grid.Units{CellSize: opts.CellSize, UnitHeight: opts.UnitHeight}
	frontierHeight := g.At(frontier)
	for _, n := range frontier.Neighbors4() {
		if !g.InBounds(n) {
			continue
		}
		neighborHeight := g.At(n)
		targetHeight := neighborHeight
		if frontierHeight > targetHeight {
			targetHeight = frontierHeight
		}
		if targetHeight > neighborHeight+1 {
			continue
		}
		if targetHeight < frontierHeight || targetHeight > frontierHeight+1 {
			continue
		}
		res := nav.FindPath(mesh, agent, u.CellTop(n, targetHeight), opts.AgentRadius, nil)
		if !res.Success {
			continue
		}
		return &placementMove{Cell: n, TargetHeight: targetHeight, Path: res}
	}
	return nil
}
