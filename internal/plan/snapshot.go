package plan

import (
	"stairforge.ai/internal/grid"
	"stairforge.ai/internal/nav"
)

// World is the live, authoritative state of one run: the height grid, the
// agent, and a navmesh consistent with the grid. It advances only by
// replaying a committed plan.
type World struct {
	Grid     *grid.HeightGrid
	Agent    grid.Vec3
	Carrying bool
	Mesh     *nav.NavMesh
	Opts     nav.Options
}

// RefreshMesh regenerates the navmesh from the current grid. Called after
// every committed Pick/Place.
func (w *World) RefreshMesh() {
	w.Mesh = nav.Rebuild(w.Grid, w.Opts)
}

// Snapshot is an owned clone of the world used for one planning pass.
// Decomposition mutates it freely; abandoned passes leave the live world
// untouched. The scratch fields are ephemeral selector results shared
// between a primitive's conditions and its body within the same pass.
type Snapshot struct {
	Grid     *grid.HeightGrid
	Agent    grid.Vec3
	Carrying bool
	Mesh     *nav.NavMesh
	Opts     nav.Options

	actions []PlannedAction

	// Per-pass selector scratch.
	planned    *PlannedStep
	move       *placementMove
	directPath nav.PathResult
	climbLegs  []nav.PathResult
	anchorPath nav.PathResult
}

// Snapshot clones the live world for a planning pass. The navmesh is shared
// initially because it is immutable; plan-only mutations replace it via
// refreshMesh rather than patching it.
func (w *World) Snapshot() *Snapshot {
	return &Snapshot{
		Grid:     w.Grid.Clone(),
		Agent:    w.Agent,
		Carrying: w.Carrying,
		Mesh:     w.Mesh,
		Opts:     w.Opts,
	}
}

func (s *Snapshot) units() grid.Units {
	return grid.Units{CellSize: s.Opts.CellSize, UnitHeight: s.Opts.UnitHeight}
}

func (s *Snapshot) enqueue(a PlannedAction) {
	s.actions = append(s.actions, a)
}

// Actions returns the plan emitted so far in this pass.
func (s *Snapshot) Actions() []PlannedAction {
	return s.actions
}

// refreshMesh regenerates this snapshot's navmesh after a plan-only grid
// mutation. The live mesh is never touched.
func (s *Snapshot) refreshMesh() {
	s.Mesh = nav.Rebuild(s.Grid, s.Opts)
}
