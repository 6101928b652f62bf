package plan

import (
	"context"
	"log"
	"math"

	"stairforge.ai/internal/grid"
)

// StuckReason classifies why a planning pass emitted no actions.
type StuckReason string

const (
	// StuckNoSupply means a step remains but no supply has stock with a
	// reachable stand cell.
	StuckNoSupply StuckReason = "no_supply"
	// StuckUnreachable means the pathfinder found no route for any branch
	// the domain tried.
	StuckUnreachable StuckReason = "unreachable"
)

// RunResult is the outcome of one headless run, shaped for batch and test
// consumption.
type RunResult struct {
	ReachedGoal   bool             `json:"reached_goal"`
	Actions       []PlannedAction  `json:"actions"`
	FinalGrid     *grid.HeightGrid `json:"-"`
	FinalAgentPos grid.Vec3        `json:"final_agent_pos"`
	Iterations    int              `json:"iterations"`
	StuckReason   StuckReason      `json:"stuck_reason,omitempty"`
}

// Runner is the replanning loop: it re-derives a plan against the live
// world each iteration, replays accepted plans, and terminates on
// goal-reached, stuck, or budget exhaustion.
type Runner struct {
	sc     Scenario
	world  *World
	domain *Task
	log    *log.Logger

	// OnAction, when set, observes every committed action in execution
	// order. It must not block.
	OnAction func(iteration int, a PlannedAction)
}

func NewRunner(sc Scenario, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(log.Writer(), "", log.LstdFlags)
	}
	return &Runner{
		sc:     sc,
		world:  sc.BuildWorld(),
		domain: BuildDomain(&sc),
		log:    logger,
	}
}

// World exposes the live world, mainly for tests and the observer stream.
func (r *Runner) World() *World {
	return r.world
}

// Scenario returns the configuration this runner was built from.
func (r *Runner) Scenario() Scenario {
	return r.sc
}

// Run executes the replanning loop. The context is checked between
// iterations only; a cancelled run returns the partial result alongside
// ctx.Err(). Planner failures (stuck, budget exhausted) are not errors:
// they surface as ReachedGoal=false.
func (r *Runner) Run(ctx context.Context) (result RunResult, err error) {
	// Named returns: the deferred fill must land in the returned value on
	// every exit path, including early ones.
	defer func() {
		result.FinalGrid = r.world.Grid
		result.FinalAgentPos = r.world.Agent
	}()

	for iter := 0; iter < r.sc.MaxIterations; iter++ {
		if err := ctx.Err(); err != nil {
			result.Iterations = iter
			return result, err
		}
		if r.goalReached() {
			result.ReachedGoal = true
			result.Iterations = iter
			return result, nil
		}

		snap := r.world.Snapshot()
		ok := Decompose(r.domain, snap)
		actions := snap.Actions()
		if !ok || len(actions) == 0 {
			result.StuckReason = r.stuckReason()
			r.log.Printf("planner stuck after %d iterations (%s, %d actions committed)", iter, result.StuckReason, len(result.Actions))
			result.Iterations = iter
			return result, nil
		}

		for _, a := range actions {
			r.apply(a)
			result.Actions = append(result.Actions, a)
			if r.OnAction != nil {
				r.OnAction(iter, a)
			}
		}
		result.Iterations = iter + 1
	}

	if r.goalReached() {
		result.ReachedGoal = true
		return result, nil
	}
	r.log.Printf("iteration budget (%d) exhausted", r.sc.MaxIterations)
	return result, nil
}

// stuckReason inspects the live world after a zero-action pass. A frontier
// with no supply choice means stock or approaches ran out; everything else
// is a reachability dead end.
func (r *Runner) stuckReason() StuckReason {
	if Frontier(r.world.Grid, r.sc.Steps) == nil {
		return StuckUnreachable
	}
	if !r.world.Carrying && chooseSupply(r.world.Grid, r.world.Mesh, r.world.Agent, r.sc.Steps, r.sc.Supplies, r.sc.Start, r.world.Opts) == nil {
		return StuckNoSupply
	}
	return StuckUnreachable
}

// goalReached checks the live world: staircase complete and the agent
// within tolerance of the goal top.
func (r *Runner) goalReached() bool {
	if Frontier(r.world.Grid, r.sc.Steps) != nil {
		return false
	}
	u := grid.Units{CellSize: r.sc.Nav.CellSize, UnitHeight: r.sc.Nav.UnitHeight}
	goalTop := u.CellTop(r.sc.Goal, r.world.Grid.At(r.sc.Goal))
	if grid.DistXZ(r.world.Agent, goalTop) > 0.25*r.sc.Nav.CellSize {
		return false
	}
	return math.Abs(r.world.Agent.Y-goalTop.Y) <= 0.25*r.sc.Nav.UnitHeight
}

// apply replays one committed action against the live world. Navigate moves
// the agent to the action's destination; Pick and Place mutate the grid and
// rebuild the live navmesh.
func (r *Runner) apply(a PlannedAction) {
	switch a.Kind {
	case ActionNavigate:
		r.world.Agent = a.Pos
	case ActionPick:
		r.world.Grid.Lower(a.Cell)
		r.world.Carrying = true
		r.world.RefreshMesh()
	case ActionPlace:
		r.world.Grid.Raise(a.Cell)
		r.world.Carrying = false
		r.world.RefreshMesh()
	}
}
