package plan

import (
	"fmt"

	"stairforge.ai/internal/nav"
)

// BuildDomain assembles the task tree for one scenario. The tree is
// stateless across passes; per-pass selector results live in the snapshot's
// scratch fields.
//
//	AchieveGoal (Select)
//	├── ReachGoalDirect
//	├── ClimbBuiltSteps
//	└── BuildStep (Sequence)
//	    ├── AcquireBlock (Select): already carrying | fetch from supply
//	    └── DeliverBlock (Select): place here | move adjacent | via anchor
func BuildDomain(sc *Scenario) *Task {
	return Select("achieve_goal",
		reachGoalDirect(sc),
		climbBuiltSteps(sc),
		buildStep(sc),
	)
}

// reachGoalDirect fires when the staircase is complete and one path query
// reaches the goal top from the agent's position.
func reachGoalDirect(sc *Scenario) *Task {
	return Action("reach_goal_direct",
		[]Condition{
			func(s *Snapshot) bool {
				return Frontier(s.Grid, sc.Steps) == nil
			},
			func(s *Snapshot) bool {
				goalTop := s.units().CellTop(sc.Goal, s.Grid.At(sc.Goal))
				s.directPath = nav.FindPath(s.Mesh, s.Agent, goalTop, s.Opts.AgentRadius, nil)
				return s.directPath.Success
			},
		},
		func(s *Snapshot) {
			s.enqueue(navigateAction(sc.Goal, s.directPath.Destination(), s.directPath.Waypoints, "(goal)"))
		},
		func(s *Snapshot) {
			s.Agent = s.directPath.Destination()
		},
	)
}

// climbBuiltSteps is the fallback when the staircase is complete but the
// direct query failed: navigate through every built step in order, then to
// the goal.
func climbBuiltSteps(sc *Scenario) *Task {
	return Action("climb_built_steps",
		[]Condition{
			func(s *Snapshot) bool {
				return Frontier(s.Grid, sc.Steps) == nil
			},
			func(s *Snapshot) bool {
				s.climbLegs = s.climbLegs[:0]
				pos := s.Agent
				targets := make([]StepDefinition, 0, len(sc.Steps)+1)
				targets = append(targets, sc.Steps...)
				targets = append(targets, StepDefinition{Cell: sc.Goal})
				for _, st := range targets {
					top := s.units().CellTop(st.Cell, s.Grid.At(st.Cell))
					res := nav.FindPath(s.Mesh, pos, top, s.Opts.AgentRadius, nil)
					if !res.Success {
						return false
					}
					s.climbLegs = append(s.climbLegs, res)
					pos = res.Destination()
				}
				return len(s.climbLegs) > 0
			},
		},
		func(s *Snapshot) {
			for i, leg := range s.climbLegs {
				cell := sc.Goal
				why := "(goal)"
				if i < len(sc.Steps) {
					cell = sc.Steps[i].Cell
					why = fmt.Sprintf("(step %d)", i+1)
				}
				s.enqueue(navigateAction(cell, leg.Destination(), leg.Waypoints, why))
			}
		},
		func(s *Snapshot) {
			s.Agent = s.climbLegs[len(s.climbLegs)-1].Destination()
		},
	)
}

func buildStep(sc *Scenario) *Task {
	return Sequence("build_step",
		acquireBlock(sc),
		deliverBlock(sc),
	)
}

// acquireBlock ensures the agent holds a block: either it already does, or
// it fetches one from the nearest reachable supply.
func acquireBlock(sc *Scenario) *Task {
	return Select("acquire_block",
		Action("already_carrying",
			[]Condition{
				func(s *Snapshot) bool {
					return s.Carrying && Frontier(s.Grid, sc.Steps) != nil
				},
			},
			nil, nil,
		),
		Sequence("fetch_from_supply",
			Action("navigate_to_supply",
				[]Condition{
					func(s *Snapshot) bool {
						return !s.Carrying && Frontier(s.Grid, sc.Steps) != nil
					},
					func(s *Snapshot) bool {
						s.planned = chooseSupply(s.Grid, s.Mesh, s.Agent, sc.Steps, sc.Supplies, sc.Start, s.Opts)
						return s.planned != nil
					},
				},
				func(s *Snapshot) {
					s.enqueue(navigateAction(s.planned.Stand, s.planned.PathToStand.Destination(), s.planned.PathToStand.Waypoints, "(supply stand)"))
				},
				func(s *Snapshot) {
					s.Agent = s.planned.PathToStand.Destination()
				},
			),
			Action("pick_block",
				[]Condition{
					func(s *Snapshot) bool {
						return !s.Carrying && s.planned != nil && s.Grid.At(s.planned.Supply) > 0
					},
				},
				func(s *Snapshot) {
					top := s.units().CellTop(s.planned.Supply, s.Grid.At(s.planned.Supply))
					s.enqueue(pickAction(s.planned.Supply, top))
				},
				func(s *Snapshot) {
					s.Grid.Lower(s.planned.Supply)
					s.Carrying = true
					s.refreshMesh()
				},
			),
		),
	)
}

// deliverBlock places the carried block on the frontier, preferring the
// spot the agent already stands on, then a walkable adjacent cell, then the
// staging anchor.
func deliverBlock(sc *Scenario) *Task {
	place := func(s *Snapshot) {
		fr := Frontier(s.Grid, sc.Steps)
		top := s.units().CellTop(fr.Cell, s.Grid.At(fr.Cell)+1)
		s.enqueue(placeAction(fr.Cell, top))
	}
	placeEffect := func(s *Snapshot) {
		fr := Frontier(s.Grid, sc.Steps)
		s.Grid.Raise(fr.Cell)
		s.Carrying = false
		s.refreshMesh()
	}
	return Select("deliver_block",
		Action("place_from_here",
			[]Condition{
				func(s *Snapshot) bool {
					fr := Frontier(s.Grid, sc.Steps)
					if fr == nil {
						return false
					}
					return canPlaceDirectlyOnAdjacent(s.Grid, s.units(), s.Agent, s.Carrying, fr.Cell)
				},
			},
			func(s *Snapshot) { place(s) },
			placeEffect,
		),
		Action("place_after_adjacent_move",
			[]Condition{
				func(s *Snapshot) bool {
					fr := Frontier(s.Grid, sc.Steps)
					if fr == nil || !s.Carrying {
						return false
					}
					s.move = findAdjacentPlacementMove(s.Grid, s.Mesh, s.Agent, fr.Cell, s.Opts)
					return s.move != nil
				},
			},
			func(s *Snapshot) {
				dest := s.units().CellTop(s.move.Cell, s.move.TargetHeight)
				s.enqueue(navigateAction(s.move.Cell, dest, s.move.Path.Waypoints, "(adjacent to step)"))
				place(s)
			},
			func(s *Snapshot) {
				s.Agent = s.units().CellTop(s.move.Cell, s.move.TargetHeight)
				placeEffect(s)
			},
		),
		Action("place_via_anchor",
			[]Condition{
				func(s *Snapshot) bool {
					fr := Frontier(s.Grid, sc.Steps)
					if fr == nil || !s.Carrying {
						return false
					}
					fi := frontierIndex(s.Grid, sc.Steps)
					anchor := anchorFor(sc.Steps, fi, sc.Start)
					anchorHeight := s.Grid.At(anchor)
					frontierHeight := s.Grid.At(fr.Cell)
					if anchorHeight < frontierHeight || anchorHeight > frontierHeight+1 {
						return false
					}
					top := s.units().CellTop(anchor, anchorHeight)
					s.anchorPath = nav.FindPath(s.Mesh, s.Agent, top, s.Opts.AgentRadius, nil)
					if !s.anchorPath.Success {
						return false
					}
					s.move = &placementMove{Cell: anchor, TargetHeight: anchorHeight, Path: s.anchorPath}
					return true
				},
			},
			func(s *Snapshot) {
				s.enqueue(navigateAction(s.move.Cell, s.anchorPath.Destination(), s.anchorPath.Waypoints, "(anchor)"))
				place(s)
			},
			func(s *Snapshot) {
				s.Agent = s.anchorPath.Destination()
				placeEffect(s)
			},
		),
	)
}
