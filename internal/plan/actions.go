package plan

import (
	"fmt"

	"stairforge.ai/internal/grid"
)

type ActionKind string

const (
	ActionNavigate ActionKind = "NAVIGATE"
	ActionPick     ActionKind = "PICK"
	ActionPlace    ActionKind = "PLACE"
)

// PlannedAction is one primitive step of an accepted plan. Immutable once
// emitted; the execution layer consumes them in order.
type PlannedAction struct {
	Kind ActionKind `json:"kind"`
	// Cell is the navigate destination cell, the pick source, or the
	// place target.
	Cell grid.Cell `json:"cell"`
	// Pos is the world position the action resolves at: the navigate
	// destination or the top of the affected stack.
	Pos grid.Vec3 `json:"pos"`
	// Path holds the waypoints for ActionNavigate, nil otherwise.
	Path []grid.Vec3 `json:"path,omitempty"`
	Desc string      `json:"desc"`
}

func navigateAction(cell grid.Cell, dest grid.Vec3, path []grid.Vec3, why string) PlannedAction {
	return PlannedAction{
		Kind: ActionNavigate,
		Cell: cell,
		Pos:  dest,
		Path: path,
		Desc: fmt.Sprintf("navigate to (%d,%d) %s", cell.X, cell.Z, why),
	}
}

func pickAction(cell grid.Cell, top grid.Vec3) PlannedAction {
	return PlannedAction{
		Kind: ActionPick,
		Cell: cell,
		Pos:  top,
		Desc: fmt.Sprintf("pick block from (%d,%d)", cell.X, cell.Z),
	}
}

func placeAction(cell grid.Cell, top grid.Vec3) PlannedAction {
	return PlannedAction{
		Kind: ActionPlace,
		Cell: cell,
		Pos:  top,
		Desc: fmt.Sprintf("place block on (%d,%d)", cell.X, cell.Z),
	}
}
