package plan

import (
	"stairforge.ai/internal/grid"
)

// StepDefinition is one staircase step: the cell to build on, the stack
// height to reach, and a human-readable label. Declaration order defines
// build order.
type StepDefinition struct {
	Cell         grid.Cell `yaml:"cell" json:"cell"`
	TargetHeight int       `yaml:"target_height" json:"target_height"`
	Label        string    `yaml:"label,omitempty" json:"label,omitempty"`
}

// SupplySource is a cell that starts the run holding stackable blocks.
// Remaining stock is simply the live grid height at the cell.
type SupplySource struct {
	Cell          grid.Cell `yaml:"cell" json:"cell"`
	InitialHeight int       `yaml:"initial_height" json:"initial_height"`
}

// Frontier returns the first step, in declaration order, whose built height
// is still below its target. nil means the staircase is complete.
func Frontier(g *grid.HeightGrid, steps []StepDefinition) *StepDefinition {
	for i := range steps {
		if g.At(steps[i].Cell) < steps[i].TargetHeight {
			return &steps[i]
		}
	}
	return nil
}

// frontierIndex returns the index of the frontier step, or -1.
func frontierIndex(g *grid.HeightGrid, steps []StepDefinition) int {
	for i := range steps {
		if g.At(steps[i].Cell) < steps[i].TargetHeight {
			return i
		}
	}
	return -1
}

// anchorFor returns the staging cell for a frontier step: the previous
// step's cell, or the start cell for the first step.
func anchorFor(steps []StepDefinition, frontierIdx int, start grid.Cell) grid.Cell {
	if frontierIdx <= 0 {
		return start
	}
	return steps[frontierIdx-1].Cell
}
