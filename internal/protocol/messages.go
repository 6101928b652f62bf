package protocol

import (
	"stairforge.ai/internal/grid"
	"stairforge.ai/internal/plan"
)

// SubscribeMsg opens an observer session. Sent by the client first.
type SubscribeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
}

// RunHeaderMsg describes the run an observer just attached to.
type RunHeaderMsg struct {
	Type            string    `json:"type"`
	ProtocolVersion string    `json:"protocol_version"`
	Scenario        string    `json:"scenario"`
	ScenarioDigest  string    `json:"scenario_digest"`
	Width           int       `json:"width"`
	Depth           int       `json:"depth"`
	Goal            grid.Cell `json:"goal"`
	GoalHeight      int       `json:"goal_height"`
	Steps           int       `json:"steps"`
	MaxIterations   int       `json:"max_iterations"`
}

// ActionMsg streams one committed action.
type ActionMsg struct {
	Type      string          `json:"type"`
	Iteration int             `json:"iteration"`
	Seq       int             `json:"seq"`
	Kind      plan.ActionKind `json:"kind"`
	Cell      grid.Cell       `json:"cell"`
	Pos       grid.Vec3       `json:"pos"`
	Path      []grid.Vec3     `json:"path,omitempty"`
	Desc      string          `json:"desc"`
}

// RunResultMsg terminates an observer stream.
type RunResultMsg struct {
	Type          string    `json:"type"`
	ReachedGoal   bool      `json:"reached_goal"`
	Iterations    int       `json:"iterations"`
	Actions       int       `json:"actions"`
	FinalAgentPos grid.Vec3 `json:"final_agent_pos"`
	// FailureCode is empty on success, else one of the E_* planner codes.
	FailureCode string `json:"failure_code,omitempty"`
}

// ErrorMsg reports a session-level failure to an observer.
type ErrorMsg struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FailureCode maps a finished run to its terminal error code: empty on
// success, budget-exhausted when it ran out of iterations, else the stuck
// reason the runner recorded.
func FailureCode(res plan.RunResult, maxIterations int) string {
	if res.ReachedGoal {
		return ""
	}
	if res.Iterations >= maxIterations {
		return ErrBudgetExhausted
	}
	switch res.StuckReason {
	case plan.StuckNoSupply:
		return ErrNoSupply
	case plan.StuckUnreachable:
		return ErrUnreachable
	}
	return ErrPlannerStuck
}
