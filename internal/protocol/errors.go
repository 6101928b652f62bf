package protocol

const (
	// Protocol/transport validation.
	ErrProtoBadRequest = "E_PROTO_BAD_REQUEST"

	// Scenario configuration.
	ErrBadScenario = "E_BAD_SCENARIO"

	// Planner outcomes. Unreachable and no-supply never escape a planning
	// pass on their own; they are reported only as the reason a run went
	// stuck.
	ErrUnreachable     = "E_UNREACHABLE"
	ErrNoSupply        = "E_NO_SUPPLY"
	ErrPlannerStuck    = "E_PLANNER_STUCK"
	ErrBudgetExhausted = "E_BUDGET_EXHAUSTED"

	ErrInternal = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrProtoBadRequest: {},
	ErrBadScenario:     {},
	ErrUnreachable:     {},
	ErrNoSupply:        {},
	ErrPlannerStuck:    {},
	ErrBudgetExhausted: {},
	ErrInternal:        {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}
