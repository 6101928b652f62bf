package protocol

import (
	"testing"

	"stairforge.ai/internal/plan"
)

func TestIsKnownCode(t *testing.T) {
	for _, code := range []string{
		"", ErrProtoBadRequest, ErrBadScenario, ErrUnreachable,
		ErrNoSupply, ErrPlannerStuck, ErrBudgetExhausted, ErrInternal,
	} {
		if !IsKnownCode(code) {
			t.Errorf("code %q should be known", code)
		}
	}
	if IsKnownCode("E_MADE_UP") {
		t.Errorf("unknown code accepted")
	}
}

func TestFailureCode(t *testing.T) {
	if got := FailureCode(plan.RunResult{ReachedGoal: true, Iterations: 3}, 10); got != "" {
		t.Fatalf("success should have no code, got %q", got)
	}
	if got := FailureCode(plan.RunResult{Iterations: 2}, 10); got != ErrPlannerStuck {
		t.Fatalf("early stop should be stuck, got %q", got)
	}
	if got := FailureCode(plan.RunResult{Iterations: 10}, 10); got != ErrBudgetExhausted {
		t.Fatalf("full budget should be exhausted, got %q", got)
	}
	if got := FailureCode(plan.RunResult{Iterations: 2, StuckReason: plan.StuckNoSupply}, 10); got != ErrNoSupply {
		t.Fatalf("no-supply stop should map to %q, got %q", ErrNoSupply, got)
	}
	if got := FailureCode(plan.RunResult{Iterations: 2, StuckReason: plan.StuckUnreachable}, 10); got != ErrUnreachable {
		t.Fatalf("unreachable stop should map to %q, got %q", ErrUnreachable, got)
	}
}
