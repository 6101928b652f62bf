package runlog

import (
	"testing"

	"stairforge.ai/internal/grid"
	"stairforge.ai/internal/plan"
)

func TestRunLogger_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	l := NewRunLogger(dir)

	if err := l.WriteHeader("canonical-staircase", "deadbeef"); err != nil {
		t.Fatalf("header: %v", err)
	}
	a := plan.PlannedAction{
		Kind: plan.ActionPick,
		Cell: grid.Cell{X: 1, Z: 1},
		Pos:  grid.Vec3{X: 1.5, Y: 3, Z: 1.5},
		Desc: "pick block from (1,1)",
	}
	if err := l.WriteAction(2, 7, a); err != nil {
		t.Fatalf("action: %v", err)
	}
	res := plan.RunResult{
		ReachedGoal:   true,
		Iterations:    11,
		Actions:       []plan.PlannedAction{a},
		FinalAgentPos: grid.Vec3{X: 3.5, Y: 5, Z: 6.5},
	}
	if err := l.WriteResult(res); err != nil {
		t.Fatalf("result: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	entries, err := ReadEntries(dir)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[0].Kind != "header" || entries[0].Scenario != "canonical-staircase" {
		t.Fatalf("header entry = %+v", entries[0])
	}
	if entries[1].Kind != "action" || entries[1].Iteration != 2 || entries[1].Seq != 7 {
		t.Fatalf("action entry = %+v", entries[1])
	}
	if entries[1].Action == nil || entries[1].Action.Kind != plan.ActionPick {
		t.Fatalf("action payload = %+v", entries[1].Action)
	}
	if entries[2].Kind != "result" || !entries[2].ReachedGoal || entries[2].Iterations != 11 {
		t.Fatalf("result entry = %+v", entries[2])
	}
}

func TestRunLogger_AppendsAcrossRuns(t *testing.T) {
	dir := t.TempDir()

	l := NewRunLogger(dir)
	if err := l.WriteHeader("first", "aa"); err != nil {
		t.Fatal(err)
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	l = NewRunLogger(dir)
	if err := l.WriteHeader("second", "bb"); err != nil {
		t.Fatal(err)
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	entries, err := ReadEntries(dir)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Scenario != "first" || entries[1].Scenario != "second" {
		t.Fatalf("order = %q, %q", entries[0].Scenario, entries[1].Scenario)
	}
}
