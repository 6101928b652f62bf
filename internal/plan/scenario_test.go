package plan

import (
	"os"
	"path/filepath"
	"testing"

	"stairforge.ai/internal/grid"
)

func TestDefaultScenario_Canonical(t *testing.T) {
	sc := DefaultScenario()

	if len(sc.Steps) != 4 || len(sc.Supplies) != 5 {
		t.Fatalf("steps=%d supplies=%d", len(sc.Steps), len(sc.Supplies))
	}
	if sc.Start != (grid.Cell{X: 3, Z: 1}) || sc.Goal != (grid.Cell{X: 3, Z: 6}) {
		t.Fatalf("start=%+v goal=%+v", sc.Start, sc.Goal)
	}
	if sc.GoalHeight != 5 {
		t.Fatalf("goal height = %d", sc.GoalHeight)
	}
	if sc.MaxIterations != 8+4*4 {
		t.Fatalf("max iterations = %d", sc.MaxIterations)
	}
	if sc.Width < 7 || sc.Depth < 8 {
		t.Fatalf("derived extent %dx%d too small", sc.Width, sc.Depth)
	}
	if sc.Nav.CellSize != 1.0 || sc.Nav.ClimbHeight != 1 {
		t.Fatalf("nav defaults not applied: %+v", sc.Nav)
	}
}

func TestScenario_BuildWorldSeedsHeights(t *testing.T) {
	sc := DefaultScenario()
	w := sc.BuildWorld()

	for _, sup := range sc.Supplies {
		if got := w.Grid.At(sup.Cell); got != sup.InitialHeight {
			t.Fatalf("supply %+v seeded to %d", sup.Cell, got)
		}
	}
	if got := w.Grid.At(sc.Goal); got != sc.GoalHeight {
		t.Fatalf("goal platform seeded to %d", got)
	}
	if w.Carrying {
		t.Fatalf("default scenario starts empty-handed")
	}
	if w.Mesh == nil {
		t.Fatalf("world must start with a navmesh")
	}

	u := grid.Units{CellSize: sc.Nav.CellSize, UnitHeight: sc.Nav.UnitHeight}
	if u.CellOf(w.Agent) != sc.Start {
		t.Fatalf("agent starts at %+v", u.CellOf(w.Agent))
	}
}

func TestScenario_InitialHeightsOverride(t *testing.T) {
	sc := DefaultScenario()
	sc.InitialHeights = []CellHeight{{Cell: sc.Supplies[0].Cell, Height: 9}}
	w := sc.BuildWorld()

	if got := w.Grid.At(sc.Supplies[0].Cell); got != 9 {
		t.Fatalf("initial_heights should override supply seed, got %d", got)
	}
}

func TestLoadScenario_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.yaml")
	doc := `
name: two-step
start: { x: 1, z: 1 }
goal: { x: 1, z: 4 }
goal_height: 2
steps:
  - { cell: { x: 1, z: 2 }, target_height: 1 }
  - { cell: { x: 1, z: 3 }, target_height: 2 }
supplies:
  - { cell: { x: 3, z: 1 }, initial_height: 4 }
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.Name != "two-step" || len(sc.Steps) != 2 {
		t.Fatalf("loaded %+v", sc)
	}
	if sc.MaxIterations != 8+4*2 {
		t.Fatalf("defaults not applied: max_iterations=%d", sc.MaxIterations)
	}
	if sc.Width != 5 || sc.Depth != 6 {
		t.Fatalf("derived extent %dx%d", sc.Width, sc.Depth)
	}
}

func TestLoadScenario_RejectsNegativeHeights(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	doc := `
start: { x: 0, z: 0 }
goal: { x: 1, z: 1 }
goal_height: -2
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenario(path); err == nil {
		t.Fatalf("negative goal height should be rejected")
	}
}

func TestScenario_DigestStable(t *testing.T) {
	a := DefaultScenario()
	b := DefaultScenario()
	if a.Digest() != b.Digest() {
		t.Fatalf("equal scenarios should share a digest")
	}
	b.GoalHeight++
	if a.Digest() == b.Digest() {
		t.Fatalf("different scenarios should differ")
	}
}
