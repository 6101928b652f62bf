package plan

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"stairforge.ai/internal/grid"
	"stairforge.ai/internal/nav"
)

// CellHeight pre-seeds one cell's stack height before the run starts.
type CellHeight struct {
	Cell   grid.Cell `yaml:"cell" json:"cell"`
	Height int       `yaml:"height" json:"height"`
}

// Scenario is the full configuration surface of one run. Every field is
// independently overridable; zero values fall back to the canonical
// defaults via applyDefaults.
type Scenario struct {
	Name  string `yaml:"name" json:"name"`
	Width int    `yaml:"width" json:"width"`
	Depth int    `yaml:"depth" json:"depth"`

	Start      grid.Cell `yaml:"start" json:"start"`
	Goal       grid.Cell `yaml:"goal" json:"goal"`
	GoalHeight int       `yaml:"goal_height" json:"goal_height"`

	Steps    []StepDefinition `yaml:"steps" json:"steps"`
	Supplies []SupplySource   `yaml:"supplies" json:"supplies"`

	// InitialHeights are applied after supplies and the goal platform,
	// overriding both.
	InitialHeights []CellHeight `yaml:"initial_heights,omitempty" json:"initial_heights,omitempty"`

	// Carrying starts the agent mid-delivery with one block in hand.
	Carrying bool `yaml:"carrying,omitempty" json:"carrying,omitempty"`

	MaxIterations int         `yaml:"max_iterations" json:"max_iterations"`
	Nav           nav.Options `yaml:"nav" json:"nav"`
}

// DefaultScenario is the canonical staircase run: four steps rising to the
// goal platform at height five, with five block supplies scattered around.
func DefaultScenario() Scenario {
	sc := Scenario{
		Name:       "canonical-staircase",
		Start:      grid.Cell{X: 3, Z: 1},
		Goal:       grid.Cell{X: 3, Z: 6},
		GoalHeight: 5,
		Steps: []StepDefinition{
			{Cell: grid.Cell{X: 3, Z: 2}, TargetHeight: 1, Label: "step-1"},
			{Cell: grid.Cell{X: 3, Z: 3}, TargetHeight: 2, Label: "step-2"},
			{Cell: grid.Cell{X: 3, Z: 4}, TargetHeight: 3, Label: "step-3"},
			{Cell: grid.Cell{X: 3, Z: 5}, TargetHeight: 4, Label: "step-4"},
		},
		Supplies: []SupplySource{
			{Cell: grid.Cell{X: 1, Z: 1}, InitialHeight: 3},
			{Cell: grid.Cell{X: 5, Z: 2}, InitialHeight: 2},
			{Cell: grid.Cell{X: 6, Z: 4}, InitialHeight: 2},
			{Cell: grid.Cell{X: 2, Z: 6}, InitialHeight: 2},
			{Cell: grid.Cell{X: 4, Z: 4}, InitialHeight: 3},
		},
	}
	sc.applyDefaults()
	return sc
}

// LoadScenario reads a YAML scenario file and applies defaults.
func LoadScenario(path string) (Scenario, error) {
	var sc Scenario
	raw, err := os.ReadFile(path)
	if err != nil {
		return sc, err
	}
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return sc, fmt.Errorf("scenario %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return sc, err
	}
	sc.applyDefaults()
	return sc, nil
}

func (sc *Scenario) applyDefaults() {
	if sc.Name == "" {
		sc.Name = "scenario"
	}
	if sc.Nav.CellSize <= 0 {
		sc.Nav = nav.DefaultOptions()
	}
	if sc.Width <= 0 || sc.Depth <= 0 {
		w, d := sc.extent()
		if sc.Width <= 0 {
			sc.Width = w
		}
		if sc.Depth <= 0 {
			sc.Depth = d
		}
	}
	if sc.MaxIterations <= 0 {
		sc.MaxIterations = 8 + 4*len(sc.Steps)
	}
}

// extent derives grid dimensions from the referenced cells plus one cell of
// margin so every referenced cell keeps its 4-neighborhood in bounds.
func (sc *Scenario) extent() (int, int) {
	maxX, maxZ := sc.Start.X, sc.Start.Z
	consider := func(c grid.Cell) {
		if c.X > maxX {
			maxX = c.X
		}
		if c.Z > maxZ {
			maxZ = c.Z
		}
	}
	consider(sc.Goal)
	for _, st := range sc.Steps {
		consider(st.Cell)
	}
	for _, sup := range sc.Supplies {
		consider(sup.Cell)
	}
	for _, ih := range sc.InitialHeights {
		consider(ih.Cell)
	}
	return maxX + 2, maxZ + 2
}

// Validate rejects scenarios the planner cannot meaningfully run.
func (sc *Scenario) Validate() error {
	if sc.GoalHeight < 0 {
		return fmt.Errorf("goal_height must be non-negative, got %d", sc.GoalHeight)
	}
	for i, st := range sc.Steps {
		if st.TargetHeight < 0 {
			return fmt.Errorf("step %d: target_height must be non-negative", i)
		}
	}
	for i, sup := range sc.Supplies {
		if sup.InitialHeight < 0 {
			return fmt.Errorf("supply %d: initial_height must be non-negative", i)
		}
	}
	for i, ih := range sc.InitialHeights {
		if ih.Height < 0 {
			return fmt.Errorf("initial_heights %d: height must be non-negative", i)
		}
	}
	return nil
}

// BuildWorld seeds the live world for this scenario: supply stacks, the
// goal platform, then explicit initial heights, agent on its start cell.
func (sc *Scenario) BuildWorld() *World {
	g := grid.NewHeightGrid(sc.Width, sc.Depth)
	for _, sup := range sc.Supplies {
		g.Set(sup.Cell, sup.InitialHeight)
	}
	g.Set(sc.Goal, sc.GoalHeight)
	for _, ih := range sc.InitialHeights {
		g.Set(ih.Cell, ih.Height)
	}
	u := grid.Units{CellSize: sc.Nav.CellSize, UnitHeight: sc.Nav.UnitHeight}
	w := &World{
		Grid:     g,
		Agent:    u.CellTop(sc.Start, g.At(sc.Start)),
		Carrying: sc.Carrying,
		Opts:     sc.Nav,
	}
	w.RefreshMesh()
	return w
}

// Digest is a stable identifier of the scenario content, used by the run
// index.
func (sc *Scenario) Digest() string {
	b, _ := json.Marshal(sc)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:8])
}
