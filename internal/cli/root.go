package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stairforge.ai/internal/plan"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "stairforge",
	Short: "HTN planner for a staircase-building block agent",
	Long: `Stairforge plans and replans a block-stacking agent toward an elevated
goal cell: it decomposes the goal into Navigate/Pick/Place actions, builds
a staircase out of supply blocks, and climbs it.

  stairforge run                Run the canonical scenario headless
  stairforge run -s world.yaml  Run a scenario file
  stairforge serve              Stream runs to observer clients over WebSocket
  stairforge validate FILE      Schema-check a scenario file`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("stairforge version %s\n", version))
}

// loadScenario resolves the scenario for a command: a file when given,
// otherwise the canonical default.
func loadScenario(path string) (plan.Scenario, error) {
	if path == "" {
		return plan.DefaultScenario(), nil
	}
	return plan.LoadScenario(path)
}
