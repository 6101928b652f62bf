package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stairforge.ai/internal/plan"
	"stairforge.ai/internal/protocol"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Schema-check a scenario file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := protocol.ValidateScenarioBytes(raw); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		sc, err := plan.LoadScenario(path)
		if err != nil {
			return err
		}
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s %s: %d steps, %d supplies, goal (%d,%d) height %d, budget %d\n",
			green("ok"), sc.Name, len(sc.Steps), len(sc.Supplies),
			sc.Goal.X, sc.Goal.Z, sc.GoalHeight, sc.MaxIterations)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
