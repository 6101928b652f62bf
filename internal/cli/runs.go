package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stairforge.ai/internal/persistence/rundb"
)

var (
	runsDBPath string
	runsLimit  int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs from a SQLite run index",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := rundb.Open(runsDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		rows, err := store.Runs(runsLimit)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("no recorded runs")
			return nil
		}

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		for _, r := range rows {
			outcome := green("ok")
			if !r.ReachedGoal {
				outcome = red(r.FailureCode)
			}
			fmt.Printf("#%d  %-24s %s  iters=%d actions=%d  %s\n",
				r.ID, r.Scenario, outcome, r.Iterations, r.Actions, r.RecordedAt)
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().StringVar(&runsDBPath, "db", "stairforge.db", "SQLite run index path")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 50, "maximum rows to list")
	rootCmd.AddCommand(runsCmd)
}
