package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"stairforge.ai/internal/persistence/rundb"
	"stairforge.ai/internal/persistence/runlog"
	"stairforge.ai/internal/plan"
	"stairforge.ai/internal/protocol"
)

var (
	runScenarioFile string
	runDBPath       string
	runLogDir       string
	runMaxIter      int
	runQuiet        bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scenario headless and print the result",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := loadScenario(runScenarioFile)
		if err != nil {
			return err
		}
		if runMaxIter > 0 {
			sc.MaxIterations = runMaxIter
		}

		logger := log.New(os.Stderr, "", log.LstdFlags)

		var rl *runlog.RunLogger
		if runLogDir != "" {
			rl = runlog.NewRunLogger(runLogDir)
			defer rl.Close()
			if err := rl.WriteHeader(sc.Name, sc.Digest()); err != nil {
				return fmt.Errorf("run log: %w", err)
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		runner := plan.NewRunner(sc, logger)
		seq := 0
		runner.OnAction = func(iteration int, a plan.PlannedAction) {
			if !runQuiet {
				fmt.Printf("  [%02d] %s\n", iteration, a.Desc)
			}
			if rl != nil {
				_ = rl.WriteAction(iteration, seq, a)
			}
			seq++
		}

		res, runErr := runner.Run(ctx)
		if rl != nil {
			_ = rl.WriteResult(res)
		}
		if runDBPath != "" {
			store, err := rundb.Open(runDBPath)
			if err != nil {
				return fmt.Errorf("run db: %w", err)
			}
			defer store.Close()
			if _, err := store.InsertRun(sc, res, protocol.FailureCode(res, sc.MaxIterations)); err != nil {
				return fmt.Errorf("run db: %w", err)
			}
		}

		printSummary(sc, res)
		if runErr != nil {
			return runErr
		}
		return nil
	},
}

func printSummary(sc plan.Scenario, res plan.RunResult) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	outcome := green("goal reached")
	if !res.ReachedGoal {
		outcome = red(fmt.Sprintf("failed (%s)", protocol.FailureCode(res, sc.MaxIterations)))
	}
	fmt.Printf("%s: %s after %s iterations, %s actions\n",
		cyan(sc.Name), outcome,
		cyan(fmt.Sprintf("%d", res.Iterations)),
		cyan(fmt.Sprintf("%d", len(res.Actions))))
	fmt.Printf("agent at (%.2f, %.2f, %.2f)\n",
		res.FinalAgentPos.X, res.FinalAgentPos.Y, res.FinalAgentPos.Z)
}

func init() {
	runCmd.Flags().StringVarP(&runScenarioFile, "scenario", "s", "", "scenario YAML file (default: canonical scenario)")
	runCmd.Flags().StringVar(&runDBPath, "db", "", "record the run in a SQLite index at this path")
	runCmd.Flags().StringVar(&runLogDir, "log-dir", "", "append the action stream to a JSONL+zstd run log under this directory")
	runCmd.Flags().IntVar(&runMaxIter, "max-iterations", 0, "override the scenario's iteration budget")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "suppress per-action output")
	rootCmd.AddCommand(runCmd)
}
