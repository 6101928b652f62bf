package cli

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"stairforge.ai/internal/transport/observer"
)

var (
	serveAddr         string
	serveScenarioFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve planner runs to observer clients over WebSocket",
	Long: `Serve listens for observer connections. Each client that completes the
SUBSCRIBE handshake gets a fresh headless run of the configured scenario
streamed as RUN_HEADER, ACTION..., RUN_RESULT messages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := loadScenario(serveScenarioFile)
		if err != nil {
			return err
		}
		logger := log.New(os.Stderr, "", log.LstdFlags)

		srv := observer.NewServer(sc, logger)
		mux := http.NewServeMux()
		mux.HandleFunc("/observer", srv.Handler())

		hs := &http.Server{
			Addr:              serveAddr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		logger.Printf("observer server listening on %s (scenario %q)", serveAddr, sc.Name)
		return hs.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8390", "listen address")
	serveCmd.Flags().StringVarP(&serveScenarioFile, "scenario", "s", "", "scenario YAML file (default: canonical scenario)")
	rootCmd.AddCommand(serveCmd)
}
