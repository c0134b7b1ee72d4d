package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/sarchlab/vmsim/mem/vm/mmu"
	"github.com/sarchlab/vmsim/monitoring"
)

const serveEventLogSize = 1000

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the engine over HTTP.",
	Long: "`serve --port 8080 --open` configures an engine, starts the " +
		"monitoring server and optionally opens it in a browser. The server " +
		"runs until interrupted.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		port, _ := cmd.Flags().GetInt("port")
		open, _ := cmd.Flags().GetBool("open")

		eventLog := mmu.NewEventLog(serveEventLogSize)

		s, err := newSession(cmd, cmd.ErrOrStderr(), eventLog)
		if err != nil {
			return err
		}
		defer s.close()

		m := monitoring.NewMonitor().WithPortNumber(port)
		m.RegisterEngine(s.engine)
		m.RegisterEventLog(eventLog)
		m.RegisterOutcomeCounter(s.outcomes)

		actualPort := m.StartServer()
		url := fmt.Sprintf("http://localhost:%d", actualPort)

		if open {
			if err := browser.OpenURL(url); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to open browser: %v\n", err)
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		<-ctx.Done()

		return nil
	},
}

func init() {
	serveCmd.Flags().Int("port", envInt("VMSIM_PORT", 0),
		"port of the monitoring server, 0 picks a free port")
	serveCmd.Flags().Bool("open", false, "open the monitor in a browser")

	rootCmd.AddCommand(serveCmd)
}
