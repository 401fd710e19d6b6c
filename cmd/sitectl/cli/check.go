package cli

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/dkhalizov/site-pipeline/internal/application"
	"github.com/dkhalizov/site-pipeline/internal/infrastructure/logging"
	"github.com/dkhalizov/site-pipeline/internal/infrastructure/probe_http"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkTimeout time.Duration

var checkCmd = &cobra.Command{
	Use:   "check <url>",
	Short: "Probe a deployed endpoint for the delivery contract",
	Long:  "Fetches the root document and a known-missing path and verifies the distribution serves both with HTTP 200, proving the SPA fallback mapping is live.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logging.New()
		defer func() { _ = log.Sync() }()

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		uc := application.NewCheckUseCase(probe_http.New(checkTimeout))
		if err := uc.CheckSite(ctx, args[0]); err != nil {
			return err
		}

		log.Info("endpoint healthy", zap.String("url", args[0]))
		return nil
	},
}

func init() {
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 10*time.Second, "per-request timeout")

	rootCmd.AddCommand(checkCmd)
}
