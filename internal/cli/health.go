package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const healthPollInterval = 250 * time.Millisecond

func newHealthCmd() *cobra.Command {
	var wait time.Duration

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Long: `Check that the server is up and its storage is reachable.

With --wait the check is retried until it passes or the duration runs out,
which suits scripts that start the server in the background.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deadline := time.Now().Add(wait)

			var result HealthResult
			for {
				err := client.Get("/api/v1/health", &result)
				if err == nil {
					break
				}
				if !time.Now().Before(deadline) {
					return fmt.Errorf("server unhealthy: %w", err)
				}

				select {
				case <-cmd.Context().Done():
					return cmd.Context().Err()
				case <-time.After(healthPollInterval):
				}
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 0, "Keep retrying for up to this long")

	return cmd
}
