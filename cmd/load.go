package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"remote-loader/feature/remotes"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load <name|entry-url>",
	Short: "Load a remote once and print its routes",
	Long: `Loads a remote from the catalogue, or directly by entry URL, and prints its
routes together with the stylesheets inserted while loading. An unavailable
remote prints the blank fallback route and the reason; the command still succeeds.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		key, _ := cmd.Flags().GetString("key")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		wait, _ := cmd.Flags().GetDuration("wait")

		a, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		def, err := a.remotes.Resolve(ctx, args[0], key)
		if err != nil {
			return err
		}
		if timeout > 0 {
			def.TimeoutMs = int(timeout.Milliseconds())
		}

		out := a.remotes.Load(ctx, def)

		// Stylesheets load in the background; give them a moment to land.
		if wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
			}
		}

		result := remotes.RoutesResponse{
			Name:        def.Name,
			Routes:      remotes.Sanitize(out.Routes),
			Fallback:    out.Fallback,
			ElapsedMs:   out.Elapsed.Milliseconds(),
			Stylesheets: a.remotes.Stylesheets(),
		}
		if out.Err != nil {
			result.Error = out.Err.Error()
		}

		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))

		a.logger.Info("Remote load completed",
			zap.String("entry", def.EntryURL),
			zap.Bool("fallback", out.Fallback),
			zap.Int("routes", len(out.Routes)),
			zap.Duration("elapsed", out.Elapsed),
		)
		return nil
	},
}

func init() {
	loadCmd.Flags().String("key", "", "Exposed module key (defaults to the catalogue entry or ./Module)")
	loadCmd.Flags().Duration("timeout", 0, "Module load deadline (defaults to loader.timeout_ms)")
	loadCmd.Flags().Duration("wait", time.Second, "Time to wait for background stylesheet loading")
	RootCmd.AddCommand(loadCmd)
}
