package cmd

import (
	"fmt"
	"text/tabwriter"

	"remote-loader/core/remote"

	"github.com/spf13/cobra"
)

// remotesCmd represents the remotes command
var remotesCmd = &cobra.Command{
	Use:   "remotes",
	Short: "Manage the remote catalogue",
}

// remotesListCmd represents the remotes list command
var remotesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured and stored remotes",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(false)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		defs, err := a.remotes.Remotes(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tENTRY\tKEY\tTIMEOUT")
		for _, d := range defs {
			desc := a.remotes.Descriptor(d)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Name, d.EntryURL, d.ExposedKey, desc.Timeout)
		}
		return w.Flush()
	},
}

// remotesAddCmd represents the remotes add command
var remotesAddCmd = &cobra.Command{
	Use:   "add <name> <entry-url>",
	Short: "Store a remote in the catalogue database",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		timeoutMs, _ := cmd.Flags().GetInt("timeout-ms")
		manifestPath, _ := cmd.Flags().GetString("manifest")
		fallback, _ := cmd.Flags().GetString("fallback-css")

		a, err := bootstrap(true)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		def := remote.Definition{
			Name:                   args[0],
			EntryURL:               args[1],
			ExposedKey:             key,
			ManifestPath:           manifestPath,
			FallbackStylesheetPath: fallback,
			TimeoutMs:              timeoutMs,
		}
		if err := a.remotes.Save(cmd.Context(), def); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved remote %s\n", def.Name)
		return nil
	},
}

// remotesRemoveCmd represents the remotes remove command
var remotesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a remote from the catalogue database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(true)
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if err := a.remotes.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed remote %s\n", args[0])
		return nil
	},
}

func init() {
	remotesAddCmd.Flags().String("key", "./Module", "Exposed module key")
	remotesAddCmd.Flags().Int("timeout-ms", 0, "Module load deadline in milliseconds (0 uses loader.timeout_ms)")
	remotesAddCmd.Flags().String("manifest", "", "Stylesheet manifest path relative to the remote base")
	remotesAddCmd.Flags().String("fallback-css", "", "Fallback stylesheet path relative to the remote base")

	remotesCmd.AddCommand(remotesListCmd, remotesAddCmd, remotesRemoveCmd)
	RootCmd.AddCommand(remotesCmd)
}
