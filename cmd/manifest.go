package cmd

import (
	"fmt"

	"remote-loader/core/config"
	"remote-loader/core/logger"
	"remote-loader/core/manifest"
	"remote-loader/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// manifestCmd represents the manifest command
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Build the stylesheet manifest of a remote",
}

// manifestWriteCmd represents the manifest write command
var manifestWriteCmd = &cobra.Command{
	Use:   "write <dist-dir>",
	Short: "Write assets/assets.json for a built remote",
	Long: `Inspects a remote's build output, picks its main stylesheet and writes
assets/assets.json. With --publish the manifest and the stylesheets it lists are
uploaded to the configured storage bucket under --prefix, and the stored
manifest is read back to confirm it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		distDir := args[0]
		publish, _ := cmd.Flags().GetBool("publish")
		prefix, _ := cmd.Flags().GetString("prefix")

		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		var m manifest.Manifest
		if publish {
			client, err := storage.NewClient(cfg.Storage)
			if err != nil {
				return fmt.Errorf("failed to create storage client: %w", err)
			}
			m, err = manifest.Publish(ctx, client, cfg.Storage.Bucket, prefix, distDir)
			if err != nil {
				return err
			}
			if err := manifest.Verify(ctx, client, cfg.Storage.Bucket, prefix, m); err != nil {
				return err
			}
			logg.Info("Manifest published",
				zap.String("bucket", cfg.Storage.Bucket),
				zap.String("object", manifest.ObjectName(prefix, manifest.Path)),
				zap.Strings("css", m.CSS))
		} else {
			m, err = manifest.Write(distDir)
			if err != nil {
				return err
			}
			logg.Info("Manifest written", zap.String("dir", distDir), zap.Strings("css", m.CSS))
		}

		data, err := m.Encode()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %s\n", manifest.Path, data)
		return nil
	},
}

func init() {
	manifestWriteCmd.Flags().Bool("publish", false, "Upload the manifest and stylesheets to storage")
	manifestWriteCmd.Flags().String("prefix", "", "Object prefix, usually the remote name")
	manifestCmd.AddCommand(manifestWriteCmd)
	RootCmd.AddCommand(manifestCmd)
}
