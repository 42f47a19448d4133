package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modelops/hubsync/pkg/cli"
)

// NewPathsCmd creates the paths command
func NewPathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths <model-id> [bucket-uri]",
		Short: "Show the cache directories for a model",
		Long: `Show the local cache directories for a model: the download root, the
refs directory, and the snapshot (checkpoint) directory for the bucket's
current main ref.

Resolving the snapshot directory fetches refs/main from the bucket. With
--mkdir, the refs and snapshot directories are created if missing.

Examples:
  hubsync paths meta-llama/Llama-2-7b-hf
  hubsync paths org/model s3://my-bucket/models/model --mkdir`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			modelID := args[0]
			mkdir, _ := cmd.Flags().GetBool("mkdir")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			bucketURI := bucketURIFor(cfg, modelID, args)

			syncer, err := buildSyncer(cmd.Context(), cmd, cfg)
			if err != nil {
				return err
			}

			checkpointDir, refsDir, err := syncer.CheckpointAndRefsDir(cmd.Context(), modelID, bucketURI, mkdir)
			if err != nil {
				return fmt.Errorf("failed to resolve cache paths: %w", err)
			}

			cli.PrintTable(
				[]string{"PATH", "LOCATION"},
				[][]string{
					{"download", syncer.DownloadPath(modelID)},
					{"refs", refsDir},
					{"checkpoint", checkpointDir},
				},
			)
			return nil
		},
	}

	cmd.Flags().Bool("mkdir", false, "Create the refs and snapshot directories if missing")
	cmd.Flags().Bool("no-sign-request", false, "Use anonymous (unsigned) S3 requests")

	return cmd
}
