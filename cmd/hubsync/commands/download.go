package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modelops/hubsync/pkg/cli"
	"github.com/modelops/hubsync/pkg/hubcache"
)

// NewDownloadCmd creates the download command
func NewDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <model-id> [bucket-uri]",
		Short: "Download a model's checkpoint files into the local cache",
		Long: `Download all checkpoint files for a model from an S3 bucket into the
local hub cache directory (models--<org>--<name>).

When no bucket URI is given, the configured default bucket or the model's
mirror link is used.

Examples:
  # Download from the default mirror bucket
  hubsync download meta-llama/Llama-2-7b-hf

  # Download from an explicit bucket, anonymously
  hubsync download org/model s3://my-bucket/models/model --no-sign-request

  # Only fetch tokenizer files
  hubsync download org/model --tokenizer-only`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			modelID := args[0]
			tokenizerOnly, _ := cmd.Flags().GetBool("tokenizer-only")
			force, _ := cmd.Flags().GetBool("force")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			bucketURI := bucketURIFor(cfg, modelID, args)

			syncer, err := buildSyncer(cmd.Context(), cmd, cfg)
			if err != nil {
				return err
			}

			dest := syncer.DownloadPath(modelID)
			if !force && !tokenizerOnly {
				complete, err := hubcache.IsModelComplete(dest, nil)
				if err != nil {
					return err
				}
				if complete {
					cli.Info(fmt.Sprintf("Model already present at %s (use --force to re-download)", dest))
					return nil
				}
			}

			if err := syncer.DownloadModel(cmd.Context(), modelID, bucketURI, tokenizerOnly); err != nil {
				return fmt.Errorf("failed to download model %s: %w", modelID, err)
			}

			cli.Success(fmt.Sprintf("Downloaded %s to %s", modelID, dest))
			return nil
		},
	}

	cmd.Flags().Bool("tokenizer-only", false, "Only download files whose path contains \"token\"")
	cmd.Flags().Bool("no-sign-request", false, "Use anonymous (unsigned) S3 requests")
	cmd.Flags().Bool("force", false, "Re-download even if the model looks complete")

	return cmd
}
