package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modelops/hubsync/pkg/modelsync"
)

// NewResolveCmd creates the resolve command
func NewResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <bucket-uri>",
		Short: "Resolve a bucket's refs/main to a commit hash",
		Long: `Resolve the mutable "main" ref stored at <bucket-uri>/refs/main to its
commit hash. The hash is printed and also written to a local ref file
("main" by default) for downstream jobs.

Examples:
  hubsync resolve s3://my-bucket/models/llama
  hubsync resolve s3://public-bucket/models/llama --no-sign-request
  hubsync resolve s3://my-bucket/models/llama --ref-file /tmp/llama-main`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bucketURI := args[0]
			refFile, _ := cmd.Flags().GetString("ref-file")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			syncer, err := buildSyncer(cmd.Context(), cmd, cfg, modelsync.WithRefFile(refFile))
			if err != nil {
				return err
			}

			hash, err := syncer.ResolveRef(cmd.Context(), bucketURI)
			if err != nil {
				return fmt.Errorf("failed to resolve ref: %w", err)
			}

			fmt.Println(hash)
			return nil
		},
	}

	cmd.Flags().Bool("no-sign-request", false, "Use anonymous (unsigned) S3 requests")
	cmd.Flags().String("ref-file", "", "Local file to write the resolved hash to (default \"main\")")

	return cmd
}
