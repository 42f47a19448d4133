package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modelops/hubsync/cmd/hubsync/commands"
	"github.com/modelops/hubsync/pkg/observability/logging"
)

var (
	// Version information (set by build flags)
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	if _, err := logging.InitLoggerFromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
	}

	rootCmd := &cobra.Command{
		Use:   "hubsync",
		Short: "Sync model checkpoints from S3 into a local hub cache",
		Long: `hubsync copies model checkpoint files from an S3 bucket into a local
cache laid out like the Hugging Face hub cache, so training jobs can load
weights by model id without network access.

Common workflows:
  hubsync download org/llama-2-7b            # Sync a model from its mirror bucket
  hubsync resolve s3://bucket/models/llama   # Resolve refs/main to a commit hash
  hubsync paths org/llama-2-7b --mkdir       # Show (and create) cache directories
  hubsync mirror org/llama-2-7b              # Print the default mirror URI

For detailed help on any command, use:
  hubsync <command> --help`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to configuration file")

	rootCmd.AddCommand(commands.NewDownloadCmd())
	rootCmd.AddCommand(commands.NewResolveCmd())
	rootCmd.AddCommand(commands.NewPathsCmd())
	rootCmd.AddCommand(commands.NewMirrorCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
