package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modelops/hubsync/pkg/modelsync"
)

// NewMirrorCmd creates the mirror command
func NewMirrorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mirror <model-id>",
		Short: "Print the default mirror bucket URI for a model",
		Example: `  hubsync mirror meta-llama/Llama-2-7b-hf
  s3://llama-2-weights/models--meta-llama--Llama-2-7b-hf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(modelsync.MirrorLink(args[0]))
			return nil
		},
	}
}
