package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modelops/hubsync/pkg/config"
	"github.com/modelops/hubsync/pkg/modelsync"
	"github.com/modelops/hubsync/pkg/storage"
)

// loadConfig resolves the effective configuration for a command invocation:
// the --config file when given, otherwise environment-derived defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// storeFlags translates a command's store-related flags into the flag-list
// form, so storage.AnonymousFromFlags stays the single place that decides
// what the list means.
func storeFlags(cmd *cobra.Command) []string {
	var flags []string
	if noSign, _ := cmd.Flags().GetBool("no-sign-request"); noSign {
		flags = append(flags, storage.NoSignRequestFlag)
	}
	return flags
}

// buildSyncer wires a Syncer from the config and per-command flags. The
// --no-sign-request flag selects anonymous access in addition to the config
// setting.
func buildSyncer(ctx context.Context, cmd *cobra.Command, cfg *config.Config, opts ...modelsync.Option) (*modelsync.Syncer, error) {
	store, err := storage.NewS3Store(ctx, storage.Options{
		Anonymous: cfg.Store.Anonymous || storage.AnonymousFromFlags(storeFlags(cmd)),
		Region:    cfg.Store.Region,
	})
	if err != nil {
		return nil, err
	}

	opts = append([]modelsync.Option{modelsync.WithRefFile(cfg.RefFile)}, opts...)
	return modelsync.New(store, cfg.CacheRoot, opts...), nil
}

// bucketURIFor picks the bucket URI for a model: the explicit argument when
// present, then the configured default, then the model's mirror link.
func bucketURIFor(cfg *config.Config, modelID string, args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	if cfg.Store.DefaultBucketURI != "" {
		return cfg.Store.DefaultBucketURI
	}
	return modelsync.MirrorLink(modelID)
}
