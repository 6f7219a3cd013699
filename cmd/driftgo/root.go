package main

import (
	"context"
	"fmt"
	"log/slog"

	minioclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/cobra"

	"github.com/hupe1980/driftgo"
	"github.com/hupe1980/driftgo/blobstore"
	miniostore "github.com/hupe1980/driftgo/blobstore/minio"
	s3store "github.com/hupe1980/driftgo/blobstore/s3"
)

func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "driftgo",
		Short:         "Semantic-change scoring for contextual embeddings",
		Long:          `Computes APD and cluster-based semantic change scores for target words from two corpus representation stores.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "config.yaml", "Path to the YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit JSON-formatted logs")

	rootCmd.AddCommand(
		NewScoreCmd(),
		NewScanCmd(),
	)

	return rootCmd
}

func loadConfig(cmd *cobra.Command) (*driftgo.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return driftgo.LoadConfig(path)
}

func newLogger(cmd *cobra.Command) *driftgo.Logger {
	level := slog.LevelInfo
	switch name, _ := cmd.Flags().GetString("log-level"); name {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if json, _ := cmd.Flags().GetBool("json-logs"); json {
		return driftgo.NewJSONLogger(level)
	}
	return driftgo.NewTextLogger(level)
}

// openStore builds the configured blob store backend.
func openStore(ctx context.Context, cfg driftgo.StoreConfig) (blobstore.BlobStore, error) {
	switch cfg.Backend {
	case "", "local":
		return blobstore.NewLocal(cfg.Path), nil
	case "s3":
		return s3store.New(ctx, cfg.Bucket, s3store.WithPrefix(cfg.Prefix))
	case "minio":
		client, err := minioclient.New(cfg.Endpoint, &minioclient.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return miniostore.NewStore(client, cfg.Bucket, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
