package cli

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/ngfetch/pkg/cli/config"
	"github.com/m-mizutani/ngfetch/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg   config.Logger
		sentryCfg   config.Sentry
		targetCfg   config.Target
		sourceCfg   config.Source
		progressCfg config.Progress
		logger      *slog.Logger
		flush       = func() {}
	)

	// Root flags are inherited by subcommands, so they work both with and
	// without the default command name
	var flags []cli.Flag
	flags = append(flags, loggerCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, targetCfg.Flags()...)
	flags = append(flags, sourceCfg.Flags()...)
	flags = append(flags, progressCfg.Flags()...)

	app := &cli.Command{
		Name:    "ngfetch",
		Usage:   "Download the Google Books Ngram English 1-gram shards",
		Version: types.Version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}
			logger = logger.With("run_id", uuid.NewString())

			sentryFlush, err := sentryCfg.Configure()
			if err != nil {
				return nil, err
			}
			flush = sentryFlush

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			flush()
			return nil
		},
		// Invoked without arguments it just downloads everything
		DefaultCommand: "fetch",
		Commands: []*cli.Command{
			cmdFetch(&targetCfg, &sourceCfg, &progressCfg),
			cmdHead(&targetCfg),
			cmdCounts(&targetCfg),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
