package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ngfetch/pkg/cli/config"
	"github.com/m-mizutani/ngfetch/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdFetch(targetCfg *config.Target, sourceCfg *config.Source, progressCfg *config.Progress) *cli.Command {
	return &cli.Command{
		Name:    "fetch",
		Aliases: []string{"f"},
		Usage:   "Download all shards into the target directory (default command)",
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			dir, err := targetCfg.Resolve()
			if err != nil {
				return err
			}

			logger.Debug("Fetch configuration",
				"dir", dir,
				"source", *sourceCfg,
			)

			source, release, err := sourceCfg.Build(ctx)
			if err != nil {
				return err
			}
			defer release()

			var opts []usecase.FetchOption
			if !progressCfg.Quiet {
				opts = append(opts, usecase.WithProgress(os.Stdout))
			}

			report, err := usecase.NewFetch(source, opts...).Run(ctx, dir)
			if err != nil {
				return goerr.Wrap(err, "failed to fetch shards")
			}

			// Failed shards were already logged; they never fail the command
			if failed := report.Failed(); len(failed) > 0 {
				logger.Warn("Some shards were not fetched cleanly", "count", len(failed))
			}

			return nil
		},
	}
}
