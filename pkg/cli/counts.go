package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ngfetch/pkg/cli/config"
	"github.com/m-mizutani/ngfetch/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdCounts(targetCfg *config.Target) *cli.Command {
	return &cli.Command{
		Name:  "counts",
		Usage: "Build library-counts.txt (five-letter words with total match counts) from downloaded shards",
		Action: func(ctx context.Context, c *cli.Command) error {
			dir, err := targetCfg.Resolve()
			if err != nil {
				return err
			}

			if _, err := usecase.NewCounts().Build(ctx, dir); err != nil {
				return goerr.Wrap(err, "failed to build dictionary")
			}
			return nil
		},
	}
}
