package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ngfetch/pkg/cli/config"
	"github.com/m-mizutani/ngfetch/pkg/domain/model"
	"github.com/m-mizutani/ngfetch/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdHead(targetCfg *config.Target) *cli.Command {
	var lines int

	return &cli.Command{
		Name:      "head",
		Usage:     "Print the first lines of a downloaded shard",
		ArgsUsage: "<shard number 1-24>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "lines",
				Aliases:     []string{"n"},
				Usage:       "Number of lines to print",
				Value:       10,
				Destination: &lines,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return goerr.New("exactly one shard number is required", goerr.V("args", c.Args().Slice()))
			}

			shard, err := model.ParseShardIndex(c.Args().First())
			if err != nil {
				return err
			}

			dir, err := targetCfg.Resolve()
			if err != nil {
				return err
			}

			return usecase.NewHead().Head(ctx, dir, shard, lines, os.Stdout)
		},
	}
}
