package config

import "github.com/urfave/cli/v3"

// Progress holds per-shard progress output configuration
type Progress struct {
	Quiet bool
}

// Flags returns CLI flags for progress configuration
func (c *Progress) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "quiet",
			Aliases:     []string{"q"},
			Usage:       "Do not print per-shard progress",
			Destination: &c.Quiet,
			Sources:     cli.EnvVars("NGFETCH_QUIET"),
		},
	}
}
