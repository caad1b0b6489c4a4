package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ngfetch/pkg/domain/interfaces"
	"github.com/m-mizutani/ngfetch/pkg/infra/gcs"
	"github.com/m-mizutani/ngfetch/pkg/infra/web"
	"github.com/urfave/cli/v3"
)

// Source holds configuration of where shards are read from
type Source struct {
	Name            string
	CredentialsJSON string `masq:"secret"`
}

// Flags returns CLI flags for source configuration
func (c *Source) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "source",
			Usage:       "Shard source (http, gcs)",
			Value:       "http",
			Destination: &c.Name,
			Sources:     cli.EnvVars("NGFETCH_SOURCE"),
		},
		&cli.StringFlag{
			Name:        "gcs-credentials-json",
			Usage:       "Service account key JSON for the gcs source (anonymous if empty)",
			Destination: &c.CredentialsJSON,
			Sources:     cli.EnvVars("NGFETCH_GCS_CREDENTIALS_JSON"),
		},
	}
}

// Build creates the configured shard source. The returned function releases
// resources held by the source and must be called when done.
func (c *Source) Build(ctx context.Context) (interfaces.ShardSource, func(), error) {
	switch c.Name {
	case "", "http":
		return web.NewClient(), func() {}, nil

	case "gcs":
		var opts []gcs.Option
		if c.CredentialsJSON != "" {
			opts = append(opts, gcs.WithCredentialsJSON([]byte(c.CredentialsJSON)))
		}
		client, err := gcs.NewClient(ctx, opts...)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to create gcs source")
		}
		return client, func() { _ = client.Close() }, nil

	default:
		return nil, nil, goerr.New("unknown shard source", goerr.V("source", c.Name))
	}
}
