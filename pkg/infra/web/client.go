package web

import (
	"context"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ngfetch/pkg/domain/interfaces"
	"github.com/m-mizutani/ngfetch/pkg/domain/model"
	"github.com/m-mizutani/ngfetch/pkg/domain/types"
)

type client struct {
	baseURL    string
	httpClient *http.Client
}

// Option is a functional option for the HTTP shard source
type Option func(*client)

// WithBaseURL replaces the corpus location. Used by tests to point at a mock server.
func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a shard source reading over plain HTTP
func NewClient(opts ...Option) interfaces.ShardSource {
	c := &client{
		baseURL:    types.BaseURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open issues a GET for the shard. The response is handed back whatever its status.
func (c *client) Open(ctx context.Context, shard model.Shard) (*model.ShardObject, error) {
	url := shard.URL(c.baseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create shard request", goerr.V("url", url))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to request shard", goerr.V("url", url))
	}

	return &model.ShardObject{
		Body:       resp.Body,
		StatusCode: resp.StatusCode,
		Location:   url,
	}, nil
}
