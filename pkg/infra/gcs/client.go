package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ngfetch/pkg/domain/model"
	"github.com/m-mizutani/ngfetch/pkg/domain/types"
	"google.golang.org/api/option"
)

// Client reads shards from the corpus bucket through the Cloud Storage API
type Client struct {
	storageClient *storage.Client
	bucket        string
}

type config struct {
	bucket          string
	credentialsJSON []byte
	clientOptions   []option.ClientOption
}

// Option is a functional option for Client
type Option func(*config)

// WithBucket overrides the bucket name
func WithBucket(bucket string) Option {
	return func(c *config) {
		c.bucket = bucket
	}
}

// WithCredentialsJSON authenticates with a service account key.
// Without it the client accesses the public bucket anonymously.
func WithCredentialsJSON(data []byte) Option {
	return func(c *config) {
		c.credentialsJSON = data
	}
}

// WithClientOptions appends raw client options, e.g. an emulator endpoint
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(c *config) {
		c.clientOptions = append(c.clientOptions, opts...)
	}
}

// NewClient creates a storage client for the corpus bucket
func NewClient(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &config{
		bucket: types.Bucket,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	clientOpts := cfg.clientOptions
	if len(cfg.credentialsJSON) > 0 {
		clientOpts = append(clientOpts, option.WithCredentialsJSON(cfg.credentialsJSON))
	} else {
		clientOpts = append(clientOpts, option.WithoutAuthentication())
	}

	storageClient, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &Client{
		storageClient: storageClient,
		bucket:        cfg.bucket,
	}, nil
}

// Open starts reading the shard object. A missing object is an error.
func (c *Client) Open(ctx context.Context, shard model.Shard) (*model.ShardObject, error) {
	object := shard.ObjectName()
	location := fmt.Sprintf("gs://%s/%s", c.bucket, object)

	reader, err := c.storageClient.Bucket(c.bucket).Object(object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, goerr.Wrap(err, "shard object not found", goerr.V("location", location))
		}
		return nil, goerr.Wrap(err, "failed to open shard object", goerr.V("location", location))
	}

	return &model.ShardObject{
		Body:       reader,
		StatusCode: http.StatusOK,
		Location:   location,
	}, nil
}

// Close releases the underlying storage client
func (c *Client) Close() error {
	if err := c.storageClient.Close(); err != nil {
		return goerr.Wrap(err, "failed to close storage client")
	}
	return nil
}
