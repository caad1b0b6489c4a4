package interfaces

import (
	"context"

	"github.com/m-mizutani/ngfetch/pkg/domain/model"
)

// ShardSource opens remote shards for reading
type ShardSource interface {
	// Open starts reading the shard. A non-2xx response is not an error;
	// the caller receives its body and status code.
	Open(ctx context.Context, shard model.Shard) (*model.ShardObject, error)
}
