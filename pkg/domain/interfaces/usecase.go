package interfaces

import (
	"context"
	"io"

	"github.com/m-mizutani/ngfetch/pkg/domain/model"
)

// FetchUseCase downloads every shard into a target directory
type FetchUseCase interface {
	// Run fetches all shards sequentially into dir
	Run(ctx context.Context, dir string) (*model.FetchReport, error)
}

// HeadUseCase previews a downloaded shard
type HeadUseCase interface {
	// Head writes the first n decompressed lines of the shard file in dir to w
	Head(ctx context.Context, dir string, shard model.Shard, n int, w io.Writer) error
}

// CountsUseCase builds the word count dictionary from downloaded shards
type CountsUseCase interface {
	// Build reads every shard file in dir and writes the dictionary next to them
	Build(ctx context.Context, dir string) (*model.WordCounts, error)
}
