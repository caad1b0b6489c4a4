package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ngfetch/pkg/domain/types"
)

// Shard identifies one numbered archive of the corpus (1-based)
type Shard struct {
	Index int
}

// Shards returns every shard of the corpus in ascending order
func Shards() []Shard {
	shards := make([]Shard, 0, types.ShardCount)
	for i := 1; i <= types.ShardCount; i++ {
		shards = append(shards, Shard{Index: i})
	}
	return shards
}

// ParseShardIndex parses a decimal shard number and checks it is in range
func ParseShardIndex(s string) (Shard, error) {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return Shard{}, goerr.Wrap(err, "shard index is not a number", goerr.V("input", s))
	}
	shard := Shard{Index: i}
	if err := shard.Validate(); err != nil {
		return Shard{}, err
	}
	return shard, nil
}

// Validate checks the index is within 1..ShardCount
func (s Shard) Validate() error {
	if s.Index < 1 || s.Index > types.ShardCount {
		return goerr.New("shard index out of range",
			goerr.V("index", s.Index),
			goerr.V("max", types.ShardCount),
		)
	}
	return nil
}

// FileName returns the archive name, e.g. 1-00001-of-00024.gz
func (s Shard) FileName() string {
	return fmt.Sprintf("1-%0*d-of-%0*d.gz", types.ShardWidth, s.Index, types.ShardWidth, types.ShardCount)
}

// URL returns base concatenated with the file name
func (s Shard) URL(base string) string {
	return base + s.FileName()
}

// ObjectName returns the object key of the shard inside the storage bucket
func (s Shard) ObjectName() string {
	return types.ObjectPrefix + s.FileName()
}

func (s Shard) String() string {
	return s.FileName()
}
