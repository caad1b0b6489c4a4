package usecase

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ngfetch/pkg/domain/interfaces"
	"github.com/m-mizutani/ngfetch/pkg/domain/model"
)

// Ngram lines can be long when a word appears in many years
const maxLineSize = 16 * 1024 * 1024

type headUseCase struct{}

// NewHead creates a new instance of HeadUseCase
func NewHead() interfaces.HeadUseCase {
	return &headUseCase{}
}

// Head decompresses the local shard file and writes its first n lines to w
func (uc *headUseCase) Head(ctx context.Context, dir string, shard model.Shard, n int, w io.Writer) error {
	if n <= 0 {
		return goerr.New("line count must be positive", goerr.V("lines", n))
	}

	path := filepath.Join(dir, shard.FileName())
	ctxlog.From(ctx).Debug("Reading shard", "path", path, "lines", n)

	f, err := os.Open(path)
	if err != nil {
		return goerr.Wrap(err, "failed to open shard file", goerr.V("path", path))
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return goerr.Wrap(err, "failed to read gzip header", goerr.V("path", path))
	}
	defer zr.Close()

	scanner := bufio.NewScanner(zr)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for i := 0; i < n && scanner.Scan(); i++ {
		if _, err := fmt.Fprintf(w, "%s\n", scanner.Bytes()); err != nil {
			return goerr.Wrap(err, "failed to write line")
		}
	}
	if err := scanner.Err(); err != nil {
		return goerr.Wrap(err, "failed to decompress shard", goerr.V("path", path))
	}

	return nil
}
