package usecase

import (
	"context"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ngfetch/pkg/domain/interfaces"
	"github.com/m-mizutani/ngfetch/pkg/domain/model"
	"github.com/m-mizutani/ngfetch/pkg/utils/errutil"
	"github.com/m-mizutani/ngfetch/pkg/utils/workdir"
)

var (
	colorOK   = color.New(color.FgGreen)
	colorWarn = color.New(color.FgYellow)
	colorFail = color.New(color.FgRed)
)

type fetchUseCase struct {
	source   interfaces.ShardSource
	progress io.Writer
}

// FetchOption is a functional option for the fetch use case
type FetchOption func(*fetchUseCase)

// WithProgress prints one line per shard to w
func WithProgress(w io.Writer) FetchOption {
	return func(uc *fetchUseCase) {
		uc.progress = w
	}
}

// NewFetch creates a new instance of FetchUseCase
func NewFetch(source interfaces.ShardSource, opts ...FetchOption) interfaces.FetchUseCase {
	uc := &fetchUseCase{
		source: source,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Run downloads every shard, in order, into dir. The working directory is
// switched to dir for the duration of the run and always switched back.
// Individual shard failures are logged and recorded in the report but never
// stop the loop.
func (uc *fetchUseCase) Run(ctx context.Context, dir string) (report *model.FetchReport, err error) {
	logger := ctxlog.From(ctx)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, goerr.Wrap(err, "failed to create target directory", goerr.V("dir", dir))
	}

	restore, err := workdir.Enter(dir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rErr := restore(); rErr != nil && err == nil {
			err = rErr
		}
	}()

	logger.Info("Fetching shards", "dir", dir)

	report = &model.FetchReport{Dir: dir}
	for _, shard := range model.Shards() {
		result := uc.fetchShard(ctx, shard)
		uc.printProgress(&result)
		report.Results = append(report.Results, result)
	}

	logger.Info("Fetched shards",
		"dir", dir,
		"total", len(report.Results),
		"succeeded", report.Succeeded(),
	)

	return report, nil
}

func (uc *fetchUseCase) fetchShard(ctx context.Context, shard model.Shard) model.ShardResult {
	logger := ctxlog.From(ctx).With("shard", shard.FileName())
	result := model.ShardResult{Shard: shard}

	obj, err := uc.source.Open(ctx, shard)
	if err != nil {
		result.Err = err
		errutil.Handle(ctx, "Failed to fetch shard", err)
		return result
	}
	defer obj.Body.Close()

	result.StatusCode = obj.StatusCode
	if !obj.IsSuccess() {
		logger.Warn("Shard request returned non-success status, writing body as is",
			"status", obj.StatusCode,
			"location", obj.Location,
		)
	}

	n, err := writeFile(shard.FileName(), obj.Body)
	result.Bytes = n
	if err != nil {
		result.Err = err
		errutil.Handle(ctx, "Failed to write shard", err)
		return result
	}

	logger.Debug("Wrote shard",
		"location", obj.Location,
		"status", obj.StatusCode,
		"bytes", n,
	)

	return result
}

// writeFile creates or truncates name and copies r into it
func writeFile(name string, r io.Reader) (int64, error) {
	f, err := os.Create(name)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create shard file", goerr.V("file", name))
	}

	n, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		return n, goerr.Wrap(err, "failed to copy shard body", goerr.V("file", name), goerr.V("bytes", n))
	}

	if err := f.Close(); err != nil {
		return n, goerr.Wrap(err, "failed to close shard file", goerr.V("file", name))
	}

	return n, nil
}

func (uc *fetchUseCase) printProgress(result *model.ShardResult) {
	if uc.progress == nil {
		return
	}

	name := result.Shard.FileName()
	switch {
	case result.Err != nil:
		colorFail.Fprintf(uc.progress, "✗ %s: %v\n", name, result.Err)
	case result.StatusCode < 200 || result.StatusCode >= 300:
		colorWarn.Fprintf(uc.progress, "! %s: status %d (%d bytes)\n", name, result.StatusCode, result.Bytes)
	default:
		colorOK.Fprintf(uc.progress, "✓ %s (%s)\n", name, humanize.IBytes(uint64(result.Bytes)))
	}
}
