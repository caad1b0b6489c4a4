package usecase_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/ngfetch/pkg/domain/model"
	"github.com/m-mizutani/ngfetch/pkg/usecase"
)

func writeGzipShard(t *testing.T, dir string, shard model.Shard, lines []string) {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(strings.Join(lines, "\n") + "\n"))
	gt.NoError(t, err).Required()
	gt.NoError(t, zw.Close()).Required()
	gt.NoError(t, os.WriteFile(filepath.Join(dir, shard.FileName()), buf.Bytes(), 0644)).Required()
}

func TestHeadUseCase_Head(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	shard := model.Shard{Index: 3}

	lines := []string{
		"abandon_VERB\t1900,12,10\t1901,8,7",
		"abandoned_ADJ\t1900,40,31",
		"abandonment\t1950,3,3",
	}
	writeGzipShard(t, dir, shard, lines)

	t.Run("first n lines", func(t *testing.T) {
		var out bytes.Buffer
		err := usecase.NewHead().Head(ctx, dir, shard, 2, &out)
		gt.NoError(t, err)
		gt.Equal(t, out.String(), lines[0]+"\n"+lines[1]+"\n")
	})

	t.Run("shorter shard", func(t *testing.T) {
		var out bytes.Buffer
		err := usecase.NewHead().Head(ctx, dir, shard, 10, &out)
		gt.NoError(t, err)
		gt.Equal(t, out.String(), strings.Join(lines, "\n")+"\n")
	})

	t.Run("invalid line count", func(t *testing.T) {
		var out bytes.Buffer
		err := usecase.NewHead().Head(ctx, dir, shard, 0, &out)
		gt.Error(t, err)
	})

	t.Run("missing shard", func(t *testing.T) {
		var out bytes.Buffer
		err := usecase.NewHead().Head(ctx, dir, model.Shard{Index: 4}, 1, &out)
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("failed to open shard file")
	})

	t.Run("error page instead of archive", func(t *testing.T) {
		bad := model.Shard{Index: 5}
		gt.NoError(t, os.WriteFile(filepath.Join(dir, bad.FileName()), []byte("<Error>NoSuchKey</Error>"), 0644)).Required()

		var out bytes.Buffer
		err := usecase.NewHead().Head(ctx, dir, bad, 1, &out)
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("failed to read gzip header")
	})
}
