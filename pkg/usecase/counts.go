package usecase

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/ngfetch/pkg/domain/interfaces"
	"github.com/m-mizutani/ngfetch/pkg/domain/model"
	"github.com/m-mizutani/ngfetch/pkg/domain/types"
)

type countsUseCase struct{}

// NewCounts creates a new instance of CountsUseCase
func NewCounts() interfaces.CountsUseCase {
	return &countsUseCase{}
}

// Build sums match counts of five-letter lowercase words over every shard in
// dir and writes them as "word count" lines to the dictionary file in dir.
// Shards without a local file are skipped; unreadable shards are an error.
func (uc *countsUseCase) Build(ctx context.Context, dir string) (*model.WordCounts, error) {
	logger := ctxlog.From(ctx)

	result := &model.WordCounts{
		Path: filepath.Join(dir, types.DictionaryFile),
	}
	counts := make(map[string]int64)

	for _, shard := range model.Shards() {
		path := filepath.Join(dir, shard.FileName())
		if err := countShard(path, counts); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("Shard file not found, skipping", "path", path)
				result.Skipped = append(result.Skipped, shard)
				continue
			}
			return nil, err
		}
		result.Read = append(result.Read, shard)
		logger.Debug("Counted shard", "path", path, "words", len(counts))
	}

	result.Words = make([]model.WordCount, 0, len(counts))
	for word, n := range counts {
		result.Words = append(result.Words, model.WordCount{Word: word, Count: n})
	}
	sort.Slice(result.Words, func(i, j int) bool {
		if result.Words[i].Count != result.Words[j].Count {
			return result.Words[i].Count > result.Words[j].Count
		}
		return result.Words[i].Word < result.Words[j].Word
	})

	if err := writeDictionary(result.Path, result.Words); err != nil {
		return nil, err
	}

	logger.Info("Wrote dictionary",
		"path", result.Path,
		"words", len(result.Words),
		"shards", len(result.Read),
		"skipped", len(result.Skipped),
	)

	return result, nil
}

func countShard(path string, counts map[string]int64) error {
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

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		word, n, err := parseNgramLine(scanner.Text())
		if err != nil {
			return goerr.Wrap(err, "malformed ngram line", goerr.V("path", path), goerr.V("line", lineNo))
		}
		if word != "" {
			counts[word] += n
		}
	}
	if err := scanner.Err(); err != nil {
		return goerr.Wrap(err, "failed to decompress shard", goerr.V("path", path))
	}

	return nil
}

// parseNgramLine reads "ngram<TAB>year,match_count,volume_count<TAB>...".
// It returns an empty word for ngrams that do not belong in the dictionary.
func parseNgramLine(line string) (string, int64, error) {
	ngram, years, _ := strings.Cut(line, "\t")

	// part-of-speech tagged entries, e.g. "crane_NOUN"
	if i := strings.LastIndexByte(ngram, '_'); i > 0 {
		ngram = ngram[:i]
	}
	if !isDictionaryWord(ngram) {
		return "", 0, nil
	}

	var total int64
	for _, field := range strings.Split(years, "\t") {
		if field == "" {
			continue
		}
		parts := strings.Split(field, ",")
		if len(parts) != 3 {
			return "", 0, goerr.New("unexpected year field", goerr.V("field", field))
		}
		n, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return "", 0, goerr.Wrap(err, "invalid match count", goerr.V("field", field))
		}
		total += n
	}

	return ngram, total, nil
}

func isDictionaryWord(s string) bool {
	if len(s) != types.DictionaryWordLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

func writeDictionary(path string, words []model.WordCount) error {
	f, err := os.Create(path)
	if err != nil {
		return goerr.Wrap(err, "failed to create dictionary file", goerr.V("path", path))
	}

	w := bufio.NewWriter(f)
	if err := writeWordCounts(w, words); err != nil {
		_ = f.Close()
		return goerr.Wrap(err, "failed to write dictionary", goerr.V("path", path))
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return goerr.Wrap(err, "failed to flush dictionary", goerr.V("path", path))
	}
	if err := f.Close(); err != nil {
		return goerr.Wrap(err, "failed to close dictionary file", goerr.V("path", path))
	}
	return nil
}

func writeWordCounts(w io.Writer, words []model.WordCount) error {
	for _, wc := range words {
		if _, err := fmt.Fprintf(w, "%s %d\n", wc.Word, wc.Count); err != nil {
			return err
		}
	}
	return nil
}
