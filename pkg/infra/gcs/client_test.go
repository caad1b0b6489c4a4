package gcs_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/gt"
	"google.golang.org/api/option"

	"github.com/m-mizutani/ngfetch/pkg/domain/model"
	"github.com/m-mizutani/ngfetch/pkg/infra/gcs"
	"github.com/m-mizutani/ngfetch/pkg/usecase"
)

// newStorageServer serves objects of the "books" bucket over the XML read
// path (/<bucket>/<object>), answering 404 for objects not in objects.
func newStorageServer(t *testing.T, objects map[string]string) *httptest.Server {
	t.Helper()
	router := chi.NewRouter()
	router.Get("/{bucket}/*", func(w http.ResponseWriter, r *http.Request) {
		object, err := url.PathUnescape(chi.URLParam(r, "*"))
		if err != nil || chi.URLParam(r, "bucket") != "books" {
			http.NotFound(w, r)
			return
		}

		body, ok := objects[object]
		if !ok {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("X-Goog-Generation", "1")
		w.Header().Set("X-Goog-Metageneration", "1")
		_, _ = w.Write([]byte(body))
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func newTestClient(t *testing.T, server *httptest.Server) *gcs.Client {
	t.Helper()
	client, err := gcs.NewClient(context.Background(),
		gcs.WithBucket("books"),
		gcs.WithClientOptions(
			option.WithEndpoint(server.URL+"/storage/v1/"),
			option.WithoutAuthentication(),
		),
	)
	gt.NoError(t, err).Required()
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestClient_Open(t *testing.T) {
	server := newStorageServer(t, map[string]string{
		"ngrams/books/20200217/eng/1-00001-of-00024.gz": "first shard",
	})
	client := newTestClient(t, server)

	obj, err := client.Open(context.Background(), model.Shard{Index: 1})
	gt.NoError(t, err).Required()
	defer obj.Body.Close()

	gt.Equal(t, obj.Location, "gs://books/ngrams/books/20200217/eng/1-00001-of-00024.gz")
	gt.Equal(t, obj.StatusCode, http.StatusOK)

	body, err := io.ReadAll(obj.Body)
	gt.NoError(t, err)
	gt.Equal(t, string(body), "first shard")
}

func TestClient_Open_MissingObject(t *testing.T) {
	server := newStorageServer(t, nil)
	client := newTestClient(t, server)

	obj, err := client.Open(context.Background(), model.Shard{Index: 2})
	gt.Error(t, err)
	gt.Value(t, obj).Nil()
	gt.String(t, err.Error()).Contains("shard object not found")
}

func TestClient_FetchSkipsMissingObjects(t *testing.T) {
	objects := map[string]string{}
	for _, shard := range model.Shards() {
		if shard.Index == 9 {
			continue
		}
		objects[shard.ObjectName()] = "object " + shard.FileName()
	}
	server := newStorageServer(t, objects)
	client := newTestClient(t, server)

	dir := t.TempDir()
	report, err := usecase.NewFetch(client).Run(context.Background(), dir)
	gt.NoError(t, err).Required()

	gt.Equal(t, report.Succeeded(), 23)
	failed := report.Failed()
	gt.Equal(t, len(failed), 1)
	gt.Equal(t, failed[0].Shard.Index, 9)
	gt.String(t, failed[0].Err.Error()).Contains("shard object not found")

	_, err = os.Stat(filepath.Join(dir, "1-00009-of-00024.gz"))
	gt.True(t, os.IsNotExist(err))

	content, err := os.ReadFile(filepath.Join(dir, "1-00010-of-00024.gz"))
	gt.NoError(t, err)
	gt.Equal(t, string(content), "object 1-00010-of-00024.gz")
}

func TestClient_Open_WithRealBucket(t *testing.T) {
	// Reads the public corpus bucket; opt in because it needs network access
	if os.Getenv("TEST_NGFETCH_GCS") == "" {
		t.Skip("TEST_NGFETCH_GCS is not set")
	}

	ctx := context.Background()
	client, err := gcs.NewClient(ctx)
	gt.NoError(t, err).Required()
	defer client.Close()

	obj, err := client.Open(ctx, model.Shard{Index: 1})
	gt.NoError(t, err).Required()
	defer obj.Body.Close()

	gt.Equal(t, obj.Location, "gs://books/ngrams/books/20200217/eng/1-00001-of-00024.gz")

	// gzip magic number
	head := make([]byte, 2)
	_, err = io.ReadFull(obj.Body, head)
	gt.NoError(t, err)
	gt.Equal(t, string(head), "\x1f\x8b")
}
