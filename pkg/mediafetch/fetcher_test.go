package mediafetch_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tg-assist-be/pkg/mediafetch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("file contents"))
	}))
	defer srv.Close()

	f := mediafetch.NewFetcher("", 0)
	media, err := f.FetchURL(context.Background(), srv.URL+"/docs/report.pdf")

	require.NoError(t, err)
	assert.Equal(t, []byte("file contents"), media.Data)
	assert.Equal(t, "report.pdf", media.Filename)
}

func TestFetchURLFilenameFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("x"))
	}))
	defer srv.Close()

	f := mediafetch.NewFetcher("", 0)
	media, err := f.FetchURL(context.Background(), srv.URL+"/")

	require.NoError(t, err)
	assert.Equal(t, "download", media.Filename)
}

func TestFetchURLTooLargeByContentLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100")
		w.Write(make([]byte, 100))
	}))
	defer srv.Close()

	f := mediafetch.NewFetcher("", 50)
	_, err := f.FetchURL(context.Background(), srv.URL+"/big.bin")

	assert.ErrorIs(t, err, mediafetch.ErrTooLarge)
}

func TestFetchURLTooLargeByActualSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Chunked response without a Content-Length header
		flusher := w.(http.Flusher)
		for i := 0; i < 10; i++ {
			w.Write(make([]byte, 10))
			flusher.Flush()
		}
	}))
	defer srv.Close()

	f := mediafetch.NewFetcher("", 50)
	_, err := f.FetchURL(context.Background(), srv.URL+"/big.bin")

	assert.ErrorIs(t, err, mediafetch.ErrTooLarge)
}

func TestFetchURLDownloadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := mediafetch.NewFetcher("", 0)
	_, err := f.FetchURL(context.Background(), srv.URL+"/gone.bin")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchVideo(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/resolve", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://youtu.be/abc123", req["url"])
		fmt.Fprintf(w, `{"download_url":%q,"title":"Some Clip","filename":"clip.mp4"}`,
			srv.URL+"/media/stream")
	})
	mux.HandleFunc("/media/stream", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("video-bytes"))
	})

	f := mediafetch.NewFetcher(srv.URL+"/resolve", 0)
	require.True(t, f.CanFetchVideo())

	media, err := f.FetchVideo(context.Background(), "https://youtu.be/abc123")

	require.NoError(t, err)
	assert.Equal(t, []byte("video-bytes"), media.Data)
	assert.Equal(t, "clip.mp4", media.Filename)
	assert.Equal(t, "Some Clip", media.Title)
}

func TestFetchVideoNoResolver(t *testing.T) {
	f := mediafetch.NewFetcher("", 0)

	assert.False(t, f.CanFetchVideo())
	_, err := f.FetchVideo(context.Background(), "https://youtu.be/abc123")
	assert.ErrorIs(t, err, mediafetch.ErrNoResolver)
}

func TestFetchVideoResolverFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := mediafetch.NewFetcher(srv.URL, 0)
	_, err := f.FetchVideo(context.Background(), "https://youtu.be/abc123")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolver")
}

func TestFetchVideoEnforcesCapOnStream(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/resolve", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"download_url":%q}`, srv.URL+"/media/huge")
	})
	mux.HandleFunc("/media/huge", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 200)))
	})

	f := mediafetch.NewFetcher(srv.URL+"/resolve", 100)
	_, err := f.FetchVideo(context.Background(), "https://youtu.be/abc123")

	assert.ErrorIs(t, err, mediafetch.ErrTooLarge)
}
