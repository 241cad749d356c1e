package mediafetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"
)

const DefaultMaxBytes = 50 * 1024 * 1024

// ErrTooLarge is returned when a resource exceeds the configured size ceiling.
// No partial bytes are ever returned.
var ErrTooLarge = errors.New("resource exceeds size limit")

// ErrNoResolver is returned from FetchVideo when no resolver endpoint is configured.
var ErrNoResolver = errors.New("video resolver not configured")

// Media is one fetched resource.
type Media struct {
	Data     []byte
	Filename string
	Title    string
}

// Fetcher downloads arbitrary URL resources and, through an external
// resolver service, video streams. Both paths enforce the size ceiling.
type Fetcher struct {
	ResolverURL string
	MaxBytes    int64
	HTTP        *http.Client
}

func NewFetcher(resolverURL string, maxBytes int64) *Fetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Fetcher{
		ResolverURL: resolverURL,
		MaxBytes:    maxBytes,
		HTTP: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// CanFetchVideo reports whether the video resolver is configured.
func (f *Fetcher) CanFetchVideo() bool {
	return f.ResolverURL != ""
}

// FetchURL downloads a resource, failing outright when it exceeds the size cap.
func (f *Fetcher) FetchURL(ctx context.Context, rawURL string) (*Media, error) {
	data, err := f.download(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return &Media{
		Data:     data,
		Filename: filenameFromURL(rawURL),
	}, nil
}

type resolveRequest struct {
	URL string `json:"url"`
}

type resolveResponse struct {
	DownloadURL string `json:"download_url"`
	Title       string `json:"title"`
	Filename    string `json:"filename"`
}

// FetchVideo asks the resolver service for a direct media URL, then
// downloads it under the same size cap.
func (f *Fetcher) FetchVideo(ctx context.Context, videoURL string) (*Media, error) {
	if !f.CanFetchVideo() {
		return nil, ErrNoResolver
	}

	payload, err := json.Marshal(resolveRequest{URL: videoURL})
	if err != nil {
		return nil, fmt.Errorf("marshal resolve payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", f.ResolverURL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create resolve request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resolver request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("resolver error: status %d", resp.StatusCode)
	}

	var resolved resolveResponse
	if err := json.NewDecoder(resp.Body).Decode(&resolved); err != nil {
		return nil, fmt.Errorf("decode resolver response: %w", err)
	}
	if resolved.DownloadURL == "" {
		return nil, fmt.Errorf("resolver returned no download URL")
	}

	data, err := f.download(ctx, resolved.DownloadURL)
	if err != nil {
		return nil, err
	}

	filename := resolved.Filename
	if filename == "" {
		filename = filenameFromURL(resolved.DownloadURL)
	}
	return &Media{
		Data:     data,
		Filename: filename,
		Title:    resolved.Title,
	}, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create download request: %w", err)
	}

	resp, err := f.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download error: status %d", resp.StatusCode)
	}
	if resp.ContentLength > f.MaxBytes {
		return nil, ErrTooLarge
	}

	// Read one byte past the cap so an unreported oversize still fails closed.
	data, err := io.ReadAll(io.LimitReader(resp.Body, f.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > f.MaxBytes {
		return nil, ErrTooLarge
	}

	return data, nil
}

func filenameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || path.Base(u.Path) == "/" || path.Base(u.Path) == "." {
		return "download"
	}
	return path.Base(u.Path)
}
