package preview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/vanderheijden86/devquest/pkg/metrics"
)

// ErrFetchFailed wraps every document fetch failure: I/O errors, network
// errors and non-success HTTP responses alike.
var ErrFetchFailed = errors.New("document fetch failed")

// Fetcher retrieves the raw content of a tutorial document.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
	// Location returns a human-usable path or URL for ref.
	Location(ref string) string
}

// DirFetcher reads documents from a directory.
type DirFetcher struct {
	FS   fs.FS
	Root string // shown by Location
}

// NewDirFetcher serves documents from dir on disk.
func NewDirFetcher(dir string) *DirFetcher {
	return &DirFetcher{FS: os.DirFS(dir), Root: dir}
}

// Fetch reads ref relative to the directory. References escaping the
// directory are rejected.
func (f *DirFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	defer metrics.Timer(metrics.DocumentFetch)()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, ref, err)
	}
	name := path.Clean(strings.TrimPrefix(filepath.ToSlash(ref), "/"))
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: %s: invalid document path", ErrFetchFailed, ref)
	}
	data, err := fs.ReadFile(f.FS, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, ref, err)
	}
	return data, nil
}

// Location joins ref onto the directory.
func (f *DirFetcher) Location(ref string) string {
	return filepath.Join(f.Root, filepath.FromSlash(ref))
}

// HTTPConfig configures an HTTPFetcher.
type HTTPConfig struct {
	// Timeout bounds each request. Zero means no timeout: a hung request
	// leaves its preview loading.
	Timeout time.Duration
	// MaxBytes caps the body size. Default: 10MB.
	MaxBytes int64
	// UserAgent sent with requests.
	UserAgent string
}

func (c *HTTPConfig) defaults() {
	if c.MaxBytes <= 0 {
		c.MaxBytes = 10 * 1024 * 1024
	}
	if c.UserAgent == "" {
		c.UserAgent = "devquest"
	}
}

// HTTPFetcher fetches documents relative to a base URL.
type HTTPFetcher struct {
	base   *url.URL
	client *http.Client
	config HTTPConfig
}

// NewHTTPFetcher creates a fetcher rooted at baseURL.
func NewHTTPFetcher(baseURL string, cfg HTTPConfig) (*HTTPFetcher, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing documents URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("documents URL must be http or https, got %q", baseURL)
	}
	cfg.defaults()
	return &HTTPFetcher{
		base:   u,
		client: &http.Client{Timeout: cfg.Timeout},
		config: cfg,
	}, nil
}

// Fetch GETs ref. Any status outside 2xx is a failure.
func (f *HTTPFetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	defer metrics.Timer(metrics.DocumentFetch)()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.Location(ref), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, ref, err)
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetchFailed, ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s: http %d", ErrFetchFailed, ref, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.config.MaxBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %v", ErrFetchFailed, ref, err)
	}
	return body, nil
}

// Location resolves ref against the base URL.
func (f *HTTPFetcher) Location(ref string) string {
	return f.base.JoinPath(strings.Split(strings.TrimPrefix(ref, "/"), "/")...).String()
}

// NewFetcher picks an HTTPFetcher for http(s) locations and a DirFetcher
// otherwise.
func NewFetcher(location string, cfg HTTPConfig) (Fetcher, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPFetcher(location, cfg)
	}
	return NewDirFetcher(location), nil
}
