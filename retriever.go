package score2pdf

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scorefetch/go-score2pdf/internal/fileutil"
)

// fetchJob pairs a page-image source URL with the local path its bytes are
// written to. Destination paths carry the ordering; the fetcher never
// reorders anything.
type fetchJob struct {
	URL  string
	Dest string
}

// assetFetcher abstracts concurrent asset materialization to allow fakes in
// tests. FetchAll returns once every job's destination file exists, or fails
// fast on the first job that exhausts its retries.
type assetFetcher interface {
	FetchAll(ctx context.Context, jobs []fetchJob) error
}

// Compile-time interface check
var _ assetFetcher = (*httpFetcher)(nil)

// httpFetcher downloads assets over HTTP with bounded per-asset retries.
type httpFetcher struct {
	client      *http.Client
	maxAttempts int
	retryDelay  time.Duration
	userAgent   string
	log         *slog.Logger
}

func newHTTPFetcher(maxAttempts int, retryDelay time.Duration, userAgent string, log *slog.Logger) *httpFetcher {
	return &httpFetcher{
		client:      &http.Client{Timeout: 30 * time.Second},
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
		userAgent:   userAgent,
		log:         log,
	}
}

// FetchAll downloads all jobs concurrently. Retries are per-asset, so one
// flaky source does not restart its siblings; the first asset that fails for
// good cancels the rest of the batch.
func (f *httpFetcher) FetchAll(ctx context.Context, jobs []fetchJob) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			return f.fetch(ctx, job)
		})
	}
	return g.Wait()
}

// fetch downloads one asset, retrying transient failures up to the attempt
// ceiling with a fixed delay between attempts.
func (f *httpFetcher) fetch(ctx context.Context, job fetchJob) error {
	if err := fileutil.EnsureDir(filepath.Dir(job.Dest)); err != nil {
		return fmt.Errorf("%w: %v", ErrAssetDownload, err)
	}

	var lastErr error
	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(f.retryDelay):
			}
		}

		retryable, err := f.fetchOnce(ctx, job)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			break
		}
		f.log.Warn("download attempt failed", "url", job.URL, "attempt", attempt, "err", err)
	}
	return fmt.Errorf("%w: %s: %v", ErrAssetDownload, job.URL, lastErr)
}

// fetchOnce performs a single download attempt. The retryable result tells
// the caller whether another attempt makes sense: network errors and server
// errors are transient, client errors are not.
func (f *httpFetcher) fetchOnce(ctx context.Context, job fetchJob) (retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, job.URL, nil)
	if err != nil {
		return false, fmt.Errorf("building request: %v", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return true, fmt.Errorf("fetching: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode >= 500, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	out, err := os.Create(job.Dest)
	if err != nil {
		return false, fmt.Errorf("creating %s: %v", job.Dest, err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		return true, fmt.Errorf("writing %s: %v", job.Dest, err)
	}
	if err := out.Close(); err != nil {
		return false, fmt.Errorf("closing %s: %v", job.Dest, err)
	}
	return false, nil
}
