package score2pdf

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Service orchestrates the retrieval pipeline: browser-driven discovery,
// concurrent asset download, and document assembly. A Service is safe for
// concurrent use; each Download owns its own browser session and workspace.
type Service struct {
	cfg       serviceConfig
	scraper   pageScraper
	fetcher   assetFetcher
	assembler docAssembler
	log       *slog.Logger
}

// New creates a Service with default configuration.
// Use options to customize behavior (e.g., WithOutputDir, WithRetryPolicy).
func New(opts ...Option) *Service {
	s := &Service{
		cfg: defaultServiceConfig(),
		log: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	// Create pipeline stages if not injected (e.g., by tests)
	if s.scraper == nil {
		s.scraper = newRodScraper(s.cfg.navTimeout, s.cfg.imageTimeout, s.cfg.selectors, s.log)
	}
	if s.fetcher == nil {
		s.fetcher = newHTTPFetcher(s.cfg.maxAttempts, s.cfg.retryDelay, s.cfg.userAgent, s.log)
	}
	if s.assembler == nil {
		s.assembler = newPDFAssembler(s.cfg.outputDir)
	}

	return s
}

// Download retrieves the score behind url and assembles it into a single
// PDF, one page per score page, in document order. The context is used for
// cancellation and flows through every suspension point. All intermediate
// downloads live in a per-request workspace that is removed on every exit
// path; the returned artifact is the only surviving output.
func (s *Service) Download(ctx context.Context, url string) (*Artifact, error) {
	res, err := s.scraper.Scrape(ctx, url)
	if err != nil {
		return nil, err
	}
	if len(res.URLs) == 0 {
		return nil, ErrNoPagesFound
	}

	// The shared format is inferred once, from the first source URL,
	// before any download begins.
	format, err := FormatFromURL(res.URLs[0])
	if err != nil {
		return nil, err
	}

	workspace, err := os.MkdirTemp(s.cfg.workRoot, "score2pdf-*")
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}
	defer s.purgeWorkspace(workspace)

	assets := buildAssets(res.URLs, format, workspace)
	jobs := make([]fetchJob, len(assets))
	for i, asset := range assets {
		jobs[i] = fetchJob{URL: asset.SourceURL, Dest: asset.LocalPath}
	}
	if err := s.fetcher.FetchAll(ctx, jobs); err != nil {
		return nil, err
	}

	paths := make([]string, len(assets))
	for i, asset := range assets {
		paths[i] = asset.LocalPath
	}

	artifact, err := s.assembler.Assemble(paths, format, res.Title)
	if err != nil {
		return nil, err
	}

	s.log.Info("score downloaded", "url", url, "title", res.Title, "pages", artifact.Pages, "path", artifact.Path)
	return artifact, nil
}

// buildAssets assigns discovery indexes and collision-free destination
// paths. The random component keeps names unique across retries and across
// concurrent requests even if workspaces were ever shared.
func buildAssets(urls []string, format Format, workspace string) []PageAsset {
	assets := make([]PageAsset, len(urls))
	for i, u := range urls {
		name := fmt.Sprintf("page-%03d-%s%s", i, uuid.NewString()[:8], format.Ext())
		assets[i] = PageAsset{
			Index:     i,
			SourceURL: u,
			LocalPath: filepath.Join(workspace, name),
			Format:    format,
		}
	}
	return assets
}

// purgeWorkspace removes the per-request download directory. A failure here
// is logged and never escalated, so it cannot mask the primary error being
// returned.
func (s *Service) purgeWorkspace(workspace string) {
	if err := os.RemoveAll(workspace); err != nil {
		s.log.Warn("removing workspace", "path", workspace, "err", err)
	}
}
