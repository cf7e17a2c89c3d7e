// Package score2pdf downloads paginated sheet-music scores as PDF using
// headless Chrome.
//
// # Quick Start
//
// Create a service and download a score:
//
//	svc := score2pdf.New()
//	artifact, err := svc.Download(ctx, "https://musescore.com/user/123/scores/456")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(artifact.Path, artifact.Pages)
//
// # Pipeline
//
// A download runs through three stages:
//
//  1. Discovery: a fresh, isolated browser session (go-rod) navigates to the
//     score page, scrolls the lazy-loading container so the page images
//     mount, and collects their source URLs in document order.
//  2. Retrieval: all page images are downloaded concurrently into a
//     per-request workspace, each with its own bounded retry loop.
//  3. Assembly: the images are appended to a single PDF, one page per
//     image, strictly in discovery order. SVG pages are sized from their
//     own geometry; raster pages are centered on a default-sized page.
//
// The workspace and the browser session are torn down on every exit path;
// only the final PDF survives.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := score2pdf.New(
//	    score2pdf.WithOutputDir("scores"),
//	    score2pdf.WithNavigationTimeout(3*time.Minute),
//	    score2pdf.WithRetryPolicy(5, time.Second),
//	)
//
// A YAML config file can provide the same settings; see LoadConfig.
//
// # Parallel Processing
//
// For batch downloads, use ServicePool to bound concurrent browser sessions:
//
//	pool := score2pdf.NewServicePool(score2pdf.ResolvePoolSize(0))
//	svc, err := pool.Acquire(ctx)
//	defer pool.Release(svc)
//
// # Failure Classification
//
// Errors are classified by sentinel: ErrNavigationTimeout (retryable),
// ErrNoPagesFound (wrong URL or incompatible page shape),
// ErrUnsupportedFormat, ErrAssetDownload, ErrAssembly, and ErrSessionFault.
// Match them with errors.Is.
//
// # Browser Requirements
//
// Discovery requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// Use ROD_BROWSER_BIN to point at a pre-installed binary; the sandbox is
// disabled automatically in CI and containerized environments.
package score2pdf
