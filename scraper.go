package score2pdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// pageScraper abstracts the browser-driven discovery phase to enable testing
// without a browser.
type pageScraper interface {
	Scrape(ctx context.Context, url string) (*scrapeResult, error)
}

// Compile-time interface check
var _ pageScraper = (*rodScraper)(nil)

// scrapeResult is the outcome of discovery: the score title (possibly the
// fallback) and the page-image source URLs in document order. Document order
// is definitive and must be preserved through download and assembly.
type scrapeResult struct {
	Title string
	URLs  []string
}

// imgReadyJS runs against one page element and reports whether its inner
// image has finished decoding with a non-zero intrinsic size.
const imgReadyJS = `() => {
	const img = this.querySelector("img");
	return !!img && img.complete && img.naturalHeight !== 0;
}`

// rodScraper drives a headless Chrome session via go-rod. Rod automatically
// downloads Chromium on first run if not found.
type rodScraper struct {
	navTimeout   time.Duration
	imageTimeout time.Duration
	sel          Selectors
	log          *slog.Logger
}

func newRodScraper(navTimeout, imageTimeout time.Duration, sel Selectors, log *slog.Logger) *rodScraper {
	return &rodScraper{
		navTimeout:   navTimeout,
		imageTimeout: imageTimeout,
		sel:          sel,
		log:          log,
	}
}

// Scrape launches an isolated browser session, navigates to the score page,
// scrolls the lazy-loading container so page images mount, and collects
// their source URLs. The session is never reused across requests and is torn
// down on every exit path.
func (s *rodScraper) Scrape(ctx context.Context, targetURL string) (*scrapeResult, error) {
	browser, cleanup, err := s.launch(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: creating page: %v", ErrSessionFault, err)
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			s.log.Warn("closing page", "err", cerr)
		}
	}()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             defaultViewportWidth,
		Height:            defaultViewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrSessionFault, err)
	}

	// Navigation completes on load without waiting for the page images;
	// those only mount once scrolled into the viewport.
	if err := page.Timeout(s.navTimeout).Navigate(targetURL); err != nil {
		return nil, classifyNavError(err)
	}
	if err := page.Timeout(s.navTimeout).WaitLoad(); err != nil {
		return nil, classifyNavError(err)
	}

	title := s.scrapeTitle(page)

	urls, err := s.scrapePageURLs(page)
	if err != nil {
		return nil, err
	}
	return &scrapeResult{Title: title, URLs: urls}, nil
}

// launch starts a sandboxed browser process and connects to it. The returned
// cleanup closes the browser and removes the launcher's working files; its
// failures are logged, never propagated, so they cannot mask a discovery
// error.
func (s *rodScraper) launch(ctx context.Context) (*rod.Browser, func(), error) {
	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	cleanup := func() {
		if cerr := browser.Close(); cerr != nil {
			s.log.Warn("closing browser", "err", cerr)
		}
		l.Cleanup()
	}
	return browser, cleanup, nil
}

// scrapeTitle probes for the title element. The lookup never fails the
// request; any absence degrades to the fallback title.
func (s *rodScraper) scrapeTitle(page *rod.Page) string {
	has, _, err := page.Has(s.sel.TitleContainer)
	if err != nil || !has {
		return fallbackTitle
	}
	has, el, err := page.Has(s.sel.Title)
	if err != nil || !has {
		return fallbackTitle
	}
	has, span, err := el.Has("span")
	if err != nil || !has {
		return fallbackTitle
	}
	text, err := span.Text()
	if err != nil || strings.TrimSpace(text) == "" {
		return fallbackTitle
	}
	return strings.TrimSpace(text)
}

// scrapePageURLs scrolls the lazy-loading container into view, then walks
// the page elements in document order. Each element is scrolled into the
// viewport and given a bounded wait for its image to finish loading; an
// element that yields no image source is skipped without consuming an index
// slot.
func (s *rodScraper) scrapePageURLs(page *rod.Page) ([]string, error) {
	has, scroller, err := page.Has(s.sel.Scroller)
	if err != nil {
		return nil, fmt.Errorf("%w: locating scroll container: %v", ErrSessionFault, err)
	}
	if !has {
		return nil, ErrNoPagesFound
	}
	if err := scroller.ScrollIntoView(); err != nil {
		return nil, fmt.Errorf("%w: scrolling container: %v", ErrSessionFault, err)
	}

	elements, err := page.Elements(s.sel.Page)
	if err != nil {
		return nil, fmt.Errorf("%w: listing page elements: %v", ErrSessionFault, err)
	}

	var urls []string
	for i, el := range elements {
		if err := el.ScrollIntoView(); err != nil {
			return nil, fmt.Errorf("%w: scrolling page element %d: %v", ErrSessionFault, i, err)
		}

		// A timed-out wait is not fatal by itself; the element is only
		// dropped when it yields no usable image source.
		if err := el.Timeout(s.imageTimeout).Wait(rod.Eval(imgReadyJS)); err != nil {
			if !errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: waiting for page image %d: %v", ErrSessionFault, i, err)
			}
			s.log.Warn("page image did not finish loading in time", "element", i)
		}

		has, img, err := el.Has("img")
		if err != nil {
			return nil, fmt.Errorf("%w: querying page image %d: %v", ErrSessionFault, i, err)
		}
		if !has {
			continue
		}
		src, err := img.Property("src")
		if err != nil {
			return nil, fmt.Errorf("%w: reading image source %d: %v", ErrSessionFault, i, err)
		}
		if u := src.Str(); u != "" {
			urls = append(urls, u)
		}
	}

	if len(urls) == 0 {
		return nil, ErrNoPagesFound
	}
	return urls, nil
}

// classifyNavError maps a navigation failure onto the error taxonomy:
// deadline expiry is a user-retryable timeout, anything else means the
// session itself broke.
func classifyNavError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrNavigationTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrSessionFault, err)
}
