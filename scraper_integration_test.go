//go:build integration

package score2pdf

// Integration tests drive a real headless Chrome against a local fixture of
// the score page shape. Run with: go test -tags integration
// Requires Chrome/Chromium; rod downloads one on first run.

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const fixtureSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="300" height="400">` +
	`<path d="M10 10 L290 390"/></svg>`

// scorePageHTML mimics the lazy score page: a title aside, a scroll
// container, three page elements with images, and one decoy without an
// image.
func scorePageHTML(base string) string {
	var pages strings.Builder
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&pages, `<div class="EEnGW"><img src="%s/img-%d.svg"></div>`, base, i)
	}
	pages.WriteString(`<div class="EEnGW"><span>decoy without image</span></div>`)

	return `<!DOCTYPE html><html><head><title>fixture</title></head><body>
<div id="aside-container-unique"><div class="nFRPI"><span>Test Sonata</span></div></div>
<div style="height:3000px">filler so the scroller starts off-screen</div>
<div id="jmuse-scroller-component">` + pages.String() + `</div>
</body></html>`
}

func fixtureServer(t *testing.T, html func(base string) string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, ".svg") {
			w.Header().Set("Content-Type", "image/svg+xml")
			fmt.Fprint(w, fixtureSVG)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, html(srv.URL))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func integrationScraper() *rodScraper {
	return newRodScraper(time.Minute, 10*time.Second, DefaultSelectors(), discardLogger())
}

func TestScrapeDiscoversPagesInOrder(t *testing.T) {
	srv := fixtureServer(t, scorePageHTML)

	res, err := integrationScraper().Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}

	if res.Title != "Test Sonata" {
		t.Errorf("title = %q, want %q", res.Title, "Test Sonata")
	}
	// The decoy contributes no URL and no gap.
	if len(res.URLs) != 3 {
		t.Fatalf("discovered %d urls, want 3", len(res.URLs))
	}
	for i, u := range res.URLs {
		want := fmt.Sprintf("/img-%d.svg", i)
		if !strings.HasSuffix(u, want) {
			t.Errorf("url %d = %q, want suffix %q", i, u, want)
		}
	}
}

func TestScrapeFallsBackToDefaultTitle(t *testing.T) {
	srv := fixtureServer(t, func(base string) string {
		return `<!DOCTYPE html><html><body>
<div id="jmuse-scroller-component">
<div class="EEnGW"><img src="` + base + `/img-0.svg"></div>
</div></body></html>`
	})

	res, err := integrationScraper().Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}
	if res.Title != fallbackTitle {
		t.Errorf("title = %q, want fallback %q", res.Title, fallbackTitle)
	}
}

func TestScrapeNoScrollerMeansNoPages(t *testing.T) {
	srv := fixtureServer(t, func(string) string {
		return `<!DOCTYPE html><html><body><p>not a score page</p></body></html>`
	})

	_, err := integrationScraper().Scrape(context.Background(), srv.URL)
	if !errors.Is(err, ErrNoPagesFound) {
		t.Errorf("Scrape() error = %v, want ErrNoPagesFound", err)
	}
}

// A page image whose fetch never completes must not fail discovery: the
// bounded wait expires, but the element still exposes a source URL and is
// kept in order.
func TestScrapeKeepsSlowImageWithSource(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "slow.svg"):
			time.Sleep(10 * time.Second)
		case strings.HasSuffix(r.URL.Path, ".svg"):
			w.Header().Set("Content-Type", "image/svg+xml")
			fmt.Fprint(w, fixtureSVG)
		default:
			w.Header().Set("Content-Type", "text/html")
			// loading="lazy" keeps the stalled fetch from holding up the
			// page load event, like the real page's lazy mounting.
			fmt.Fprint(w, `<!DOCTYPE html><html><body>
<div style="height:3000px">filler so the scroller starts off-screen</div>
<div id="jmuse-scroller-component">
<div class="EEnGW"><img src="`+srv.URL+`/img-0.svg" loading="lazy"></div>
<div class="EEnGW"><img src="`+srv.URL+`/slow.svg" loading="lazy"></div>
</div></body></html>`)
		}
	}))
	t.Cleanup(srv.Close)

	s := newRodScraper(time.Minute, 500*time.Millisecond, DefaultSelectors(), discardLogger())
	res, err := s.Scrape(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Scrape() error = %v", err)
	}
	if len(res.URLs) != 2 {
		t.Fatalf("discovered %d urls, want 2", len(res.URLs))
	}
	if !strings.HasSuffix(res.URLs[1], "/slow.svg") {
		t.Errorf("url 1 = %q, want the still-loading image kept", res.URLs[1])
	}
}

func TestScrapeNavigationTimeout(t *testing.T) {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(5 * time.Second)
	}))
	t.Cleanup(slow.Close)

	s := newRodScraper(500*time.Millisecond, time.Second, DefaultSelectors(), discardLogger())
	_, err := s.Scrape(context.Background(), slow.URL)
	if !errors.Is(err, ErrNavigationTimeout) {
		t.Errorf("Scrape() error = %v, want ErrNavigationTimeout", err)
	}
}
