package score2pdf

import (
	"log/slog"
	"time"
)

// PageAsset is one discovered page of a score. Index is the stable ordering
// position assigned at discovery time; it is never re-ordered, and the
// document is assembled strictly in Index order.
type PageAsset struct {
	Index     int
	SourceURL string
	LocalPath string // set once downloaded
	Format    Format
}

// Artifact is the final assembled document: the path of the written PDF and
// the number of pages it contains. It is the only on-disk output that
// survives a request.
type Artifact struct {
	Path  string
	Pages int
}

// Selectors identifies the DOM shape of the score page. The zero value is
// not usable; use DefaultSelectors.
type Selectors struct {
	TitleContainer string `yaml:"titleContainer"` // optional container probed for the title
	Title          string `yaml:"title"`          // element holding the title span
	Scroller       string `yaml:"scroller"`       // lazy-loading scroll container
	Page           string `yaml:"page"`           // one element per rendered score page
}

// DefaultSelectors returns the selectors for the supported score site.
func DefaultSelectors() Selectors {
	return Selectors{
		TitleContainer: "#aside-container-unique",
		Title:          ".nFRPI",
		Scroller:       "#jmuse-scroller-component",
		Page:           ".EEnGW",
	}
}

// fallbackTitle is used when the page does not expose a readable title.
const fallbackTitle = "musescore"

// Default tuning values.
const (
	defaultNavTimeout   = 2 * time.Minute
	defaultImageTimeout = 30 * time.Second
	defaultMaxAttempts  = 5
	defaultRetryDelay   = time.Second
	defaultOutputDir    = "sheets"

	defaultViewportWidth  = 1920
	defaultViewportHeight = 1080
)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	navTimeout   time.Duration
	imageTimeout time.Duration
	maxAttempts  int
	retryDelay   time.Duration
	outputDir    string
	workRoot     string // "" means the system temp dir
	userAgent    string
	selectors    Selectors
}

func defaultServiceConfig() serviceConfig {
	return serviceConfig{
		navTimeout:   defaultNavTimeout,
		imageTimeout: defaultImageTimeout,
		maxAttempts:  defaultMaxAttempts,
		retryDelay:   defaultRetryDelay,
		outputDir:    defaultOutputDir,
		selectors:    DefaultSelectors(),
	}
}

// Option configures a Service.
type Option func(*Service)

// WithNavigationTimeout bounds how long the driver waits for the score page
// to load. Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithNavigationTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("score2pdf: WithNavigationTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.navTimeout = d
	}
}

// WithImageTimeout bounds the per-page wait for a lazily loaded image to
// report load completion. Panics if d <= 0.
func WithImageTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("score2pdf: WithImageTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.imageTimeout = d
	}
}

// WithRetryPolicy sets the per-asset download retry ceiling and the delay
// between attempts. Attempts below 1 are clamped to 1.
func WithRetryPolicy(attempts int, delay time.Duration) Option {
	return func(s *Service) {
		if attempts < 1 {
			attempts = 1
		}
		s.cfg.maxAttempts = attempts
		s.cfg.retryDelay = delay
	}
}

// WithOutputDir sets the directory the final PDF is written to.
func WithOutputDir(dir string) Option {
	return func(s *Service) {
		s.cfg.outputDir = dir
	}
}

// WithWorkDir sets the root under which per-request workspaces are created.
// Empty means the system temp dir.
func WithWorkDir(dir string) Option {
	return func(s *Service) {
		s.cfg.workRoot = dir
	}
}

// WithSelectors overrides the DOM selectors used during discovery.
func WithSelectors(sel Selectors) Option {
	return func(s *Service) {
		s.cfg.selectors = sel
	}
}

// WithUserAgent sets the User-Agent header sent with asset downloads.
func WithUserAgent(ua string) Option {
	return func(s *Service) {
		s.cfg.userAgent = ua
	}
}

// WithLogger sets the structured logger used for progress and cleanup
// warnings. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}
