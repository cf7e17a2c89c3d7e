package score2pdf

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/scorefetch/go-score2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrConfigInvalid  = errors.New("invalid config")
)

// Config holds file-based configuration for the retrieval pipeline. The zero
// value means "use defaults" for every field.
type Config struct {
	Output    OutputConfig   `yaml:"output"`
	Browser   BrowserConfig  `yaml:"browser"`
	Download  DownloadConfig `yaml:"download"`
	Selectors Selectors      `yaml:"selectors"`
}

// OutputConfig defines where artifacts and intermediate downloads live.
type OutputConfig struct {
	Dir     string `yaml:"dir"`     // final PDF directory (default: "sheets")
	WorkDir string `yaml:"workDir"` // workspace root (default: system temp dir)
}

// BrowserConfig defines browser-session bounds.
type BrowserConfig struct {
	NavTimeout   string `yaml:"navTimeout"`   // e.g. "2m"
	ImageTimeout string `yaml:"imageTimeout"` // e.g. "30s"
}

// DownloadConfig defines the per-asset retry policy.
type DownloadConfig struct {
	MaxAttempts int    `yaml:"maxAttempts"` // default: 5
	RetryDelay  string `yaml:"retryDelay"`  // e.g. "1s"
	UserAgent   string `yaml:"userAgent"`
}

// LoadConfig reads and validates a YAML config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks parsable durations and sane numeric bounds.
func (c *Config) Validate() error {
	for _, field := range []struct{ name, value string }{
		{"browser.navTimeout", c.Browser.NavTimeout},
		{"browser.imageTimeout", c.Browser.ImageTimeout},
		{"download.retryDelay", c.Download.RetryDelay},
	} {
		if field.value == "" {
			continue
		}
		d, err := time.ParseDuration(field.value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrConfigInvalid, field.name, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %q", ErrConfigInvalid, field.name, field.value)
		}
	}
	if c.Download.MaxAttempts < 0 {
		return fmt.Errorf("%w: download.maxAttempts must not be negative, got %d", ErrConfigInvalid, c.Download.MaxAttempts)
	}
	return nil
}

// Options converts the config into Service options. Zero-value fields
// contribute nothing, leaving the Service defaults in place. Validate must
// have been called first; durations that fail to parse are skipped.
func (c *Config) Options() []Option {
	var opts []Option

	if c.Output.Dir != "" {
		opts = append(opts, WithOutputDir(c.Output.Dir))
	}
	if c.Output.WorkDir != "" {
		opts = append(opts, WithWorkDir(c.Output.WorkDir))
	}
	if d, err := time.ParseDuration(c.Browser.NavTimeout); err == nil && d > 0 {
		opts = append(opts, WithNavigationTimeout(d))
	}
	if d, err := time.ParseDuration(c.Browser.ImageTimeout); err == nil && d > 0 {
		opts = append(opts, WithImageTimeout(d))
	}
	if c.Download.MaxAttempts > 0 {
		delay := defaultRetryDelay
		if d, err := time.ParseDuration(c.Download.RetryDelay); err == nil && d > 0 {
			delay = d
		}
		opts = append(opts, WithRetryPolicy(c.Download.MaxAttempts, delay))
	} else if d, err := time.ParseDuration(c.Download.RetryDelay); err == nil && d > 0 {
		opts = append(opts, WithRetryPolicy(defaultMaxAttempts, d))
	}
	if c.Download.UserAgent != "" {
		opts = append(opts, WithUserAgent(c.Download.UserAgent))
	}
	if c.Selectors != (Selectors{}) {
		sel := c.Selectors
		defaults := DefaultSelectors()
		if sel.TitleContainer == "" {
			sel.TitleContainer = defaults.TitleContainer
		}
		if sel.Title == "" {
			sel.Title = defaults.Title
		}
		if sel.Scroller == "" {
			sel.Scroller = defaults.Scroller
		}
		if sel.Page == "" {
			sel.Page = defaults.Page
		}
		opts = append(opts, WithSelectors(sel))
	}

	return opts
}
