package score2pdf

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
output:
  dir: scores
browser:
  navTimeout: 3m
  imageTimeout: 45s
download:
  maxAttempts: 7
  retryDelay: 2s
  userAgent: score2pdf/1.0
selectors:
  page: .page-img
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Output.Dir != "scores" {
		t.Errorf("output.dir = %q, want %q", cfg.Output.Dir, "scores")
	}
	if cfg.Download.MaxAttempts != 7 {
		t.Errorf("download.maxAttempts = %d, want 7", cfg.Download.MaxAttempts)
	}

	svc := New(append(cfg.Options(), WithLogger(discardLogger()))...)
	if svc.cfg.maxAttempts != 7 {
		t.Errorf("service maxAttempts = %d, want 7", svc.cfg.maxAttempts)
	}
	if svc.cfg.outputDir != "scores" {
		t.Errorf("service outputDir = %q, want %q", svc.cfg.outputDir, "scores")
	}
	// Partially set selectors keep defaults for the rest.
	if svc.cfg.selectors.Page != ".page-img" {
		t.Errorf("selectors.page = %q, want %q", svc.cfg.selectors.Page, ".page-img")
	}
	if svc.cfg.selectors.Scroller != DefaultSelectors().Scroller {
		t.Errorf("selectors.scroller = %q, want default", svc.cfg.selectors.Scroller)
	}
}

func TestLoadConfigNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoadConfigRejectsUnknownFields(t *testing.T) {
	path := writeConfigFile(t, "outputs:\n  dir: typo\n")
	if _, err := LoadConfig(path); !errors.Is(err, ErrConfigParse) {
		t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "zero value is valid",
			cfg:  Config{},
		},
		{
			name: "valid durations",
			cfg: Config{
				Browser:  BrowserConfig{NavTimeout: "90s", ImageTimeout: "10s"},
				Download: DownloadConfig{RetryDelay: "500ms"},
			},
		},
		{
			name:    "unparsable navTimeout",
			cfg:     Config{Browser: BrowserConfig{NavTimeout: "soon"}},
			wantErr: true,
		},
		{
			name:    "negative retryDelay",
			cfg:     Config{Download: DownloadConfig{RetryDelay: "-1s"}},
			wantErr: true,
		},
		{
			name:    "negative maxAttempts",
			cfg:     Config{Download: DownloadConfig{MaxAttempts: -1}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && !errors.Is(err, ErrConfigInvalid) {
				t.Errorf("Validate() error = %v, want ErrConfigInvalid", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error = %v, want nil", err)
			}
		})
	}
}

func TestConfigOptionsEmpty(t *testing.T) {
	var cfg Config
	if opts := cfg.Options(); len(opts) != 0 {
		t.Errorf("zero config produced %d options, want 0", len(opts))
	}
}
