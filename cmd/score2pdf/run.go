package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scorefetch/go-score2pdf"
)

// run downloads every URL through a pool of services sized by the resolved
// worker count. Each URL gets its own browser session and workspace; a
// failure on one URL does not stop the others.
func run(flags *cliFlags, urls []string, log *slog.Logger) error {
	opts, err := buildOptions(flags, log)
	if err != nil {
		return err
	}
	pool := score2pdf.NewServicePool(score2pdf.ResolvePoolSize(flags.workers), opts...)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g := &errgroup.Group{}
	g.SetLimit(pool.Size())

	for _, url := range urls {
		url := url
		g.Go(func() error {
			svc, err := pool.Acquire(ctx)
			if err != nil {
				return err
			}
			defer pool.Release(svc)

			artifact, err := svc.Download(ctx, url)
			if err != nil {
				log.Error("download failed", "url", url, "err", err)
				return fmt.Errorf("%s: %w", url, err)
			}
			fmt.Printf("%s (%d pages)\n", artifact.Path, artifact.Pages)
			return nil
		})
	}
	return g.Wait()
}

// buildOptions merges config-file settings with flag overrides; flags win.
func buildOptions(flags *cliFlags, log *slog.Logger) ([]score2pdf.Option, error) {
	var opts []score2pdf.Option

	if flags.config != "" {
		cfg, err := score2pdf.LoadConfig(flags.config)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cfg.Options()...)
	}

	if flags.output != "" {
		opts = append(opts, score2pdf.WithOutputDir(flags.output))
	}
	if flags.timeout != "" {
		d, err := time.ParseDuration(flags.timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid --timeout %q", flags.timeout)
		}
		opts = append(opts, score2pdf.WithNavigationTimeout(d))
	}
	if flags.imageTimeout != "" {
		d, err := time.ParseDuration(flags.imageTimeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid --image-timeout %q", flags.imageTimeout)
		}
		opts = append(opts, score2pdf.WithImageTimeout(d))
	}

	opts = append(opts, score2pdf.WithLogger(log))
	return opts, nil
}
