package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/scorefetch/go-score2pdf/internal/fileutil"
)

// cliFlags holds all parsed command-line flags.
type cliFlags struct {
	output       string
	config       string
	workers      int
	timeout      string
	imageTimeout string
	verbose      bool
	version      bool
}

var errNoURLs = errors.New("at least one score URL is required")

// parseFlags parses args (without the program name) into flags and the
// positional score URLs.
func parseFlags(args []string) (*cliFlags, []string, error) {
	flags := &cliFlags{}

	fs := flag.NewFlagSet("score2pdf", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	fs.StringVarP(&flags.output, "output", "o", "", "directory for the generated PDFs (default \"sheets\")")
	fs.StringVarP(&flags.config, "config", "c", "", "path to a YAML config file")
	fs.IntVarP(&flags.workers, "workers", "w", 0, "concurrent downloads (0 = auto from CPU count)")
	fs.StringVarP(&flags.timeout, "timeout", "t", "", "navigation timeout, e.g. 2m")
	fs.StringVar(&flags.imageTimeout, "image-timeout", "", "per-page image wait timeout, e.g. 30s")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	urls := fs.Args()
	if !flags.version && len(urls) == 0 {
		printUsage(fs)
		return nil, nil, errNoURLs
	}
	for _, u := range urls {
		if !fileutil.IsURL(u) {
			return nil, nil, fmt.Errorf("not a score URL: %q", u)
		}
	}
	return flags, urls, nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), `score2pdf downloads sheet-music scores as PDF.

Usage:
  score2pdf [flags] URL [URL...]

Flags:
%s`, fs.FlagUsages())
}
