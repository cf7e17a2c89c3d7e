package score2pdf

import "errors"

// Sentinel errors for pipeline operations. Callers classify failures with
// errors.Is against these values.
var (
	// ErrBrowserConnect means the headless browser could not be launched
	// or connected to.
	ErrBrowserConnect = errors.New("failed to connect to browser")

	// ErrNavigationTimeout means the score page did not finish loading
	// within the configured bound. Retrying the request may succeed.
	ErrNavigationTimeout = errors.New("page did not finish loading in time")

	// ErrSessionFault means the browser session became unusable while it
	// was being driven (process crash, protocol disconnect).
	ErrSessionFault = errors.New("browser session became unusable")

	// ErrNoPagesFound means zero score pages were discovered after
	// scrolling. A wrong URL and an incompatible page shape are
	// indistinguishable here.
	ErrNoPagesFound = errors.New("no score pages found, please check the url and try again")

	// ErrUnsupportedFormat means the first discovered image source could
	// not be classified as a supported encoding. Raised before any
	// download starts.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrAssetDownload means a page image exhausted its retry budget or
	// received a non-success response. The whole request fails; no
	// partial document is produced.
	ErrAssetDownload = errors.New("asset download failed")

	// ErrAssembly means a read or geometry failure occurred while
	// composing the output document.
	ErrAssembly = errors.New("document assembly failed")
)
