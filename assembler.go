package score2pdf

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/scorefetch/go-score2pdf/internal/fileutil"
)

// Default page size in points (A4 portrait), used for raster pages and for
// vector pages whose geometry cannot be determined.
const (
	defaultPageWidthPt  = 595.28
	defaultPageHeightPt = 841.89

	// minPageDimensionPt keeps degenerate vector geometry from producing
	// a zero or negative page.
	minPageDimensionPt = 72.0
)

// docAssembler abstracts document composition to allow fakes in tests.
type docAssembler interface {
	Assemble(paths []string, format Format, title string) (*Artifact, error)
}

// Compile-time interface check
var _ docAssembler = (*pdfAssembler)(nil)

// pdfAssembler writes one PDF page per downloaded asset.
type pdfAssembler struct {
	outputDir string
}

func newPDFAssembler(outputDir string) *pdfAssembler {
	return &pdfAssembler{outputDir: outputDir}
}

// Assemble appends one page per asset, strictly in the supplied order, and
// flushes the document to durable storage. The artifact is complete only
// once the underlying file write has finished. Any per-asset read or parse
// failure aborts the whole assembly; partial documents are not acceptable
// output.
func (a *pdfAssembler) Assemble(paths []string, format Format, title string) (*Artifact, error) {
	if err := fileutil.EnsureDir(a.outputDir); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssembly, err)
	}

	// No implicit first page; every page is added explicitly per asset.
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetTitle(title, true)

	for _, path := range paths {
		var err error
		if format.IsVector() {
			err = addVectorPage(doc, path)
		} else {
			err = addRasterPage(doc, path, format)
		}
		if err != nil {
			return nil, err
		}
	}

	if doc.Err() {
		return nil, fmt.Errorf("%w: %v", ErrAssembly, doc.Error())
	}

	pages := doc.PageCount()
	savePath := filepath.Join(a.outputDir, normalizeTitle(title)+".pdf")
	if err := doc.OutputFileAndClose(savePath); err != nil {
		return nil, fmt.Errorf("%w: writing %s: %v", ErrAssembly, savePath, err)
	}
	return &Artifact{Path: savePath, Pages: pages}, nil
}

// addVectorPage sizes the page from the SVG's own geometry and renders the
// vector content scaled to fill it, preserving aspect ratio.
func addVectorPage(doc *fpdf.Fpdf, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrAssembly, path, err)
	}

	width, height := svgDimensions(data)
	if width <= 0 && height <= 0 {
		width, height = defaultPageWidthPt, defaultPageHeightPt
	}
	width = math.Max(width, minPageDimensionPt)
	height = math.Max(height, minPageDimensionPt)

	sig, err := fpdf.SVGBasicParse(data)
	if err != nil {
		return fmt.Errorf("%w: parsing %s: %v", ErrAssembly, path, err)
	}

	doc.AddPageFormat("P", fpdf.SizeType{Wd: width, Ht: height})
	scale := 1.0
	if sig.Wd > 0 && sig.Ht > 0 {
		scale = math.Min(width/sig.Wd, height/sig.Ht)
	}
	doc.SetLineWidth(0.5)
	doc.SetDrawColor(0, 0, 0)
	doc.SetXY(0, 0)
	doc.SVGBasicWrite(&sig, scale)
	return nil
}

// addRasterPage places the image on a default-sized page, scaled to fit and
// centered on both axes. The image is never cropped or distorted.
func addRasterPage(doc *fpdf.Fpdf, path string, format Format) error {
	if !fileutil.FileExists(path) {
		return fmt.Errorf("%w: missing asset %s", ErrAssembly, path)
	}

	doc.AddPageFormat("P", fpdf.SizeType{Wd: defaultPageWidthPt, Ht: defaultPageHeightPt})

	opts := fpdf.ImageOptions{ImageType: format.imageType()}
	info := doc.RegisterImageOptions(path, opts)
	if doc.Err() {
		return fmt.Errorf("%w: registering %s: %v", ErrAssembly, path, doc.Error())
	}

	imgW, imgH := info.Extent()
	if imgW <= 0 || imgH <= 0 {
		return fmt.Errorf("%w: %s has no usable dimensions", ErrAssembly, path)
	}

	scale := math.Min(defaultPageWidthPt/imgW, defaultPageHeightPt/imgH)
	w := imgW * scale
	h := imgH * scale
	x := (defaultPageWidthPt - w) / 2
	y := (defaultPageHeightPt - h) / 2
	doc.ImageOptions(path, x, y, w, h, false, opts, 0, "")
	return nil
}

// normalizeTitle turns a scraped title into a filesystem-safe file stem:
// whitespace collapses to underscores and path separators are dropped.
func normalizeTitle(title string) string {
	stem := strings.Join(strings.Fields(title), "_")
	stem = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, stem)
	if stem == "" {
		return fallbackTitle
	}
	return stem
}
