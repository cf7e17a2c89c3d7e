package score2pdf

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// svgDimensions returns the declared width and height of an SVG document in
// document units. Explicit width/height attributes on the root element win;
// a missing or zero dimension falls back to the matching viewBox component
// without overriding one found directly. Returns (0, 0) when neither source
// yields usable numbers — callers substitute a default page size.
func svgDimensions(markup []byte) (width, height float64) {
	doc, err := html.Parse(bytes.NewReader(markup))
	if err != nil {
		return 0, 0
	}

	root := findElement(doc, "svg")
	if root == nil {
		return 0, 0
	}

	var viewBox string
	for _, attr := range root.Attr {
		switch strings.ToLower(attr.Key) {
		case "width":
			width = numericPrefix(attr.Val)
		case "height":
			height = numericPrefix(attr.Val)
		case "viewbox":
			viewBox = attr.Val
		}
	}

	if width > 0 && height > 0 {
		return width, height
	}

	// viewBox is "min-x min-y width height"; only the missing dimension
	// is substituted.
	fields := strings.Fields(strings.ReplaceAll(viewBox, ",", " "))
	if len(fields) == 4 {
		if width <= 0 {
			width = numericPrefix(fields[2])
		}
		if height <= 0 {
			height = numericPrefix(fields[3])
		}
	}
	return width, height
}

// findElement walks the parsed tree depth-first and returns the first
// element node with the given tag name.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// numericPrefix parses the leading numeric portion of an attribute value,
// dropping any unit suffix ("300", "300px", "210mm"). Returns 0 when no
// number is present.
func numericPrefix(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		c := s[end]
		if (c < '0' || c > '9') && c != '.' && !(end == 0 && c == '-') {
			break
		}
		end++
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
