package score2pdf

import "testing"

func TestSVGDimensions(t *testing.T) {
	tests := []struct {
		name       string
		markup     string
		wantWidth  float64
		wantHeight float64
	}{
		{
			name:       "explicit width and height",
			markup:     `<svg width="300" height="400"></svg>`,
			wantWidth:  300,
			wantHeight: 400,
		},
		{
			name:       "width and height with unit suffix",
			markup:     `<svg width="210mm" height="297mm"></svg>`,
			wantWidth:  210,
			wantHeight: 297,
		},
		{
			name:       "viewBox fallback when attributes absent",
			markup:     `<svg viewBox="0 0 300 400"></svg>`,
			wantWidth:  300,
			wantHeight: 400,
		},
		{
			name:       "viewBox substitutes only the missing dimension",
			markup:     `<svg width="150" height="0" viewBox="0 0 300 400"></svg>`,
			wantWidth:  150,
			wantHeight: 400,
		},
		{
			name:       "comma separated viewBox",
			markup:     `<svg viewBox="0,0,300,400"></svg>`,
			wantWidth:  300,
			wantHeight: 400,
		},
		{
			name:       "no usable numbers",
			markup:     `<svg></svg>`,
			wantWidth:  0,
			wantHeight: 0,
		},
		{
			name:       "non numeric attributes",
			markup:     `<svg width="auto" height="auto"></svg>`,
			wantWidth:  0,
			wantHeight: 0,
		},
		{
			name:       "not svg at all",
			markup:     `<div>not a score page</div>`,
			wantWidth:  0,
			wantHeight: 0,
		},
		{
			name:       "decimal dimensions with xml declaration",
			markup:     `<?xml version="1.0"?><svg width="595.28px" height="841.89px"><path d="M0 0"/></svg>`,
			wantWidth:  595.28,
			wantHeight: 841.89,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := svgDimensions([]byte(tt.markup))
			if w != tt.wantWidth || h != tt.wantHeight {
				t.Errorf("svgDimensions() = (%v, %v), want (%v, %v)", w, h, tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestNumericPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"300", 300},
		{"300px", 300},
		{" 12.5pt ", 12.5},
		{"0", 0},
		{"px", 0},
		{"", 0},
		{"-10", 0},
	}

	for _, tt := range tests {
		if got := numericPrefix(tt.in); got != tt.want {
			t.Errorf("numericPrefix(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
