package engine

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ff0000", color.RGBA{255, 0, 0, 255}, false},
		{"#00ff80", color.RGBA{0, 255, 128, 255}, false},
		{"#fff", color.RGBA{255, 255, 255, 255}, false},
		{"red", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v", tt.in, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPaletteColor_Distinct(t *testing.T) {
	seen := make(map[color.RGBA]int)
	for i := 0; i < 12; i++ {
		c := PaletteColor(i)
		if c.A != 255 {
			t.Errorf("PaletteColor(%d) not opaque: %v", i, c)
		}
		if prev, ok := seen[c]; ok {
			t.Errorf("PaletteColor(%d) repeats PaletteColor(%d)", i, prev)
		}
		seen[c] = i
	}
}

func TestDim(t *testing.T) {
	c := color.RGBA{200, 100, 50, 255}

	if got := Dim(c, 0); got != c {
		t.Errorf("Dim(c, 0) = %v, want %v", got, c)
	}
	if got := Dim(c, 1); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("Dim(c, 1) = %v, want black", got)
	}
	half := Dim(c, 0.5)
	if half.R >= c.R || half.G >= c.G {
		t.Errorf("Dim(c, 0.5) = %v should be darker than %v", half, c)
	}
}
