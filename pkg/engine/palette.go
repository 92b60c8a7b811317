package engine

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// goldenAngle spreads consecutive palette hues as far apart as possible
const goldenAngle = 137.50776405

// ParseColor parses a "#rrggbb" hex string
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return toRGBA(c), nil
}

// PaletteColor returns the default display color for the i-th body
func PaletteColor(i int) color.RGBA {
	hue := math.Mod(float64(i)*goldenAngle, 360)
	return toRGBA(colorful.Hsv(hue, 0.55, 0.95))
}

// Dim blends c towards black; used for trails
func Dim(c color.RGBA, amount float64) color.RGBA {
	base := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	out := toRGBA(base.BlendRgb(colorful.Color{}, amount))
	out.A = c.A
	return out
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
