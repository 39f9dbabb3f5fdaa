package viz

import (
	"image/color"

	"github.com/crazy3lf/colorconv"
)

// TypeColors returns k visually distinct colors, hues evenly spaced
// around the wheel at full saturation. Shared by the GUI and any
// exporter that colors particles by type.
func TypeColors(k int) []color.RGBA {
	colors := make([]color.RGBA, k)
	for i := 0; i < k; i++ {
		hue := float64(i) * 360.0 / float64(k)
		r, g, b, err := colorconv.HSVToRGB(hue, 0.85, 1.0)
		if err != nil {
			colors[i] = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			continue
		}
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}
