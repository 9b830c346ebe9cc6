package monitor

import "fmt"

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// Hex returns the color as a #rrggbb string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ColorFor maps a battery percentage to a continuous red-orange-green
// gradient: red (255,0,0) at 0, orange (255,165,0) at 50, and green
// (0,255,0) at 100. Channel values are truncated to integers.
func ColorFor(percent int) RGB {
	if percent >= 50 {
		ratio := float64(percent-50) / 50.0
		return RGB{
			R: uint8(255 * (1 - ratio)),
			G: uint8(165 + 90*ratio),
		}
	}

	ratio := float64(percent) / 50.0
	return RGB{
		R: 255,
		G: uint8(165 * ratio),
	}
}
