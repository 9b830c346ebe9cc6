package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/sirupsen/logrus"

	"github.com/hctray/hctray/pkg/monitor"
)

// idleColor is used when there is no numeric battery level to color by
// (charging, unavailable, or before the first poll).
var idleColor = monitor.RGB{R: 128, G: 128, B: 128}

const iconSize = 22

// statusIcon renders the tray badge: a filled circle in the given color,
// PNG-encoded the way systray expects on Linux.
func statusIcon(c monitor.RGB) []byte {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))

	center := float64(iconSize)/2 - 0.5
	radius := float64(iconSize)/2 - 1.5
	fill := color.RGBA{R: c.R, G: c.G, B: c.B, A: 230}

	for y := 0; y < iconSize; y++ {
		for x := 0; x < iconSize; x++ {
			dx := float64(x) - center
			dy := float64(y) - center
			if dx*dx+dy*dy <= radius*radius {
				img.SetRGBA(x, y, fill)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		logrus.WithError(err).Warn("failed to encode tray icon")
		return nil
	}
	return buf.Bytes()
}
