package rings

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"

	"fyne.io/fyne/v2"
)

const (
	iconSize = 64
	iconStep = 5
)

var (
	iconColor = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	iconCache sync.Map
)

// IconBucket rounds percent down to the resolution icons are rendered at.
func IconBucket(percent float64) int {
	switch {
	case percent <= 0:
		return 0
	case percent >= 100:
		return 100
	}
	return int(percent) / iconStep * iconStep
}

// Icon returns a PNG ring for percent, suitable for the app and tray icon.
// Resources are cached per bucket.
func Icon(percent float64) fyne.Resource {
	bucket := IconBucket(percent)
	if cached, ok := iconCache.Load(bucket); ok {
		return cached.(fyne.Resource)
	}
	resource := fyne.NewStaticResource(fmt.Sprintf("zone25-ring-%03d.png", bucket), encodeIcon(renderIcon(float64(bucket), iconSize)))
	actual, _ := iconCache.LoadOrStore(bucket, resource)
	return actual.(fyne.Resource)
}

func renderIcon(percent float64, size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	track := iconColor
	track.A = trackAlpha
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			switch ShadeAt(x, y, size, size, percent) {
			case ShadeFill:
				img.SetNRGBA(x, y, iconColor)
			case ShadeTrack:
				img.SetNRGBA(x, y, track)
			}
		}
	}
	return img
}

func encodeIcon(img image.Image) []byte {
	var buf bytes.Buffer
	// Encoding an in-memory NRGBA image only fails on writer errors.
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
