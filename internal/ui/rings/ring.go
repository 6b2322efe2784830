package rings

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const trackAlpha = 0x40

var minRingSize = fyne.NewSize(72, 72)

// Ring draws the progress of one work block.
type Ring struct {
	widget.BaseWidget

	mu      sync.RWMutex
	percent float64
	fill    color.NRGBA
	raster  *canvas.Raster
}

// NewRing creates an empty ring.
func NewRing() *Ring {
	ring := &Ring{}
	ring.fill = primaryColor()
	ring.raster = canvas.NewRasterWithPixels(ring.pixel)
	ring.raster.SetMinSize(minRingSize)
	ring.ExtendBaseWidget(ring)
	return ring
}

// SetPercent updates the ring. Must be called on the fyne goroutine.
func (ring *Ring) SetPercent(percent float64) {
	ring.mu.Lock()
	if ring.percent == percent {
		ring.mu.Unlock()
		return
	}
	ring.percent = percent
	ring.mu.Unlock()
	ring.raster.Refresh()
}

func (ring *Ring) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ring.raster)
}

func (ring *Ring) pixel(x, y, w, h int) color.Color {
	ring.mu.RLock()
	percent, fill := ring.percent, ring.fill
	ring.mu.RUnlock()

	switch ShadeAt(x, y, w, h, percent) {
	case ShadeFill:
		return fill
	case ShadeTrack:
		track := fill
		track.A = trackAlpha
		return track
	default:
		return color.Transparent
	}
}

func primaryColor() color.NRGBA {
	return color.NRGBAModel.Convert(theme.Color(theme.ColorNamePrimary)).(color.NRGBA)
}
