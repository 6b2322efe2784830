package rings

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIconBucket(t *testing.T) {
	cases := map[float64]int{-3: 0, 0: 0, 4.9: 0, 5: 5, 54.2: 50, 99.9: 95, 100: 100, 140: 100}
	for percent, want := range cases {
		assert.Equal(t, want, IconBucket(percent), "percent %v", percent)
	}
}

func TestIconIsCachedPerBucket(t *testing.T) {
	first := Icon(51)
	assert.Same(t, first, Icon(54))
	assert.Equal(t, "zone25-ring-050.png", first.Name())
	assert.NotSame(t, first, Icon(55))
}

func TestIconDecodesAsPNG(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(Icon(100).Content()))
	require.NoError(t, err)
	assert.Equal(t, iconSize, img.Bounds().Dx())

	_, _, _, alpha := img.At(iconSize/2, iconSize/2).RGBA()
	assert.Equal(t, uint32(0xffff), alpha, "full ring is opaque in the middle")
	_, _, _, alpha = img.At(0, 0).RGBA()
	assert.Zero(t, alpha)
}

func TestRenderIconEmptyHasOnlyTrack(t *testing.T) {
	img := renderIcon(0, 32)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			assert.NotEqual(t, iconColor, img.NRGBAAt(x, y))
		}
	}
}
