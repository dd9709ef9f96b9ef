package postprocess

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownsample(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i] = 200
		src.Pix[i+1] = 100
		src.Pix[i+2] = 50
		src.Pix[i+3] = 255
	}

	out := Downsample(src, 32)
	require.Equal(t, image.Rect(0, 0, 32, 32), out.Bounds())

	// A uniform opaque image must survive the premultiply round trip.
	i := (16*out.Stride + 16*4)
	assert.InDelta(t, 200, int(out.Pix[i]), 1)
	assert.InDelta(t, 100, int(out.Pix[i+1]), 1)
	assert.InDelta(t, 50, int(out.Pix[i+2]), 1)
	assert.Equal(t, uint8(255), out.Pix[i+3])
}

func TestDownsampleNoUpscale(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	assert.Same(t, src, Downsample(src, 32))
}

func TestDownsampleTransparentStaysClean(t *testing.T) {
	// Fully transparent pixels carry a hidden white color; it must not
	// bleed into the result.
	src := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i] = 255
		src.Pix[i+1] = 255
		src.Pix[i+2] = 255
		src.Pix[i+3] = 0
	}

	out := Downsample(src, 32)
	for i := 0; i < len(out.Pix); i += 4 {
		assert.Zero(t, out.Pix[i+3])
		assert.Zero(t, out.Pix[i])
	}
}
