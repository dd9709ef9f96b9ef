package raster

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidTexture(r, g, b, a uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = r
		img.Pix[i+1] = g
		img.Pix[i+2] = b
		img.Pix[i+3] = a
	}
	return img
}

func coverage(fb *FrameBuffer) int {
	n := 0
	for i := 3; i < len(fb.Color); i += 4 {
		if fb.Color[i] != 0 {
			n++
		}
	}
	return n
}

func fullUV() [3][2]float32 {
	return [3][2]float32{{0, 0}, {1, 0}, {0.5, 1}}
}

func TestRasterizeTriangleUntextured(t *testing.T) {
	fb := NewFrameBuffer(32, 32)
	lc := DefaultLightConfig()

	px := []float64{2, 30, 16}
	py := []float64{30, 30, 2}
	pz := []float64{0, 0, 0}
	RasterizeTriangle(fb, px, py, pz, [3]int{0, 1, 2}, fullUV(), nil, 200, 200, 200, 255, &lc)

	c := coverage(fb)
	assert.Greater(t, c, 32*32/4)
	assert.Less(t, c, 32*32)
}

func TestRasterizeTriangleZTest(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	lc := DefaultLightConfig()

	px := []float64{0, 15, 8, 0, 15, 8}
	py := []float64{15, 15, 0, 15, 15, 0}
	pz := []float64{1, 1, 1, 0, 0, 0}

	// Near triangle first, then a far one behind it: the far triangle
	// must not overwrite any covered pixel.
	RasterizeTriangle(fb, px, py, pz, [3]int{0, 1, 2}, fullUV(), nil, 255, 0, 0, 255, &lc)
	before := append([]uint8(nil), fb.Color...)
	RasterizeTriangle(fb, px, py, pz, [3]int{3, 4, 5}, fullUV(), nil, 0, 255, 0, 255, &lc)

	assert.Equal(t, before, fb.Color)
}

func TestRasterizeTriangleSkipsTransparentTexels(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	lc := DefaultLightConfig()

	px := []float64{0, 15, 8}
	py := []float64{15, 15, 0}
	pz := []float64{0, 0, 0}
	tex := solidTexture(255, 255, 255, 0)
	RasterizeTriangle(fb, px, py, pz, [3]int{0, 1, 2}, fullUV(), tex, 0, 0, 0, 255, &lc)

	assert.Zero(t, coverage(fb))
}

func TestRasterizeTriangleRejectsBadIndices(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	lc := DefaultLightConfig()

	px := []float64{0, 7, 4}
	py := []float64{7, 7, 0}
	pz := []float64{0, 0, 0}
	RasterizeTriangle(fb, px, py, pz, [3]int{0, 1, 5}, fullUV(), nil, 255, 255, 255, 255, &lc)

	assert.Zero(t, coverage(fb))
}

func TestSampleTextureWraps(t *testing.T) {
	tex := solidTexture(10, 20, 30, 255)
	r, g, b, a := SampleTexture(tex, 1.5, -0.25)
	assert.Equal(t, uint8(10), r)
	assert.Equal(t, uint8(20), g)
	assert.Equal(t, uint8(30), b)
	assert.Equal(t, uint8(255), a)
}

func TestFrameBufferImage(t *testing.T) {
	fb := NewFrameBuffer(2, 2)
	fb.Color[0] = 9
	fb.Color[3] = 255

	img := fb.Image()
	require.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, uint8(9), img.Pix[0])
	assert.Equal(t, uint8(255), img.Pix[3])
}
