package coords

import (
	"testing"

	"flver-importer/internal/mathutil"

	"github.com/stretchr/testify/assert"
)

func TestConvert(t *testing.T) {
	p := mathutil.Vec3{1, 2, 3}

	assert.Equal(t, p, Convert(p, YUp))
	assert.Equal(t, mathutil.Vec3{1, 3, 2}, Convert(p, ZUp))

	// The swap is an involution: applying it twice restores the input.
	assert.Equal(t, p, Convert(Convert(p, ZUp), ZUp))
}

func TestParseSystem(t *testing.T) {
	s, err := ParseSystem("z-up")
	assert.NoError(t, err)
	assert.Equal(t, ZUp, s)

	s, err = ParseSystem("y-up")
	assert.NoError(t, err)
	assert.Equal(t, YUp, s)

	s, err = ParseSystem("")
	assert.NoError(t, err)
	assert.Equal(t, ZUp, s)

	_, err = ParseSystem("sideways")
	assert.Error(t, err)
}
