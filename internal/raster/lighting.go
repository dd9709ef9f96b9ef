package raster

import "math"

// LightConfig holds precomputed lighting parameters. Directions live in
// screen space (X right, Y down, Z toward the viewer).
type LightConfig struct {
	LightDir [3]float64
	RimDir   [3]float64
	HalfMain [3]float64 // half-vector for Blinn-Phong
	Ambient  float64
	Hemi     float64
	Direct   float64
	Rim      float64
	SpecInt  float64
	SpecPow  float64
	Exposure float64
	InvGamma float64
}

// DefaultLightConfig returns a key light from the upper left, a faint rim
// from behind, and neutral exposure.
func DefaultLightConfig() LightConfig {
	lightDir := normalize3(-0.4, -0.7, 0.6)
	rimDir := normalize3(0.5, 0.3, -0.8)
	viewDir := [3]float64{0, 0, -1}

	half := normalize3(lightDir[0]-viewDir[0], lightDir[1]-viewDir[1], lightDir[2]-viewDir[2])

	return LightConfig{
		LightDir: lightDir,
		RimDir:   rimDir,
		HalfMain: half,
		Ambient:  0.50,
		Hemi:     0.45,
		Direct:   1.40,
		Rim:      0.35,
		SpecInt:  0.40,
		SpecPow:  14.0,
		Exposure: 1.05,
		InvGamma: 1.0 / 2.2,
	}
}

func normalize3(x, y, z float64) [3]float64 {
	l := math.Sqrt(x*x + y*y + z*z)
	if l < 1e-12 {
		return [3]float64{}
	}
	return [3]float64{x / l, y / l, z / l}
}

// shade returns the combined flat-shading scalar for a unit face normal.
func (lc *LightConfig) shade(nx, ny, nz float64) float64 {
	// Lambertian, abs for double-sided faces
	ndlMain := math.Abs(nx*lc.LightDir[0] + ny*lc.LightDir[1] + nz*lc.LightDir[2])
	ndlRim := math.Abs(nx*lc.RimDir[0] + ny*lc.RimDir[1] + nz*lc.RimDir[2])

	hemi := ((1.0-math.Abs(ny))*0.5 + 0.5) * lc.Hemi

	ndh := nx*lc.HalfMain[0] + ny*lc.HalfMain[1] + nz*lc.HalfMain[2]
	if ndh < 0 {
		ndh = 0
	}
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemi + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// Precomputed sRGB-to-linear lookup table.
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// acesTonemap applies ACES filmic tone mapping to a linear value.
func acesTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}
