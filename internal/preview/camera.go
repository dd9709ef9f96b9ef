package preview

import (
	"math"

	"flver-importer/internal/mathutil"
)

// ViewMatrix is the fixed three-quarter orbit used for thumbnails:
// yaw the model, then pitch the camera slightly down.
func ViewMatrix() mathutil.Mat3 {
	return mathutil.Mat3Mul(
		mathutil.RotX(mathutil.Deg2Rad(-20)),
		mathutil.RotY(mathutil.Deg2Rad(35)),
	)
}

// frame computes the view-space bounding center and the orthographic
// scale that fits the geometry into size pixels with the given margin.
func frame(points []mathutil.Vec3, view mathutil.Mat3, size, margin int) (center [3]float64, scale float64) {
	min := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
	max := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range points {
		t := view.MulVec3(p)
		for k := 0; k < 3; k++ {
			v := float64(t[k])
			if v < min[k] {
				min[k] = v
			}
			if v > max[k] {
				max[k] = v
			}
		}
	}

	for k := 0; k < 3; k++ {
		center[k] = (min[k] + max[k]) / 2
	}
	span := max[0] - min[0]
	if s := max[1] - min[1]; s > span {
		span = s
	}
	if span < 1e-3 {
		span = 1e-3
	}
	scale = float64(size-2*margin) / span
	return center, scale
}

// project transforms model-space vertices to screen coordinates.
// Orthographic: px right, py down, pz toward the viewer for the z-test.
func project(verts []mathutil.Vec3, view mathutil.Mat3, center [3]float64, scale float64, size int) (px, py, pz []float64) {
	n := len(verts)
	px = make([]float64, n)
	py = make([]float64, n)
	pz = make([]float64, n)

	half := float64(size) / 2
	for i, v := range verts {
		t := view.MulVec3(v)
		px[i] = (float64(t[0])-center[0])*scale + half
		py[i] = -(float64(t[1])-center[1])*scale + half
		pz[i] = float64(t[2])
	}
	return px, py, pz
}
