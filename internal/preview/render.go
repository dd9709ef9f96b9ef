// Package preview rasterizes a reconstructed unit into a thumbnail image.
// It consumes the same scene output a host binding layer would, which
// doubles as an end-to-end check of the reconstruction.
package preview

import (
	"image"

	"flver-importer/internal/mathutil"
	"flver-importer/internal/raster"
	"flver-importer/internal/scene"
	"flver-importer/internal/texture"
)

// Render draws all meshes of a unit into a square NRGBA image using the
// fixed orbit camera. Textures are resolved per material through res
// (which may be nil for untextured renders). supersample scales the
// internal resolution; the caller downsamples afterwards.
func Render(u *scene.Unit, res texture.Resolver, size, supersample int) *image.NRGBA {
	if supersample < 1 {
		supersample = 1
	}
	renderSize := size * supersample

	var all []mathutil.Vec3
	for _, m := range u.Meshes {
		all = append(all, m.Positions...)
	}
	if len(all) == 0 {
		return image.NewNRGBA(image.Rect(0, 0, renderSize, renderSize))
	}

	view := ViewMatrix()
	margin := 16 * supersample
	center, scale := frame(all, view, renderSize, margin)

	fb := raster.NewFrameBuffer(renderSize, renderSize)
	lc := raster.DefaultLightConfig()

	for _, m := range u.Meshes {
		if len(m.Positions) == 0 {
			continue
		}
		px, py, pz := project(m.Positions, view, center, scale, renderSize)

		var tex *image.NRGBA
		if res != nil {
			if ref := diffuseRef(u, m); ref != "" {
				tex = res.Resolve(ref)
			}
		}

		defR, defG, defB, defA := uint8(160), uint8(160), uint8(170), uint8(255)
		if tex != nil {
			defR, defG, defB, defA = averageColor(tex)
		}

		for fi, face := range m.Faces {
			raster.RasterizeTriangle(fb, px, py, pz, face, m.UVs[fi], tex, defR, defG, defB, defA, &lc)
		}
	}

	return fb.Image()
}

func diffuseRef(u *scene.Unit, m *scene.BoundMesh) string {
	if m.MaterialIndex < 0 || m.MaterialIndex >= len(u.Materials) {
		return ""
	}
	return u.Materials[m.MaterialIndex].Diffuse
}

func averageColor(tex *image.NRGBA) (uint8, uint8, uint8, uint8) {
	b := tex.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 160, 160, 170, 255
	}

	var sumR, sumG, sumB float64
	stride := tex.Stride
	for y := 0; y < h; y++ {
		off := y * stride
		for x := 0; x < w; x++ {
			i := off + x*4
			sumR += float64(tex.Pix[i])
			sumG += float64(tex.Pix[i+1])
			sumB += float64(tex.Pix[i+2])
		}
	}
	n := float64(w * h)
	return uint8(sumR/n + 0.5), uint8(sumG/n + 0.5), uint8(sumB/n + 0.5), 255
}
