package scene

import (
	"flver-importer/internal/coords"
	"flver-importer/internal/flver"
	"flver-importer/internal/mathutil"
	"flver-importer/internal/skeleton"
)

// BindMesh maps one inflated mesh onto the skeleton: positions are emitted
// in the target coordinate system, UVs get the V origin flip, and each
// vertex's palette-local bone slots are remapped to skeleton-global
// indices. Zero weights are dropped outright; slots outside the palette
// and palette entries outside the skeleton are skipped per pair and
// counted, never fatal. A nil skeleton yields an unbound mesh.
func BindMesh(name string, desc *flver.Mesh, inf *flver.InflatedMesh, skel *skeleton.Skeleton, sys coords.System) *BoundMesh {
	m := &BoundMesh{
		Name:          name,
		MaterialIndex: desc.MaterialIndex,
		Faces:         inf.Faces,
	}

	m.Positions = make([]mathutil.Vec3, len(inf.Positions))
	for i, p := range inf.Positions {
		m.Positions[i] = coords.Convert(mathutil.Vec3(p), sys)
	}

	m.UVs = make([][3][2]float32, len(inf.Faces))
	for fi, face := range inf.Faces {
		for li, vi := range face {
			if vi < 0 || vi >= len(inf.UVs) {
				continue
			}
			uv := inf.UVs[vi]
			m.UVs[fi][li] = [2]float32{uv[0], 1.0 - uv[1]}
		}
	}

	if skel == nil || len(skel.Bones) == 0 {
		return m
	}

	m.Weights = make(map[int][]VertexWeight)
	for vi := range inf.Positions {
		if vi >= len(inf.BoneIndices) || vi >= len(inf.BoneWeights) {
			break
		}
		slots := inf.BoneIndices[vi]
		weights := inf.BoneWeights[vi]
		for k := range weights {
			w := weights[k]
			if w == 0.0 {
				continue
			}
			slot := slots[k]
			if slot < 0 || slot >= len(desc.BoneIndices) {
				m.SkippedWeights++
				continue
			}
			global := int(desc.BoneIndices[slot])
			if global < 0 || global >= len(skel.Bones) {
				m.SkippedWeights++
				continue
			}
			// Weights are passed through as stored; they are not
			// renormalized even when a vertex does not sum to 1.
			m.Weights[global] = append(m.Weights[global], VertexWeight{Vertex: vi, Weight: w})
		}
	}
	return m
}
