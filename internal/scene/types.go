// Package scene builds the host-facing output of an import: one resolved
// skeleton plus renderable meshes with skin weights remapped to
// skeleton-global bone indices.
package scene

import (
	"flver-importer/internal/mathutil"
	"flver-importer/internal/skeleton"
)

// VertexWeight ties one vertex to a bone influence.
type VertexWeight struct {
	Vertex int
	Weight float32
}

// BoundMesh is one renderable mesh bound to the resolved skeleton.
// Positions are already in the target coordinate system, UVs are stored
// per face loop with V flipped, and Weights is sparse, keyed by
// skeleton-global bone index. A mesh from an asset without bones has a
// nil Weights map.
type BoundMesh struct {
	Name          string
	MaterialIndex int
	Positions     []mathutil.Vec3
	Faces         [][3]int
	UVs           [][3][2]float32
	Weights       map[int][]VertexWeight

	// SkippedWeights counts vertex/slot pairs dropped because the palette
	// slot or the palette's bone index was out of range.
	SkippedWeights int
}

// Material is the per-material information a host binding layer needs.
type Material struct {
	Name    string
	MTD     string
	Diffuse string // path of the diffuse texture binding, if any
}

// Unit is one fully reconstructed asset.
type Unit struct {
	Name      string
	Skeleton  *skeleton.Skeleton // nil when the asset has no bones
	Materials []Material
	Meshes    []*BoundMesh
}
