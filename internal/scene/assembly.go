package scene

import (
	"strings"

	"flver-importer/internal/coords"
	"flver-importer/internal/flver"
	"flver-importer/internal/skeleton"
)

// Assemble drives the whole reconstruction for one decoded asset. The
// skeleton is resolved only when the asset has bones; inflated buffers are
// zipped with mesh descriptors by position, and a nil slot means that mesh
// decoded to nothing and is skipped. Mesh names are derived from the base
// name and the material name; two meshes sharing a material share a name.
func Assemble(baseName string, f *flver.Flver, inflated []*flver.InflatedMesh, sys coords.System) *Unit {
	u := &Unit{Name: baseName}

	if len(f.Bones) > 0 {
		sk := skeleton.Resolve(f.Bones)
		// Joints move to the target axes before chain merging so the
		// connect pass and the mesh positions agree on one space.
		for i := range sk.Bones {
			sk.Bones[i].Head = coords.Convert(sk.Bones[i].Head, sys)
			sk.Bones[i].Tail = coords.Convert(sk.Bones[i].Tail, sys)
		}
		sk.Connect()
		u.Skeleton = sk
	}

	u.Materials = make([]Material, len(f.Materials))
	for i, mat := range f.Materials {
		u.Materials[i] = Material{
			Name:    mat.Name,
			MTD:     mat.MTD,
			Diffuse: diffusePath(mat),
		}
	}

	for i := range f.Meshes {
		if i >= len(inflated) || inflated[i] == nil {
			continue
		}
		desc := &f.Meshes[i]
		name := baseName
		if desc.MaterialIndex >= 0 && desc.MaterialIndex < len(f.Materials) {
			name = baseName + "_" + f.Materials[desc.MaterialIndex].Name
		}
		u.Meshes = append(u.Meshes, BindMesh(name, desc, inflated[i], u.Skeleton, sys))
	}
	return u
}

// diffusePath picks the diffuse texture binding of a material, falling
// back to the first binding when none is tagged diffuse.
func diffusePath(mat flver.Material) string {
	for _, t := range mat.Textures {
		if strings.Contains(strings.ToLower(t.Type), "diffuse") {
			return t.Path
		}
	}
	if len(mat.Textures) > 0 {
		return mat.Textures[0].Path
	}
	return ""
}
