package flver

import "math"

// InflatedMesh holds one mesh's vertex data expanded into flat parallel
// arrays, plus the triangulated face list. BoneIndices are mesh-local
// palette slots, not skeleton-global indices.
type InflatedMesh struct {
	Positions   [][3]float32
	UVs         [][2]float32
	BoneIndices [][4]int
	BoneWeights [][4]float32
	Faces       [][3]int
}

// Inflate expands every mesh's packed vertex buffers. The result is
// aligned by position with Meshes; a slot is nil when the mesh carries no
// decodable position data.
func (f *Flver) Inflate() []*InflatedMesh {
	out := make([]*InflatedMesh, len(f.Meshes))
	for i := range f.Meshes {
		out[i] = f.inflateMesh(&f.Meshes[i])
	}
	return out
}

func (f *Flver) inflateMesh(m *Mesh) *InflatedMesh {
	inf := &InflatedMesh{}
	havePositions := false

	for _, vb := range m.VertexBuffers {
		if vb.LayoutIndex < 0 || vb.LayoutIndex >= len(f.Layouts) {
			continue
		}
		if f.decodeBuffer(inf, vb, f.Layouts[vb.LayoutIndex]) {
			havePositions = true
		}
	}
	if !havePositions {
		return nil
	}

	inf.Faces = triangulate(pickFaceSet(m.FaceSets), len(inf.Positions))
	return inf
}

// pickFaceSet prefers the main LOD (flags == 0) over lower-detail sets.
func pickFaceSet(sets []FaceSet) *FaceSet {
	for i := range sets {
		if sets[i].Flags == 0 {
			return &sets[i]
		}
	}
	if len(sets) > 0 {
		return &sets[0]
	}
	return nil
}

// decodeBuffer unpacks one vertex buffer according to its layout and
// returns whether it contributed positions.
func (f *Flver) decodeBuffer(inf *InflatedMesh, vb VertexBuffer, layout []LayoutMember) bool {
	if vb.VertexCount <= 0 || vb.VertexSize <= 0 {
		return false
	}
	n := vb.VertexCount
	if max := len(vb.Data) / vb.VertexSize; n > max {
		n = max
	}

	// UV divisor changed when the format revved.
	uvFactor := float32(1024)
	if f.Version >= 0x2000F {
		uvFactor = 2048
	}

	bo := f.byteOrder()
	havePositions := false
	uvDone := false

	for _, mem := range layout {
		size := memberSize(mem.Type)
		if size == 0 || mem.Offset+size > vb.VertexSize {
			continue
		}

		switch mem.Semantic {
		case semPosition:
			if mem.Type != typeFloat3 && mem.Type != typeFloat4 {
				continue
			}
			inf.Positions = make([][3]float32, n)
			for v := 0; v < n; v++ {
				p := vb.Data[v*vb.VertexSize+mem.Offset:]
				inf.Positions[v] = [3]float32{
					math.Float32frombits(bo.Uint32(p)),
					math.Float32frombits(bo.Uint32(p[4:])),
					math.Float32frombits(bo.Uint32(p[8:])),
				}
			}
			havePositions = true

		case semUV:
			// Only the first UV channel is reconstructed.
			if uvDone {
				continue
			}
			inf.UVs = make([][2]float32, n)
			for v := 0; v < n; v++ {
				p := vb.Data[v*vb.VertexSize+mem.Offset:]
				switch mem.Type {
				case typeFloat2, typeFloat4:
					inf.UVs[v] = [2]float32{
						math.Float32frombits(bo.Uint32(p)),
						math.Float32frombits(bo.Uint32(p[4:])),
					}
				case typeUV, typeUVPair, typeShort2ToFloat2:
					inf.UVs[v] = [2]float32{
						float32(int16(bo.Uint16(p))) / uvFactor,
						float32(int16(bo.Uint16(p[2:]))) / uvFactor,
					}
				}
			}
			uvDone = true

		case semBoneIndices:
			inf.BoneIndices = make([][4]int, n)
			for v := 0; v < n; v++ {
				p := vb.Data[v*vb.VertexSize+mem.Offset:]
				switch mem.Type {
				case typeByte4B, typeByte4E:
					inf.BoneIndices[v] = [4]int{int(p[0]), int(p[1]), int(p[2]), int(p[3])}
				case typeShortBoneIdx:
					inf.BoneIndices[v] = [4]int{
						int(bo.Uint16(p)), int(bo.Uint16(p[2:])),
						int(bo.Uint16(p[4:])), int(bo.Uint16(p[6:])),
					}
				}
			}

		case semBoneWeights:
			inf.BoneWeights = make([][4]float32, n)
			for v := 0; v < n; v++ {
				p := vb.Data[v*vb.VertexSize+mem.Offset:]
				switch mem.Type {
				case typeByte4A, typeByte4C:
					inf.BoneWeights[v] = [4]float32{
						float32(p[0]) / 255, float32(p[1]) / 255,
						float32(p[2]) / 255, float32(p[3]) / 255,
					}
				case typeShort4ToFloatA, typeShort4ToFloatB:
					inf.BoneWeights[v] = [4]float32{
						float32(int16(bo.Uint16(p))) / 32767,
						float32(int16(bo.Uint16(p[2:]))) / 32767,
						float32(int16(bo.Uint16(p[4:]))) / 32767,
						float32(int16(bo.Uint16(p[6:]))) / 32767,
					}
				}
			}
		}
	}
	return havePositions
}

// triangulate turns a face set into a plain triangle list. Strips are
// unwound with alternating winding; degenerate triangles and strip
// restart markers are dropped. Indices outside the vertex range are
// skipped rather than failing the mesh.
func triangulate(fs *FaceSet, vertexCount int) [][3]int {
	if fs == nil || len(fs.Indices) < 3 {
		return nil
	}

	valid := func(i int) bool { return i >= 0 && i < vertexCount }

	if !fs.TriangleStrip {
		faces := make([][3]int, 0, len(fs.Indices)/3)
		for i := 0; i+2 < len(fs.Indices); i += 3 {
			a, b, c := fs.Indices[i], fs.Indices[i+1], fs.Indices[i+2]
			if !valid(a) || !valid(b) || !valid(c) {
				continue
			}
			faces = append(faces, [3]int{a, b, c})
		}
		return faces
	}

	const restart = 0xFFFF
	var faces [][3]int
	flip := false
	for i := 0; i+2 < len(fs.Indices); i++ {
		a, b, c := fs.Indices[i], fs.Indices[i+1], fs.Indices[i+2]
		if a == restart || b == restart || c == restart {
			flip = false
			continue
		}
		if a == b || b == c || a == c || !valid(a) || !valid(b) || !valid(c) {
			flip = !flip
			continue
		}
		if flip {
			faces = append(faces, [3]int{a, c, b})
		} else {
			faces = append(faces, [3]int{a, b, c})
		}
		flip = !flip
	}
	return faces
}
