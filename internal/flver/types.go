package flver

// Bone is one raw skeleton record as stored in the file. Hierarchy links
// are indices into the same bone table; -1 means none. The encoding is
// flattened: each bone names its parent, its first child, and the next
// sibling under the same parent.
type Bone struct {
	Name             string
	Translation      [3]float32
	Rotation         [3]float32 // Euler radians, applied Y·Z·X
	Scale            [3]float32
	ParentIndex      int16
	ChildIndex       int16
	NextSiblingIndex int16
	PrevSiblingIndex int16
}

// Texture is one texture binding of a material, e.g. type "g_Diffuse"
// with a game-internal path.
type Texture struct {
	Type string
	Path string
}

// Material holds a material name, its shader definition path, and its
// texture bindings.
type Material struct {
	Name     string
	MTD      string
	Textures []Texture
}

// FaceSet is one index set of a mesh. Indices reference the mesh's own
// vertex buffer (mesh-local, zero-based).
type FaceSet struct {
	Flags         uint32
	TriangleStrip bool
	CullBackfaces bool
	Indices       []int
}

// VertexBuffer references one mesh's packed vertex data.
type VertexBuffer struct {
	LayoutIndex int
	VertexSize  int
	VertexCount int
	Data        []byte
}

// LayoutMember describes one attribute inside a packed vertex.
type LayoutMember struct {
	Type     uint32
	Semantic uint32
	Index    int
	Offset   int
}

// Mesh is one sub-mesh descriptor. Geometry stays packed in VertexBuffers
// until Inflate; BoneIndices is the mesh-local bone palette mapping local
// slots to skeleton-global bone indices.
type Mesh struct {
	Dynamic          bool
	MaterialIndex    int
	DefaultBoneIndex int
	BoneIndices      []int32
	FaceSets         []FaceSet
	VertexBuffers    []VertexBuffer
}

// Flver holds everything decoded from one FLVER file.
type Flver struct {
	Version   uint32
	BigEndian bool
	Unicode   bool
	Bones     []Bone
	Materials []Material
	Meshes    []Mesh
	Layouts   [][]LayoutMember
}

// Vertex attribute semantics used by buffer layouts.
const (
	semPosition    = 0
	semBoneWeights = 1
	semBoneIndices = 2
	semNormal      = 3
	semUV          = 5
	semTangent     = 6
	semBitangent   = 7
	semVertexColor = 10
)

// Storage types of layout members (the subset seen in game files).
const (
	typeFloat2         = 0x01
	typeFloat3         = 0x02
	typeFloat4         = 0x03
	typeByte4A         = 0x10
	typeByte4B         = 0x11
	typeShort2ToFloat2 = 0x12
	typeByte4C         = 0x13
	typeUV             = 0x15
	typeUVPair         = 0x16
	typeShortBoneIdx   = 0x18
	typeShort4ToFloatA = 0x1A
	typeShort4ToFloatB = 0x2E
	typeByte4E         = 0x2F
)

// memberSize returns the packed byte size of a layout member type,
// or 0 for types this decoder does not know.
func memberSize(t uint32) int {
	switch t {
	case typeFloat2:
		return 8
	case typeFloat3:
		return 12
	case typeFloat4:
		return 16
	case typeByte4A, typeByte4B, typeByte4C, typeByte4E:
		return 4
	case typeShort2ToFloat2, typeUV:
		return 4
	case typeUVPair, typeShortBoneIdx, typeShort4ToFloatA, typeShort4ToFloatB:
		return 8
	}
	return 0
}
