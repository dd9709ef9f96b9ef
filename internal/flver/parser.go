package flver

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"unicode/utf16"

	"golang.org/x/text/encoding/japanese"
)

// ParseFile reads a .flver or .flver.dcx file and decodes it.
func ParseFile(path string) (*Flver, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("flver: read %s: %w", path, err)
	}
	if IsDCX(raw) {
		raw, err = DecompressDCX(raw)
		if err != nil {
			return nil, fmt.Errorf("flver: %s: %w", path, err)
		}
	}
	f, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("flver: %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a raw (already decompressed) FLVER2 image.
func Parse(data []byte) (*Flver, error) {
	if len(data) < 0x80 {
		return nil, fmt.Errorf("truncated header (%d bytes)", len(data))
	}
	if string(data[:6]) != "FLVER\x00" {
		return nil, fmt.Errorf("bad magic %q", data[:6])
	}

	var bo binary.ByteOrder = binary.LittleEndian
	bigEndian := false
	switch data[6] {
	case 'L':
	case 'B':
		bo = binary.BigEndian
		bigEndian = true
	default:
		return nil, fmt.Errorf("bad endianness byte 0x%02x", data[6])
	}

	r := &reader{data: data, off: 8, bo: bo}

	version := r.u32()
	if version < 0x20006 {
		return nil, fmt.Errorf("unsupported version 0x%x", version)
	}

	dataOffset := int(r.u32())
	_ = r.u32() // data length
	dummyCount := int(r.u32())
	materialCount := int(r.u32())
	boneCount := int(r.u32())
	meshCount := int(r.u32())
	vertexBufferCount := int(r.u32())
	r.skip(24) // bounding box
	r.skip(8)  // face counts
	defaultIndexSize := int(r.u8())
	unicode := r.u8() != 0
	r.skip(2)
	r.skip(4)
	faceSetCount := int(r.u32())
	layoutCount := int(r.u32())
	textureCount := int(r.u32())
	r.off = 0x80

	for _, c := range []int{dummyCount, materialCount, boneCount, meshCount, vertexBufferCount, faceSetCount, layoutCount, textureCount} {
		if c < 0 || c > 1<<20 {
			return nil, fmt.Errorf("implausible record count %d", c)
		}
	}

	f := &Flver{Version: version, BigEndian: bigEndian, Unicode: unicode}

	// Dummy points carry no geometry we reconstruct.
	r.skip(dummyCount * 64)

	type rawMaterial struct {
		nameOffset, mtdOffset uint32
		textureCount          int
		textureIndex          int
	}
	rawMaterials := make([]rawMaterial, materialCount)
	for i := range rawMaterials {
		rawMaterials[i].nameOffset = r.u32()
		rawMaterials[i].mtdOffset = r.u32()
		rawMaterials[i].textureCount = int(r.u32())
		rawMaterials[i].textureIndex = int(r.u32())
		r.skip(16) // flags, gx offset, reserved
	}

	f.Bones = make([]Bone, boneCount)
	for i := range f.Bones {
		b := &f.Bones[i]
		b.Translation = r.f32x3()
		nameOffset := r.u32()
		b.Rotation = r.f32x3()
		b.ParentIndex = r.i16()
		b.ChildIndex = r.i16()
		b.Scale = r.f32x3()
		b.NextSiblingIndex = r.i16()
		b.PrevSiblingIndex = r.i16()
		r.skip(28) // bounding box, reserved
		r.skip(52) // padding to 0x80
		b.Name = r.stringAt(nameOffset, unicode)
	}

	type rawMesh struct {
		boneCount, boneOffset           int
		faceSetCount, faceSetOffset     int
		vertexBufCount, vertexBufOffset int
	}
	rawMeshes := make([]rawMesh, meshCount)
	f.Meshes = make([]Mesh, meshCount)
	for i := range f.Meshes {
		m := &f.Meshes[i]
		m.Dynamic = r.u8() != 0
		r.skip(3)
		m.MaterialIndex = int(r.i32())
		r.skip(8)
		m.DefaultBoneIndex = int(r.i32())
		rawMeshes[i].boneCount = int(r.i32())
		r.skip(4) // bounding box offset
		rawMeshes[i].boneOffset = int(r.u32())
		rawMeshes[i].faceSetCount = int(r.i32())
		rawMeshes[i].faceSetOffset = int(r.u32())
		rawMeshes[i].vertexBufCount = int(r.i32())
		rawMeshes[i].vertexBufOffset = int(r.u32())
	}

	faceSets := make([]FaceSet, faceSetCount)
	for i := range faceSets {
		fs := &faceSets[i]
		fs.Flags = r.u32()
		fs.TriangleStrip = r.u8() != 0
		fs.CullBackfaces = r.u8() != 0
		r.skip(2)
		indexCount := int(r.u32())
		indicesOffset := int(r.u32())
		r.skip(8) // indices length, reserved
		indexSize := int(r.u32())
		r.skip(4)
		if indexSize == 0 {
			indexSize = defaultIndexSize
		}
		fs.Indices = r.indicesAt(dataOffset+indicesOffset, indexCount, indexSize)
	}

	buffers := make([]VertexBuffer, vertexBufferCount)
	for i := range buffers {
		vb := &buffers[i]
		r.skip(4) // buffer index
		vb.LayoutIndex = int(r.u32())
		vb.VertexSize = int(r.u32())
		vb.VertexCount = int(r.u32())
		r.skip(8)
		length := int(r.u32())
		offset := int(r.u32())
		vb.Data = r.bytesAt(dataOffset+offset, length)
	}

	f.Layouts = make([][]LayoutMember, layoutCount)
	for i := range f.Layouts {
		memberCount := int(r.u32())
		r.skip(8)
		membersOffset := int(r.u32())
		f.Layouts[i] = r.layoutMembersAt(membersOffset, memberCount)
	}

	textures := make([]Texture, textureCount)
	for i := range textures {
		pathOffset := r.u32()
		typeOffset := r.u32()
		r.skip(24) // scale, flags, reserved
		textures[i] = Texture{
			Type: r.stringAt(typeOffset, unicode),
			Path: r.stringAt(pathOffset, unicode),
		}
	}

	f.Materials = make([]Material, materialCount)
	for i, rm := range rawMaterials {
		mat := &f.Materials[i]
		mat.Name = r.stringAt(rm.nameOffset, unicode)
		mat.MTD = r.stringAt(rm.mtdOffset, unicode)
		for t := rm.textureIndex; t < rm.textureIndex+rm.textureCount; t++ {
			if t < 0 || t >= len(textures) {
				break
			}
			mat.Textures = append(mat.Textures, textures[t])
		}
	}

	for i, rm := range rawMeshes {
		m := &f.Meshes[i]
		m.BoneIndices = r.i32SliceAt(rm.boneOffset, rm.boneCount)
		for _, fi := range r.i32SliceAt(rm.faceSetOffset, rm.faceSetCount) {
			if fi >= 0 && int(fi) < len(faceSets) {
				m.FaceSets = append(m.FaceSets, faceSets[fi])
			}
		}
		for _, bi := range r.i32SliceAt(rm.vertexBufOffset, rm.vertexBufCount) {
			if bi >= 0 && int(bi) < len(buffers) {
				m.VertexBuffers = append(m.VertexBuffers, buffers[bi])
			}
		}
	}

	if r.truncated {
		return nil, fmt.Errorf("truncated record data")
	}
	return f, nil
}

func (f *Flver) byteOrder() binary.ByteOrder {
	if f.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// reader walks the raw image. Overruns clamp instead of panicking and are
// reported once at the end of Parse via the truncated flag.
type reader struct {
	data      []byte
	off       int
	bo        binary.ByteOrder
	truncated bool
}

func (r *reader) skip(n int) {
	r.off += n
	if r.off > len(r.data) {
		r.off = len(r.data)
		r.truncated = true
	}
}

func (r *reader) u8() byte {
	if r.off >= len(r.data) {
		r.truncated = true
		return 0
	}
	b := r.data[r.off]
	r.off++
	return b
}

func (r *reader) i16() int16 {
	if r.off+2 > len(r.data) {
		r.off = len(r.data)
		r.truncated = true
		return 0
	}
	v := int16(r.bo.Uint16(r.data[r.off:]))
	r.off += 2
	return v
}

func (r *reader) u32() uint32 {
	if r.off+4 > len(r.data) {
		r.off = len(r.data)
		r.truncated = true
		return 0
	}
	v := r.bo.Uint32(r.data[r.off:])
	r.off += 4
	return v
}

func (r *reader) i32() int32 {
	return int32(r.u32())
}

func (r *reader) f32() float32 {
	return math.Float32frombits(r.u32())
}

func (r *reader) f32x3() [3]float32 {
	return [3]float32{r.f32(), r.f32(), r.f32()}
}

func (r *reader) bytesAt(off, n int) []byte {
	if off < 0 || n < 0 || off+n > len(r.data) {
		r.truncated = true
		return nil
	}
	return r.data[off : off+n]
}

func (r *reader) i32SliceAt(off, n int) []int32 {
	raw := r.bytesAt(off, n*4)
	if raw == nil {
		return nil
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(r.bo.Uint32(raw[i*4:]))
	}
	return out
}

func (r *reader) indicesAt(off, n, size int) []int {
	switch size {
	case 16:
		raw := r.bytesAt(off, n*2)
		if raw == nil {
			return nil
		}
		out := make([]int, n)
		for i := range out {
			out[i] = int(r.bo.Uint16(raw[i*2:]))
		}
		return out
	case 32:
		raw := r.bytesAt(off, n*4)
		if raw == nil {
			return nil
		}
		out := make([]int, n)
		for i := range out {
			out[i] = int(r.bo.Uint32(raw[i*4:]))
		}
		return out
	}
	r.truncated = true
	return nil
}

func (r *reader) layoutMembersAt(off, n int) []LayoutMember {
	raw := r.bytesAt(off, n*20)
	if raw == nil {
		return nil
	}
	members := make([]LayoutMember, n)
	structOff := 0
	for i := range members {
		rec := raw[i*20:]
		explicit := int(r.bo.Uint32(rec[4:]))
		if explicit > 0 {
			structOff = explicit
		}
		members[i] = LayoutMember{
			Type:     r.bo.Uint32(rec[8:]),
			Semantic: r.bo.Uint32(rec[12:]),
			Index:    int(r.bo.Uint32(rec[16:])),
			Offset:   structOff,
		}
		structOff += memberSize(members[i].Type)
	}
	return members
}

// stringAt reads a null-terminated name: UTF-16 in unicode files,
// Shift-JIS otherwise.
func (r *reader) stringAt(off uint32, unicode bool) string {
	o := int(off)
	if o <= 0 || o >= len(r.data) {
		return ""
	}
	if unicode {
		var units []uint16
		for o+2 <= len(r.data) {
			u := r.bo.Uint16(r.data[o:])
			if u == 0 {
				break
			}
			units = append(units, u)
			o += 2
		}
		return string(utf16.Decode(units))
	}
	end := o
	for end < len(r.data) && r.data[end] != 0 {
		end++
	}
	raw := r.data[o:end]
	decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
