// Package skeleton turns the file's flattened bone records (parent /
// first-child / next-sibling indices plus local transforms) into an
// explicit tree with world-space joint positions.
package skeleton

import (
	"flver-importer/internal/flver"
	"flver-importer/internal/mathutil"
)

// boneLen is the placeholder tail distance used before chain merging
// overrides it.
const boneLen = 0.05

// Bone is one resolved joint with world-space endpoints. Parent and
// Children are indices into Skeleton.Bones; -1 means none.
type Bone struct {
	Name      string
	Index     int
	Head      mathutil.Vec3
	Tail      mathutil.Vec3
	Parent    int
	Children  []int
	Connected bool // head is pinned to the parent's tail
}

// Skeleton owns all resolved bones as a flat arena; hierarchy links are
// stored by index so the tree carries no reference cycles.
type Skeleton struct {
	Bones []Bone
	Roots []int

	// Dangling counts child/sibling references that pointed outside the
	// bone table and were dropped.
	Dangling int
}

// Resolve expands the flattened records into world-space joints. The walk
// starts from every declared root (parent index < 0) and follows
// child/sibling links depth-first, carrying the composed parent transform;
// a visited set terminates cyclic link chains. Records no link chain
// reaches still get an entry placed under an identity parent frame, so the
// output always holds exactly len(records) bones.
func Resolve(records []flver.Bone) *Skeleton {
	s := &Skeleton{Bones: make([]Bone, len(records))}
	for i, rec := range records {
		s.Bones[i] = Bone{Name: rec.Name, Index: i, Parent: -1}
	}

	visited := make([]bool, len(records))
	for i, rec := range records {
		if rec.ParentIndex < 0 {
			s.Roots = append(s.Roots, i)
			s.walk(records, i, mathutil.Mat4Identity(), visited)
		}
	}
	for i := range records {
		if !visited[i] {
			s.place(records, i, mathutil.Mat4Identity())
		}
	}
	return s
}

func (s *Skeleton) walk(records []flver.Bone, i int, parent mathutil.Mat4, visited []bool) {
	if i < 0 || i >= len(records) || visited[i] {
		return
	}
	visited[i] = true
	composed := s.place(records, i, parent)

	rec := records[i]
	if p := int(rec.ParentIndex); p >= 0 && p < len(records) {
		s.Bones[i].Parent = p
		s.Bones[p].Children = append(s.Bones[p].Children, i)
	}

	if c := int(rec.ChildIndex); c >= 0 && c < len(records) {
		s.walk(records, c, composed, visited)
	} else if c != -1 {
		s.Dangling++
	}

	// Siblings share this bone's parent frame, not its composed one.
	if n := int(rec.NextSiblingIndex); n >= 0 && n < len(records) {
		s.walk(records, n, parent, visited)
	} else if n != -1 {
		s.Dangling++
	}
}

// place computes head/tail for bone i under the given parent transform and
// returns the composed transform its children inherit.
func (s *Skeleton) place(records []flver.Bone, i int, parent mathutil.Mat4) mathutil.Mat4 {
	rec := records[i]
	t := mathutil.Vec3(rec.Translation)
	r := mathutil.EulerYZX(rec.Rotation[0], rec.Rotation[1], rec.Rotation[2])

	head := parent.MulPoint(t)
	// The tail direction comes from the bone's own rotation only; it is a
	// placeholder until Connect pins chains together.
	tail := head.Add(r.MulVec3(mathutil.Vec3{0, boneLen, 0}))

	s.Bones[i].Head = head
	s.Bones[i].Tail = tail

	return mathutil.Mat4Mul(mathutil.Mat4Mul(parent, mathutil.Translation(t)), mathutil.Mat4FromMat3(r))
}
