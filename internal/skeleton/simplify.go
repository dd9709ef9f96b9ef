package skeleton

// Connect merges single-child bone runs into continuous joint chains,
// matching the usual rig convention: a bone with exactly one child gets
// its tail pinned to that child's head and the child is flagged Connected.
// Leaf bones inherit their parent's direction while keeping their own
// length; bones with several children keep the tail Resolve gave them.
func (s *Skeleton) Connect() {
	for _, r := range s.Roots {
		s.connect(r)
	}
}

func (s *Skeleton) connect(i int) {
	b := &s.Bones[i]
	switch len(b.Children) {
	case 0:
		if b.Parent < 0 {
			return
		}
		p := s.Bones[b.Parent]
		dir := p.Tail.Sub(p.Head).Normalize()
		length := b.Tail.Sub(b.Head).Len()
		b.Tail = b.Head.Add(dir.Scale(length))
	case 1:
		c := b.Children[0]
		b.Tail = s.Bones[c].Head
		s.Bones[c].Connected = true
		s.connect(c)
	default:
		for _, c := range b.Children {
			s.connect(c)
		}
	}
}
