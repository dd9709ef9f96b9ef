// Package coords selects the up-axis convention of every position handed
// to the host. Bones and meshes of one asset must go through the same
// System or the armature and geometry end up in different spaces.
package coords

import (
	"fmt"

	"flver-importer/internal/mathutil"
)

// System is the target axis convention.
type System int

const (
	// ZUp swaps Y and Z for Z-up hosts (the default).
	ZUp System = iota
	// YUp keeps the file's native Y-up axes.
	YUp
)

// Convert maps a native Y-up position into the target system.
// Pure and total: ZUp yields (x, z, y), YUp passes through.
func Convert(v mathutil.Vec3, sys System) mathutil.Vec3 {
	if sys == ZUp {
		return mathutil.Vec3{v[0], v[2], v[1]}
	}
	return v
}

// ParseSystem reads the config/flag spelling of a System.
func ParseSystem(s string) (System, error) {
	switch s {
	case "", "z-up":
		return ZUp, nil
	case "y-up":
		return YUp, nil
	}
	return ZUp, fmt.Errorf("coords: unknown system %q", s)
}

func (s System) String() string {
	if s == YUp {
		return "y-up"
	}
	return "z-up"
}
