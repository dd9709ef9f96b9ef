package main

import (
	"flag"
	"fmt"
	"os"

	"flver-importer/internal/batch"
	"flver-importer/internal/coords"
	"flver-importer/internal/flver"
	"flver-importer/internal/scene"
	"flver-importer/internal/skeleton"
)

func main() {
	coordsFlag := flag.String("coords", "z-up", "Target coordinate system: z-up or y-up")
	flag.Parse()

	system, err := coords.ParseSystem(*coordsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, arg := range flag.Args() {
		f, err := flver.ParseFile(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parse error %s: %v\n", arg, err)
			continue
		}

		unit := scene.Assemble(batch.UnitName(arg), f, f.Inflate(), system)

		fmt.Printf("\n=== %s (version=0x%x bones=%d materials=%d meshes=%d) ===\n",
			arg, f.Version, len(f.Bones), len(f.Materials), len(f.Meshes))

		if unit.Skeleton != nil {
			fmt.Printf("--- SKELETON (%d roots, %d dangling refs) ---\n",
				len(unit.Skeleton.Roots), unit.Skeleton.Dangling)
			for _, r := range unit.Skeleton.Roots {
				printBone(unit.Skeleton, r, 0)
			}
		} else {
			fmt.Println("--- NO SKELETON ---")
		}

		fmt.Println("--- MESHES ---")
		for i, m := range unit.Meshes {
			fmt.Printf("  Mesh[%d] %q: verts=%d faces=%d boundBones=%d skippedWeights=%d\n",
				i, m.Name, len(m.Positions), len(m.Faces), len(m.Weights), m.SkippedWeights)
		}
	}
}

func printBone(s *skeleton.Skeleton, i, depth int) {
	b := s.Bones[i]
	mark := ""
	if b.Connected {
		mark = " [connected]"
	}
	for d := 0; d < depth; d++ {
		fmt.Print("  ")
	}
	fmt.Printf("  %q head=(%.3f,%.3f,%.3f) tail=(%.3f,%.3f,%.3f)%s\n",
		b.Name,
		b.Head[0], b.Head[1], b.Head[2],
		b.Tail[0], b.Tail[1], b.Tail[2],
		mark)
	for _, c := range b.Children {
		printBone(s, c, depth+1)
	}
}
