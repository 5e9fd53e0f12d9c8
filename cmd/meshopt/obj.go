package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"meshopt/common"
	"meshopt/mesh"
)

// loadOBJ reads a minimal Wavefront OBJ subset: "v x y z" vertex lines
// and "f i j k" triangle lines (1-based indices; anything after a "/"
// in a face token, such as texture/normal indices, is ignored). This is the array-interop adapter the core treats as an
// external collaborator; it has no bearing on optimizer semantics.
func loadOBJ(path string) ([]mesh.Vertex, []mesh.Triangle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var verts []mesh.Vertex
	var tris []mesh.Triangle

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("obj: malformed vertex line %q", line)
			}
			x, err := strconv.ParseFloat(fields[1], 32)
			if err != nil {
				return nil, nil, err
			}
			y, err := strconv.ParseFloat(fields[2], 32)
			if err != nil {
				return nil, nil, err
			}
			z, err := strconv.ParseFloat(fields[3], 32)
			if err != nil {
				return nil, nil, err
			}
			verts = append(verts, mesh.Vertex{
				Position: common.Vec3{float32(x), float32(y), float32(z)},
				Selected: true,
			})
		case "f":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("obj: malformed face line %q", line)
			}
			idx := make([]uint32, 3)
			for i := 0; i < 3; i++ {
				tok := strings.SplitN(fields[i+1], "/", 2)[0]
				n, err := strconv.Atoi(tok)
				if err != nil {
					return nil, nil, err
				}
				idx[i] = uint32(n - 1)
			}
			tris = append(tris, mesh.Triangle{V1: idx[0], V2: idx[1], V3: idx[2], Selected: true})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return verts, tris, nil
}

// writeOBJ writes a mesh's live vertices/faces back out as OBJ.
func writeOBJ(path string, m *mesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	for _, v := range m.GetVertices() {
		if _, err := fmt.Fprintf(w, "v %f %f %f\n", v.Position[0], v.Position[1], v.Position[2]); err != nil {
			return err
		}
	}
	for _, t := range m.GetTriangles() {
		if _, err := fmt.Fprintf(w, "f %d %d %d\n", t.V1+1, t.V2+1, t.V3+1); err != nil {
			return err
		}
	}
	return nil
}
