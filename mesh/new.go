package mesh

import (
	"fmt"

	"go.uber.org/zap"
)

// NewMesh allocates empty vertex/triangle tables of the given size,
// all vertices selected and connected-unclassified.
func NewMesh(nVertices, nFaces int) *Mesh {
	verts := make([]Vertex, nVertices)
	for i := range verts {
		verts[i].Selected = true
	}
	return &Mesh{
		Vertices:  verts,
		Triangles: make([]Triangle, nFaces),
	}
}

// NewMeshFromArrays copies external vertex/triangle arrays into a new
// Mesh. Out-of-range vertex indices are a construction-time error —
// they indicate the caller handed over corrupt data, a genuine system
// boundary. A face with a repeated vertex index is a malformed-but-
// tolerable input per the core's error-handling design: it is logged
// and kept, to be filtered downstream by the angle-sentinel and
// degenerate-edge checks that already have to exist for other reasons.
func NewMeshFromArrays(log *zap.Logger, vertices []Vertex, triangles []Triangle) (*Mesh, error) {
	log = nonNilLogger(log)
	n := uint32(len(vertices))
	for i, f := range triangles {
		if f.V1 >= n || f.V2 >= n || f.V3 >= n {
			return nil, fmt.Errorf("mesh: face %d references an out-of-range vertex index", i)
		}
		if f.V1 == f.V2 || f.V2 == f.V3 || f.V1 == f.V3 {
			log.Warn("malformed face: repeated vertex index", zap.Int("face", i))
		}
	}
	m := &Mesh{
		Vertices:  append([]Vertex(nil), vertices...),
		Triangles: append([]Triangle(nil), triangles...),
	}
	m.recomputeBounds()
	return m, nil
}

func nonNilLogger(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// GetVertices returns a read-only-by-convention view into the vertex
// table. Go has no zero-copy read-only slice view, so this is a plain
// slice; callers are expected not to mutate it, as the teacher's
// getVertices/getTriangles accessors also document by convention
// rather than by type.
func (m *Mesh) GetVertices() []Vertex {
	return m.Vertices
}

// GetTriangles returns a read-only-by-convention view into the
// triangle table.
func (m *Mesh) GetTriangles() []Triangle {
	return m.Triangles
}
