package mesh

import (
	"go.uber.org/zap"

	"meshopt/internal/workpool"
)

// Refine performs one global 1-to-4 face split, inserting a vertex at
// every edge midpoint. Assumes the mesh has no pending sentinel
// vertices or deleted faces (call CompactDeleted first if unsure);
// rebuilds adjacency from scratch afterward, since refinement is a
// global barrier with no interleaving against smoothing.
func (m *Mesh) Refine(log *zap.Logger, pool *workpool.Pool) {
	log = nonNilLogger(log)
	V := len(m.Vertices)

	edgeNeighbors := make([][]uint32, V)
	for _, f := range m.Triangles {
		if f.isDeleted() {
			continue
		}
		addEdge(edgeNeighbors, f.V1, f.V2)
		addEdge(edgeNeighbors, f.V2, f.V3)
		addEdge(edgeNeighbors, f.V3, f.V1)
	}

	offsets := make([]int, V+1)
	for v := 0; v < V; v++ {
		offsets[v+1] = offsets[v] + len(edgeNeighbors[v])
	}
	E := offsets[V]

	newVerts := make([]Vertex, V+E)
	copy(newVerts, m.Vertices)
	for v := 0; v < V; v++ {
		for i, a := range edgeNeighbors[v] {
			mid := m.Vertices[v].Position.Add(m.Vertices[a].Position).Mul(0.5)
			newVerts[V+offsets[v]+i] = Vertex{Position: mid, Marker: 0, Selected: true}
		}
	}

	midIndex := func(v, a uint32) uint32 {
		lo, hi := v, a
		if lo > hi {
			lo, hi = hi, lo
		}
		for i, n := range edgeNeighbors[lo] {
			if n == hi {
				return uint32(V) + uint32(offsets[lo]) + uint32(i)
			}
		}
		panic("mesh: refine could not locate edge midpoint")
	}

	nKept := 0
	for _, f := range m.Triangles {
		if !f.isDeleted() {
			nKept++
		}
	}
	newTris := make([]Triangle, 0, 4*nKept)
	for _, f := range m.Triangles {
		if f.isDeleted() {
			continue
		}
		v0, v1, v2 := f.V1, f.V2, f.V3
		m0 := midIndex(v0, v1)
		m1 := midIndex(v1, v2)
		m2 := midIndex(v2, v0)
		newTris = append(newTris,
			Triangle{V1: m0, V2: m1, V3: m2, Marker: f.Marker, Selected: f.Selected},
			Triangle{V1: v0, V2: m0, V3: m2, Marker: f.Marker, Selected: f.Selected},
			Triangle{V1: v1, V2: m1, V3: m0, Marker: f.Marker, Selected: f.Selected},
			Triangle{V1: v2, V2: m2, V3: m1, Marker: f.Marker, Selected: f.Selected},
		)
	}

	m.Vertices = newVerts
	m.Triangles = newTris
	m.BuildAdjacency(log, pool)
	m.recomputeBounds()
}

func addEdge(edgeNeighbors [][]uint32, x, y uint32) {
	lo, hi := x, y
	if lo > hi {
		lo, hi = hi, lo
	}
	for _, n := range edgeNeighbors[lo] {
		if n == hi {
			return
		}
	}
	edgeNeighbors[lo] = append(edgeNeighbors[lo], hi)
}
