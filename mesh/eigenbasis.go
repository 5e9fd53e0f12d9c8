package mesh

import (
	"math"

	"meshopt/eigen"
)

// defaultBFSRadius is the neighborhood radius used to assemble a
// vertex's structure tensor when callers don't override it.
const defaultBFSRadius = 2

// structureTensor assembles the structure tensor at v from the normals
// of v and its ring-neighbors out to radius hops, via a growable BFS
// (no fixed visited-vertex cap). It also returns the smallest |n_i .
// n_v| seen — a raw dot product in [0,1], not an angle — used as the
// curvature indicator the decimation pass gates on. This is ~1 on
// flat neighborhoods and shrinks toward 0 as curvature increases.
func (m *Mesh) structureTensor(v uint32, radius int) (eigen.Tensor, float64) {
	if radius <= 0 {
		radius = defaultBFSRadius
	}
	nv := m.VertexNormal(v)

	type frontier struct {
		vtx  uint32
		dist int
	}
	visited := map[uint32]bool{v: true}
	queue := []frontier{{v, 0}}

	var tensor eigen.Tensor
	minAbsDot := math.Inf(1)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		n := m.VertexNormal(cur.vtx)
		tensor.Add(n)
		if cur.vtx != v {
			d := math.Abs(float64(n.Dot(nv)))
			if d < minAbsDot {
				minAbsDot = d
			}
		}
		if cur.dist >= radius {
			continue
		}
		for _, r := range m.adj.Ring(cur.vtx) {
			if !visited[r.A] {
				visited[r.A] = true
				queue = append(queue, frontier{r.A, cur.dist + 1})
			}
		}
	}

	if math.IsInf(minAbsDot, 1) {
		return tensor, 0
	}
	minAbsDot = clampUnit(minAbsDot)
	return tensor, minAbsDot
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// Eigenbasis returns the structure-tensor eigendecomposition at v
// together with the curvature proxy (smallest |n_i . n_v| over v's
// neighborhood).
func (m *Mesh) Eigenbasis(v uint32, radius int) (eigen.Basis, float64) {
	tensor, minAbsDot := m.structureTensor(v, radius)
	return eigen.Decompose(tensor), minAbsDot
}
