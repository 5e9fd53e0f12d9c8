package mesh

import (
	"meshopt/common"
	"meshopt/geom"
)

// Relocate applies one step of "moveVerticesAlongSurface" to vertex v:
// a weighted tangent-space average of surface-projected targets, then
// damped along the local eigen-basis with damping inversely
// proportional to (1+eigenvalue). Skips unselected vertices and
// vertices with an empty ring.
func (m *Mesh) Relocate(v uint32, radius int) {
	vert := &m.Vertices[v]
	if !vert.Selected {
		return
	}
	ring := m.adj.Ring(v)
	n := len(ring)
	if n == 0 {
		return
	}

	p := vert.Position
	var qSum common.Vec3
	var wSum float32

	for i := 0; i < n; i++ {
		rec := ring[i]
		next := ring[(i+1)%n]
		a := m.Vertices[rec.A].Position
		b := m.Vertices[rec.B].Position
		c := m.Vertices[next.B].Position

		q := geom.ProjectToTangent(a, b, c, p)
		w := 1 + geom.CosAngle(a, b, c)
		qSum = qSum.Add(q.Mul(w))
		wSum += w
	}
	if wSum == 0 {
		return
	}
	qStar := qSum.Mul(1 / wSum)

	basis, _ := m.Eigenbasis(v, radius)
	if basis.Degenerate {
		vert.Position = qStar
		return
	}

	delta := qStar.Sub(p)
	newP := p
	for i := 0; i < 3; i++ {
		e := basis.Vectors[i]
		damp := float32(1 / (1 + basis.Values[i]))
		comp := delta.Dot(e)
		newP = newP.Add(e.Mul(comp * damp))
	}
	vert.Position = newP
}
