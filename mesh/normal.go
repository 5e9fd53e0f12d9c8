package mesh

import (
	"meshopt/common"
	"meshopt/geom"
)

// VertexNormal returns the sign-consistent average of per-corner
// normals over v's ring: for each record (a,b,c), g = hat(v,a) x
// hat(v,b) normalized, flipped if it disagrees in sign with the
// running average. Returns the zero vector for an empty ring.
func (m *Mesh) VertexNormal(v uint32) common.Vec3 {
	ring := m.adj.Ring(v)
	if len(ring) == 0 {
		return common.Vec3{}
	}
	p := m.Vertices[v].Position
	var sum common.Vec3
	for _, r := range ring {
		a := m.Vertices[r.A].Position
		b := m.Vertices[r.B].Position
		g := geom.Hat(p, a).Cross(geom.Hat(p, b))
		if l := g.Len(); l > 0 {
			g = g.Mul(1 / l)
		}
		if g.Dot(sum) < 0 {
			g = g.Mul(-1)
		}
		sum = sum.Add(g)
	}
	sum = sum.Mul(1 / float32(len(ring)))
	if l := sum.Len(); l > 0 {
		sum = sum.Mul(1 / l)
	}
	return sum
}
