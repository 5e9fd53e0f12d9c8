package mesh

import (
	"go.uber.org/zap"

	"meshopt/geom"
)

// ridgeCosLimit is cos(30deg): the dihedral guard for ridge
// preservation refuses a flip unless the present configuration's two
// face normals are at least this aligned.
const ridgeCosLimit = 0.8660254

// FlipEdges walks v's ring, attempting a 2->2 edge flip against each
// outgoing edge when the flipped diagonal strictly improves the
// worst-case angle, subject to the optional ridge-preservation guard.
// Successor pointers are re-read after every structural change, since
// a committed flip shortens v's ring.
func (m *Mesh) FlipEdges(v uint32, preserveRidges bool, log *zap.Logger) {
	log = nonNilLogger(log)
	vert := &m.Vertices[v]
	if !vert.Selected {
		return
	}
	if m.adj.Degree(v) == 0 {
		return
	}
	if m.adj.Degree(v) <= 3 {
		m.collapseToCentroid(v)
		return
	}

	i := 0
	for i < m.adj.Degree(v) {
		ring := m.adj.Ring(v)
		n := len(ring)
		if n <= 3 {
			m.collapseToCentroid(v)
			return
		}
		prevIdx := (i - 1 + n) % n
		prev := ring[prevIdx]
		cur := ring[i]
		a, b, c := prev.A, cur.A, cur.B

		if m.tryFlip(v, a, b, c, prev.Face, cur.Face, preserveRidges, log) {
			continue // ring shrank; re-evaluate at the same index
		}
		i++
	}
}

// collapseToCentroid implements the degree<=3 degenerate guard: replace
// v with the centroid of its ring neighbors.
func (m *Mesh) collapseToCentroid(v uint32) {
	ring := m.adj.Ring(v)
	if len(ring) == 0 {
		return
	}
	var sum [3]float32
	for _, r := range ring {
		p := m.Vertices[r.A].Position
		sum[0] += p[0]
		sum[1] += p[1]
		sum[2] += p[2]
	}
	n := float32(len(ring))
	m.Vertices[v].Position = [3]float32{sum[0] / n, sum[1] / n, sum[2] / n}
}

// tryFlip evaluates and, if warranted, commits the flip of the shared
// edge (v,b) between faces (v,a,b)=face1 and (v,b,c)=face2 into the
// diagonal (a,c). Returns whether it committed.
func (m *Mesh) tryFlip(v, a, b, c, face1, face2 uint32, preserveRidges bool, log *zap.Logger) bool {
	if m.adj.Degree(b) <= 3 {
		return false
	}
	if m.ringHasNeighbor(a, c) {
		return false // would create a duplicate edge
	}

	pv := m.Vertices[v].Position
	pa := m.Vertices[a].Position
	pb := m.Vertices[b].Position
	pc := m.Vertices[c].Position

	// badCos is the worst of the four interior-angle cosines at the
	// shared edge's own endpoints, one pair of corners per triangle on
	// each side of the comparison: {v,b} for the present diagonal,
	// {a,c} for the flipped one.
	badPresent := max4F32(
		geom.CosAngle(pv, pa, pb), geom.CosAngle(pb, pv, pa),
		geom.CosAngle(pv, pb, pc), geom.CosAngle(pb, pv, pc),
	)
	badFlipped := max4F32(
		geom.CosAngle(pa, pv, pc), geom.CosAngle(pc, pv, pa),
		geom.CosAngle(pa, pc, pb), geom.CosAngle(pc, pb, pa),
	)
	if !(badFlipped < badPresent) {
		return false
	}

	if preserveRidges {
		n1 := geom.CrossNormal(pv, pa, pb)
		n2 := geom.CrossNormal(pv, pb, pc)
		if n1.Dot(n2) <= ridgeCosLimit {
			return false
		}
	}

	return m.commitFlip(v, a, b, c, face1, face2, log)
}

func maxF32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func max4F32(a, b, c, d float32) float32 {
	return maxF32(maxF32(a, b), maxF32(c, d))
}

// ringHasNeighbor reports whether target appears as a ring neighbor of
// v (i.e. v and target share an edge).
func (m *Mesh) ringHasNeighbor(v, target uint32) bool {
	for _, r := range m.adj.Ring(v) {
		if r.A == target {
			return true
		}
	}
	return false
}

// commitFlip rewrites faces face1,face2 to (v,a,c) and (b,c,a) and
// splices the four affected rings. Reports and aborts (leaving the
// mesh untouched) if an expected ring record is missing, per the
// core's "ring search failure" error handling.
func (m *Mesh) commitFlip(v, a, b, c, face1, face2 uint32, log *zap.Logger) bool {
	vRing := m.adj.Ring(v)
	vIdxCur := ringIndexByFace(vRing, face2)
	vIdxPrev := ringIndexByFace(vRing, face1)
	if vIdxCur < 0 || vIdxPrev < 0 {
		log.Warn("flip aborted: ring record missing at v", zap.Uint32("v", v))
		return false
	}

	bRing := m.adj.Ring(b)
	bIdxFace2 := ringIndexByFace(bRing, face2)
	bIdxFace1 := ringIndexByFace(bRing, face1)
	if bIdxFace2 < 0 || bIdxFace1 < 0 {
		log.Warn("flip aborted: ring record missing at b", zap.Uint32("b", b))
		return false
	}

	aRing := m.adj.Ring(a)
	aIdxFace1 := ringIndexByFace(aRing, face1)
	if aIdxFace1 < 0 {
		log.Warn("flip aborted: ring record missing at a", zap.Uint32("a", a))
		return false
	}

	cRing := m.adj.Ring(c)
	cIdxFace2 := ringIndexByFace(cRing, face2)
	if cIdxFace2 < 0 {
		log.Warn("flip aborted: ring record missing at c", zap.Uint32("c", c))
		return false
	}

	m.Triangles[face1] = ccwTriangle(v, a, c, m.Triangles[face1])
	m.Triangles[face2] = ccwTriangle(b, c, a, m.Triangles[face2])

	m.adj.rings[v] = spliceCollapse(vRing, vIdxPrev, vIdxCur, RingRecord{A: a, B: c, Face: face1})
	m.adj.rings[b] = spliceCollapse(bRing, bIdxFace2, bIdxFace1, RingRecord{A: c, B: a, Face: face2})

	aRing[aIdxFace1] = RingRecord{A: c, B: v, Face: face1}
	m.adj.rings[a] = insertBefore(aRing, aIdxFace1, RingRecord{A: b, B: c, Face: face2})

	cRing[cIdxFace2] = RingRecord{A: v, B: a, Face: face1}
	m.adj.rings[c] = insertAfter(cRing, cIdxFace2, RingRecord{A: a, B: b, Face: face2})

	return true
}

func ccwTriangle(v1, v2, v3 uint32, template Triangle) Triangle {
	template.V1, template.V2, template.V3 = v1, v2, v3
	return template
}

func ringIndexByFace(ring []RingRecord, face uint32) int {
	for i, r := range ring {
		if r.Face == face {
			return i
		}
	}
	return -1
}

// spliceCollapse removes the two consecutive records at idx1,idx2
// (idx2 == idx1+1 mod len(ring)) and appends newRec in their place.
// The result is cyclically equivalent to replacing the pair in
// position, just rotated so newRec lands at the end.
func spliceCollapse(ring []RingRecord, idx1, idx2 int, newRec RingRecord) []RingRecord {
	n := len(ring)
	out := make([]RingRecord, 0, n-1)
	i := (idx2 + 1) % n
	for count := 0; count < n-2; count++ {
		out = append(out, ring[i])
		i = (i + 1) % n
	}
	out = append(out, newRec)
	return out
}

func insertAfter(ring []RingRecord, idx int, rec RingRecord) []RingRecord {
	out := make([]RingRecord, 0, len(ring)+1)
	out = append(out, ring[:idx+1]...)
	out = append(out, rec)
	out = append(out, ring[idx+1:]...)
	return out
}

func insertBefore(ring []RingRecord, idx int, rec RingRecord) []RingRecord {
	return insertAfter(ring, idx-1, rec)
}
