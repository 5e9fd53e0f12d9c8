package mesh

import (
	"math"

	"go.uber.org/zap"

	"meshopt/common"
	"meshopt/internal/workpool"
)

// boundaryRecord is one vertex of the polygonal hole left by removing
// a vertex, carrying the algorithmic valence counter subdividePolygon
// uses to pick low-degree split points.
type boundaryRecord struct {
	Vertex uint32
	Degree int
}

// eligible implements the parallel decimation eligibility test: v must
// be selected, and every ring neighbor must retain degree > 3 and
// share at most 2 common neighbors with v after removal (the
// non-manifold-hole guard).
func (m *Mesh) eligible(v uint32) bool {
	if !m.Vertices[v].Selected {
		return false
	}
	ring := m.adj.Ring(v)
	if len(ring) == 0 {
		return false
	}
	vSet := m.neighborSet(v)
	for _, r := range ring {
		a := r.A
		if m.adj.Degree(a) <= 3 {
			return false
		}
		aSet := m.neighborSet(a)
		shared := 0
		for n := range vSet {
			if aSet[n] {
				shared++
			}
		}
		if shared > 2 {
			return false
		}
	}
	return true
}

func (m *Mesh) neighborSet(v uint32) map[uint32]bool {
	ring := m.adj.Ring(v)
	s := make(map[uint32]bool, len(ring))
	for _, r := range ring {
		s[r.A] = true
	}
	return s
}

// eligibilityPrePass computes eligible[v] for every vertex against the
// adjacency snapshot at pass start, in parallel.
func (m *Mesh) eligibilityPrePass(pool *workpool.Pool) []bool {
	n := len(m.Vertices)
	elig := make([]bool, n)
	pool.Range(n, func(i int) {
		elig[i] = m.eligible(uint32(i))
	})
	return elig
}

// CoarsenPass runs one decimation pass: an eligibility pre-pass,
// followed by sequential, index-ordered removal of every vertex that
// was eligible in the pre-pass snapshot, is still selected and not yet
// removed, and clears the quality-ratio gate. Eligibility is not
// re-evaluated after earlier removals in the same pass. Each removal
// observes the effects of earlier removals, and a zero-top-eigenvalue
// failure aborts only the vertex it occurs on.
func (m *Mesh) CoarsenPass(coarsenessRate, flatnessRate, densenessWeight, maxNormalAngle float64, radius int, pool *workpool.Pool, log *zap.Logger) OpStatus {
	log = nonNilLogger(log)
	if pool == nil {
		pool = workpool.New(0)
	}
	elig := m.eligibilityPrePass(pool)

	status := StatusOK
	for v := 0; v < len(m.Vertices); v++ {
		if !elig[v] || !m.Vertices[v].Selected || m.Vertices[v].isSentinel() {
			continue
		}
		removed, aborted := m.decimateVertex(uint32(v), coarsenessRate, flatnessRate, densenessWeight, maxNormalAngle, radius, log)
		if aborted {
			status = StatusPartial
		}
		_ = removed
	}

	m.CompactDeleted(log)
	return status
}

func (m *Mesh) decimateVertex(v uint32, coarsenessRate, flatnessRate, densenessWeight, maxNormalAngle float64, radius int, log *zap.Logger) (removed, abortedZeroEigen bool) {
	ring := m.adj.Ring(v)
	k := len(ring)
	if k < 3 {
		return false, false
	}

	basis, curvatureProxy := m.Eigenbasis(v, radius)
	lambda1 := basis.Values[0]
	lambda2 := basis.Values[1]

	ratio1 := 1.0
	if flatnessRate > 0 {
		if lambda1 == 0 {
			log.Warn("decimation aborted for vertex: zero top eigenvalue", zap.Uint32("vertex", v))
			return false, true
		}
		ratio1 = math.Pow(math.Abs(lambda2/lambda1), flatnessRate)
	}

	ratio2 := 1.0
	if densenessWeight > 0 {
		maxLen, avgLen := m.incidentEdgeStats(v, ring)
		if avgLen > 0 {
			ratio2 = math.Pow(float64(maxLen/avgLen), densenessWeight)
		}
	}

	if !(ratio1*ratio2 < coarsenessRate) {
		return false, false
	}
	if maxNormalAngle > 0 && !(curvatureProxy > maxNormalAngle) {
		return false, false
	}

	m.removeVertex(v, ring, radius, log)
	return true, false
}

func (m *Mesh) incidentEdgeStats(v uint32, ring []RingRecord) (maxLen, avgLen float32) {
	p := m.Vertices[v].Position
	var sum float32
	for _, r := range ring {
		d := m.Vertices[r.A].Position.Sub(p).Len()
		sum += d
		if d > maxLen {
			maxLen = d
		}
	}
	return maxLen, sum / float32(len(ring))
}

// removeVertex implements decimation's commit path: sentinel v,
// re-triangulate the hole via subdividePolygon, splice the raw ring
// records of every former neighbor, re-order those rings, and apply
// one relocation step to each surviving selected neighbor.
func (m *Mesh) removeVertex(v uint32, ring []RingRecord, radius int, log *zap.Logger) {
	log = nonNilLogger(log)
	k := len(ring)
	faceSlots := make([]uint32, k)
	boundary := make([]boundaryRecord, k)
	for i, r := range ring {
		faceSlots[i] = r.Face
		boundary[i] = boundaryRecord{Vertex: r.A, Degree: m.adj.Degree(r.A)}
	}
	marker := m.Triangles[faceSlots[k-1]].Marker

	raw := make(map[uint32][]RingRecord, k)
	for _, b := range boundary {
		raw[b.Vertex] = detachVertex(m.adj.Ring(b.Vertex), v)
	}

	emitted, unused := subdividePolygon(boundary, faceSlots)

	for _, tri := range emitted {
		m.Triangles[tri.face] = Triangle{V1: tri.a, V2: tri.b, V3: tri.c, Marker: marker, Selected: true}
		raw[tri.a] = append(raw[tri.a], RingRecord{A: tri.b, B: tri.c, Face: tri.face})
		raw[tri.b] = append(raw[tri.b], RingRecord{A: tri.c, B: tri.a, Face: tri.face})
		raw[tri.c] = append(raw[tri.c], RingRecord{A: tri.a, B: tri.b, Face: tri.face})
	}
	for _, slot := range unused {
		m.Triangles[slot].Marker = deletedFaceMarker
	}

	for _, b := range boundary {
		ordered, closed := orderRing(raw[b.Vertex])
		m.adj.rings[b.Vertex] = ordered
		if !closed {
			log.Warn("neighbor ring could not be reordered after decimation", zap.Uint32("vertex", b.Vertex))
			m.Vertices[b.Vertex].Selected = false
		}
	}

	m.Vertices[v].Position = sentinelPosition
	m.adj.rings[v] = nil

	for _, b := range boundary {
		if m.Vertices[b.Vertex].Selected {
			m.Relocate(b.Vertex, radius)
		}
	}
}

func detachVertex(ring []RingRecord, v uint32) []RingRecord {
	out := make([]RingRecord, 0, len(ring))
	for _, r := range ring {
		if r.A == v || r.B == v {
			continue
		}
		out = append(out, r)
	}
	return out
}

type emittedTri struct {
	a, b, c, face uint32
}

// subdividePolygon retriangulates a cyclic hole boundary by repeated
// minimum-valence chord splitting, via an explicit stack of sub-cycles
// rather than recursion. Returns the emitted triangles (consuming
// faceSlots front-to-back) and the slots left unused (exactly two,
// for a starting k-gon: k faces freed, k-2 triangles emitted).
func subdividePolygon(boundary []boundaryRecord, faceSlots []uint32) (emitted []emittedTri, unused []uint32) {
	slotIdx := 0
	nextSlot := func() uint32 {
		s := faceSlots[slotIdx]
		slotIdx++
		return s
	}

	var stack common.Stack[[]boundaryRecord]
	stack.Push(boundary)

	for !stack.Empty() {
		cyc := stack.Pop()
		k := len(cyc)
		if k < 3 {
			continue
		}
		if k == 3 {
			slot := nextSlot()
			emitted = append(emitted, emittedTri{cyc[0].Vertex, cyc[1].Vertex, cyc[2].Vertex, slot})
			continue
		}
		i1 := minDegreeIndex(cyc)
		i2 := minDegreeIndexExcludingAdjacent(cyc, i1)
		cyc[i1].Degree++
		cyc[i2].Degree++
		sub1, sub2 := splitCycle(cyc, i1, i2)
		stack.Push(sub1)
		stack.Push(sub2)
	}
	unused = faceSlots[slotIdx:]
	return emitted, unused
}

func minDegreeIndex(cyc []boundaryRecord) int {
	best := 0
	for i := 1; i < len(cyc); i++ {
		if cyc[i].Degree < cyc[best].Degree {
			best = i
		}
	}
	return best
}

func minDegreeIndexExcludingAdjacent(cyc []boundaryRecord, i1 int) int {
	k := len(cyc)
	prev := (i1 - 1 + k) % k
	next := (i1 + 1) % k
	best := -1
	for i := 0; i < k; i++ {
		if i == i1 || i == prev || i == next {
			continue
		}
		if best == -1 || cyc[i].Degree < cyc[best].Degree {
			best = i
		}
	}
	return best
}

func splitCycle(cyc []boundaryRecord, i1, i2 int) (sub1, sub2 []boundaryRecord) {
	lo, hi := i1, i2
	if lo > hi {
		lo, hi = hi, lo
	}
	sub1 = append([]boundaryRecord(nil), cyc[lo:hi+1]...)
	sub2 = append([]boundaryRecord(nil), cyc[hi:]...)
	sub2 = append(sub2, cyc[:lo+1]...)
	return sub1, sub2
}

// CompactDeleted drops sentinel vertices and deleted faces, rewriting
// every surviving index (vertex, face, and ring-record references to
// both) against a dense 0-based remap.
func (m *Mesh) CompactDeleted(log *zap.Logger) {
	log = nonNilLogger(log)

	vKeep := make([]bool, len(m.Vertices))
	vRemap := make([]uint32, len(m.Vertices))
	newVerts := make([]Vertex, 0, len(m.Vertices))
	for i, v := range m.Vertices {
		if v.isSentinel() {
			continue
		}
		vKeep[i] = true
		vRemap[i] = uint32(len(newVerts))
		newVerts = append(newVerts, v)
	}

	fKeep := make([]bool, len(m.Triangles))
	fRemap := make([]uint32, len(m.Triangles))
	newTris := make([]Triangle, 0, len(m.Triangles))
	for i, f := range m.Triangles {
		if f.isDeleted() {
			continue
		}
		fKeep[i] = true
		fRemap[i] = uint32(len(newTris))
		f.V1, f.V2, f.V3 = vRemap[f.V1], vRemap[f.V2], vRemap[f.V3]
		newTris = append(newTris, f)
	}

	var newAdj *Adjacency
	if m.adj != nil {
		newRings := make([][]RingRecord, len(newVerts))
		for i := range m.Vertices {
			if !vKeep[i] {
				continue
			}
			ring := m.adj.Ring(uint32(i))
			out := make([]RingRecord, 0, len(ring))
			for _, r := range ring {
				if int(r.A) >= len(vKeep) || int(r.B) >= len(vKeep) || int(r.Face) >= len(fKeep) ||
					!vKeep[r.A] || !vKeep[r.B] || !fKeep[r.Face] {
					log.Warn("dropping stale ring record during compaction", zap.Int("vertex", i))
					continue
				}
				out = append(out, RingRecord{A: vRemap[r.A], B: vRemap[r.B], Face: fRemap[r.Face]})
			}
			newRings[vRemap[i]] = out
		}
		newAdj = &Adjacency{rings: newRings}
	}

	m.Vertices = newVerts
	m.Triangles = newTris
	m.adj = newAdj
	m.recomputeBounds()
}
