package mesh

import (
	"go.uber.org/zap"

	"meshopt/internal/workpool"
)

// BuildAdjacency constructs the one-ring adjacency for every vertex,
// per spec: each face prepends a record to its three corners' rings,
// unconnected vertices are compacted away (rewriting face indices) and
// the pass rerun, then every ring is ordered into a cycle. Vertices
// whose ring cannot be closed are reported and defensively
// deselected; construction never aborts.
func (m *Mesh) BuildAdjacency(log *zap.Logger, pool *workpool.Pool) {
	log = nonNilLogger(log)
	if pool == nil {
		pool = workpool.New(0)
	}

	for {
		raw, connectedCount := m.collectRawRings()
		if connectedCount == len(m.Vertices) {
			m.adj = m.orderRings(raw, log)
			return
		}
		m.compactUnconnected(raw, pool, log)
	}
}

// collectRawRings runs step 1-2 of ring construction: mark every
// vertex Marker=-1, then for each face prepend the three corner
// records, setting Marker=0 the first time a vertex receives one.
func (m *Mesh) collectRawRings() (raw [][]RingRecord, connectedCount int) {
	raw = make([][]RingRecord, len(m.Vertices))
	for i := range m.Vertices {
		m.Vertices[i].Marker = -1
	}
	for k := range m.Triangles {
		f := m.Triangles[k]
		if f.isDeleted() {
			continue
		}
		fi := uint32(k)
		m.prependRecord(raw, f.V1, f.V2, f.V3, fi, &connectedCount)
		m.prependRecord(raw, f.V2, f.V3, f.V1, fi, &connectedCount)
		m.prependRecord(raw, f.V3, f.V1, f.V2, fi, &connectedCount)
	}
	return raw, connectedCount
}

func (m *Mesh) prependRecord(raw [][]RingRecord, self, a, b, face uint32, connectedCount *int) {
	if m.Vertices[self].Marker == -1 {
		m.Vertices[self].Marker = 0
		*connectedCount++
	}
	raw[self] = append([]RingRecord{{A: a, B: b, Face: face}}, raw[self]...)
}

// compactUnconnected drops vertices that received no ring record at
// all, rewriting face indices and translating surviving vertices down
// by a parallel-prefix-scan offset.
func (m *Mesh) compactUnconnected(raw [][]RingRecord, pool *workpool.Pool, log *zap.Logger) {
	remove := make([]bool, len(m.Vertices))
	for i := range m.Vertices {
		remove[i] = len(raw[i]) == 0
	}
	offsets := pool.PrefixSumBool(remove)

	newVerts := make([]Vertex, 0, len(m.Vertices))
	for i, v := range m.Vertices {
		if !remove[i] {
			newVerts = append(newVerts, v)
		} else {
			log.Warn("dropping unconnected vertex during adjacency build", zap.Int("vertex", i))
		}
	}

	remap := func(v uint32) uint32 { return v - uint32(offsets[v]) }
	for i := range m.Triangles {
		f := &m.Triangles[i]
		if f.isDeleted() {
			continue
		}
		f.V1, f.V2, f.V3 = remap(f.V1), remap(f.V2), remap(f.V3)
	}
	m.Vertices = newVerts
}

// orderRings performs step 4: order every raw ring into a CCW cycle.
// A ring that cannot be closed is reported and its vertex
// defensively deselected, but construction continues.
func (m *Mesh) orderRings(raw [][]RingRecord, log *zap.Logger) *Adjacency {
	adj := &Adjacency{rings: make([][]RingRecord, len(raw))}
	for v, recs := range raw {
		ordered, closed := orderRing(recs)
		adj.rings[v] = ordered
		if !closed {
			log.Warn("vertex ring could not be closed", zap.Int("vertex", v))
			m.Vertices[v].Selected = false
		}
	}
	return adj
}

// orderRing splices an unordered set of ring records into a cycle by
// repeatedly finding a successor whose A matches the current tail's B
// and whose B does not bounce back to the head's A (unless it is
// legitimately the closing record).
func orderRing(recs []RingRecord) (ordered []RingRecord, closed bool) {
	if len(recs) == 0 {
		return nil, true
	}
	remaining := append([]RingRecord(nil), recs...)
	ordered = make([]RingRecord, 0, len(remaining))
	ordered = append(ordered, remaining[0])
	remaining = remaining[1:]

	for len(remaining) > 0 {
		tail := ordered[len(ordered)-1]
		head := ordered[0]
		idx := -1
		for i, r := range remaining {
			if r.A == tail.B && r.B != head.A {
				idx = i
				break
			}
		}
		if idx == -1 {
			for i, r := range remaining {
				if r.A == tail.B {
					idx = i
					break
				}
			}
		}
		if idx == -1 {
			return ordered, false
		}
		ordered = append(ordered, remaining[idx])
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}

	closed = ordered[len(ordered)-1].B == ordered[0].A
	return ordered, closed
}
