package mesh

import "meshopt/common"

// recomputeBounds rescans every vertex to refresh the cached axis-
// aligned bounding box. Sentinel (tentatively deleted) vertices are
// excluded so a pending decimation pass doesn't distort the box.
func (m *Mesh) recomputeBounds() {
	if len(m.Vertices) == 0 {
		m.haveBBox = false
		return
	}
	first := true
	for _, v := range m.Vertices {
		if v.isSentinel() {
			continue
		}
		if first {
			m.bboxMin, m.bboxMax = v.Position, v.Position
			first = false
			continue
		}
		m.bboxMin = minVec(m.bboxMin, v.Position)
		m.bboxMax = maxVec(m.bboxMax, v.Position)
	}
	m.haveBBox = !first
}

func minVec(a, b common.Vec3) common.Vec3 {
	return common.Vec3{minF32(a[0], b[0]), minF32(a[1], b[1]), minF32(a[2], b[2])}
}

func maxVec(a, b common.Vec3) common.Vec3 {
	return common.Vec3{maxF32(a[0], b[0]), maxF32(a[1], b[1]), maxF32(a[2], b[2])}
}

func minF32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// Bounds returns the mesh's axis-aligned bounding box, and whether it
// is defined (false for an empty or fully-sentinel mesh).
func (m *Mesh) Bounds() (min, max common.Vec3, ok bool) {
	return m.bboxMin, m.bboxMax, m.haveBBox
}

// Translate shifts every non-sentinel vertex by delta and keeps the
// bounding box in sync.
func (m *Mesh) Translate(delta common.Vec3) {
	for i := range m.Vertices {
		if m.Vertices[i].isSentinel() {
			continue
		}
		m.Vertices[i].Position = m.Vertices[i].Position.Add(delta)
	}
	m.recomputeBounds()
}

// Scale multiplies every non-sentinel vertex's position componentwise
// by factor and keeps the bounding box in sync.
func (m *Mesh) Scale(factor common.Vec3) {
	for i := range m.Vertices {
		if m.Vertices[i].isSentinel() {
			continue
		}
		p := m.Vertices[i].Position
		m.Vertices[i].Position = common.Vec3{p[0] * factor[0], p[1] * factor[1], p[2] * factor[2]}
	}
	m.recomputeBounds()
}

// ScaleUniform scales every axis by the same factor.
func (m *Mesh) ScaleUniform(factor float32) {
	m.Scale(common.Vec3{factor, factor, factor})
}

// Stats summarizes the mesh's current bookkeeping state, for logging
// and diagnostics.
type Stats struct {
	VertexCount    int
	TriangleCount  int
	SelectedVerts  int
	DeletedFaces   int
	SentinelVerts  int
	HasAdjacency   bool
}

// Stats computes a snapshot of the mesh's bookkeeping counters.
func (m *Mesh) Stats() Stats {
	s := Stats{
		VertexCount:   len(m.Vertices),
		TriangleCount: len(m.Triangles),
		HasAdjacency:  m.adj != nil,
	}
	for _, v := range m.Vertices {
		if v.Selected {
			s.SelectedVerts++
		}
		if v.isSentinel() {
			s.SentinelVerts++
		}
	}
	for _, f := range m.Triangles {
		if f.isDeleted() {
			s.DeletedFaces++
		}
	}
	return s
}
