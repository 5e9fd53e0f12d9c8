// Package mesh implements the mesh-optimization core: a half-edge-like
// one-ring adjacency model over a vertex/triangle table, vertex
// relocation, edge flipping, decimation with polygon retriangulation,
// and 1-to-4 refinement.
package mesh

import "meshopt/common"

// sentinelCoord marks a vertex position as tentatively deleted,
// pending compaction.
const sentinelCoord = -99999

var sentinelPosition = common.Vec3{sentinelCoord, sentinelCoord, sentinelCoord}

// deletedFaceMarker flags a triangle slot for compaction.
const deletedFaceMarker = -1

// Vertex is a point in R^3 plus the transient/user-visible state the
// optimizer needs: Marker carries domain metadata; BuildAdjacency sets
// it to -1 (unconnected) for every vertex and back to 0 (connected and
// unclassified) for each vertex that belongs to a face. Decimation
// marks a removed vertex with a sentinel position, not through Marker.
// Selected gates whether the optimizer may move or retriangulate
// around this vertex.
type Vertex struct {
	Position common.Vec3
	Marker   int32
	Selected bool
}

func (v Vertex) isSentinel() bool {
	return v.Position == sentinelPosition
}

// Triangle is a counter-clockwise (viewed along the outward normal)
// triple of vertex indices, plus the same Marker/Selected metadata as
// Vertex. Marker == -1 flags the face for compaction.
type Triangle struct {
	V1, V2, V3 uint32
	Marker     int32
	Selected   bool
}

func (t Triangle) isDeleted() bool {
	return t.Marker == deletedFaceMarker
}

func (t Triangle) has(v uint32) bool {
	return t.V1 == v || t.V2 == v || t.V3 == v
}

// corners returns the triangle's three vertex indices in CCW order
// starting from v, i.e. (v, next, prevOfNext). Panics if v is not a
// corner of t; callers only call this after checking has(v).
func (t Triangle) corners(v uint32) (a, b, c uint32) {
	switch v {
	case t.V1:
		return t.V1, t.V2, t.V3
	case t.V2:
		return t.V2, t.V3, t.V1
	case t.V3:
		return t.V3, t.V1, t.V2
	}
	panic("mesh: corners called with non-member vertex")
}

// RingRecord is a one-ring neighbor datum at some vertex v: "v, A, B
// is CCW and is face Face". Consecutive records (A,B,Face) and
// (A',B',Face') in an ordered ring satisfy A' == B.
type RingRecord struct {
	A, B uint32
	Face uint32
}

// Adjacency is the per-vertex ordered one-ring.
type Adjacency struct {
	rings [][]RingRecord
}

// Ring returns vertex v's ordered ring. The returned slice must not be
// mutated by callers outside this package.
func (a *Adjacency) Ring(v uint32) []RingRecord {
	if a == nil || int(v) >= len(a.rings) {
		return nil
	}
	return a.rings[v]
}

// Degree returns the ring length (face count) at vertex v.
func (a *Adjacency) Degree(v uint32) int {
	return len(a.Ring(v))
}

// OpStatus is the public-boundary result of a driver-level operation,
// in place of exceptions, per the core's no-exceptions contract.
type OpStatus byte

const (
	// StatusOK means the operation's goal was fully met.
	StatusOK OpStatus = iota
	// StatusPartial means the goal was not fully met but the mesh is
	// left consistent: CoarsenPass returns it when a reported per-vertex
	// failure (a zero top eigenvalue) skipped at least one vertex.
	StatusPartial
	// StatusAborted means the operation stopped early on a reported,
	// unrecoverable-for-this-pass condition. No operation in this
	// package returns it.
	StatusAborted
)

// Mesh owns the vertex/triangle tables, an optional adjacency, and
// passive domain metadata carried but not interpreted by the core.
type Mesh struct {
	Vertices  []Vertex
	Triangles []Triangle
	adj       *Adjacency

	bboxMin, bboxMax common.Vec3
	haveBBox         bool

	Closed              bool
	Marker              int32
	VolumeConstraint    float64
	UseVolumeConstraint bool
	AsHole              bool
}

// Adjacency returns the mesh's current adjacency, or nil if
// BuildAdjacency has not been called since the last structural edit.
func (m *Mesh) Adjacency() *Adjacency {
	return m.adj
}
