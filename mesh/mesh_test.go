package mesh

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meshopt/common"
	"meshopt/internal/workpool"
)

func tetrahedron() (verts []Vertex, tris []Triangle) {
	verts = []Vertex{
		{Position: common.Vec3{0, 0, 0}, Selected: true},
		{Position: common.Vec3{1, 0, 0}, Selected: true},
		{Position: common.Vec3{0, 1, 0}, Selected: true},
		{Position: common.Vec3{0, 0, 1}, Selected: true},
	}
	tris = []Triangle{
		{V1: 0, V2: 2, V3: 1, Selected: true},
		{V1: 0, V2: 1, V3: 3, Selected: true},
		{V1: 0, V2: 3, V3: 2, Selected: true},
		{V1: 1, V2: 2, V3: 3, Selected: true},
	}
	return verts, tris
}

func TestBuildAdjacencyTetrahedronEveryRingHasLengthThree(t *testing.T) {
	verts, tris := tetrahedron()
	m, err := NewMeshFromArrays(nil, verts, tris)
	require.NoError(t, err)
	m.BuildAdjacency(nil, workpool.New(1))

	for v := range m.Vertices {
		assert.Equal(t, 3, m.Adjacency().Degree(uint32(v)), "vertex %d", v)
		assert.True(t, m.Vertices[v].Selected)
	}
}

func TestBuildAdjacencyFaceCountInvariant(t *testing.T) {
	verts, tris := tetrahedron()
	m, err := NewMeshFromArrays(nil, verts, tris)
	require.NoError(t, err)
	m.BuildAdjacency(nil, workpool.New(1))

	total := 0
	for v := range m.Vertices {
		total += m.Adjacency().Degree(uint32(v))
	}
	assert.Equal(t, 3*len(tris), total)
}

func TestSmoothOneIterationPreservesCounts(t *testing.T) {
	verts, tris := tetrahedron()
	m, err := NewMeshFromArrays(nil, verts, tris)
	require.NoError(t, err)
	m.BuildAdjacency(nil, workpool.New(1))

	nv, nf := len(m.Vertices), len(m.Triangles)
	m.Smooth(0, 180, 1, false, 2, false, nil)
	assert.Equal(t, nv, len(m.Vertices))
	assert.Equal(t, nf, len(m.Triangles))
}

func TestDegenerateFaceIsLoggedAndToleratedAtConstruction(t *testing.T) {
	verts, tris := tetrahedron()
	tris = append(tris, Triangle{V1: 0, V2: 0, V3: 1, Selected: true})
	m, err := NewMeshFromArrays(nil, verts, tris)
	require.NoError(t, err)
	assert.Len(t, m.Triangles, 5)
}

func TestNewMeshFromArraysRejectsOutOfRangeIndex(t *testing.T) {
	verts, _ := tetrahedron()
	_, err := NewMeshFromArrays(nil, verts, []Triangle{{V1: 0, V2: 1, V3: 99}})
	assert.Error(t, err)
}

func TestBoundsTranslateRoundTrips(t *testing.T) {
	verts, tris := tetrahedron()
	m, err := NewMeshFromArrays(nil, verts, tris)
	require.NoError(t, err)

	minBefore, maxBefore, ok := m.Bounds()
	require.True(t, ok)

	delta := common.Vec3{3, -2, 1}
	m.Translate(delta)
	m.Translate(delta.Mul(-1))

	minAfter, maxAfter, ok := m.Bounds()
	require.True(t, ok)
	assert.True(t, common.VecEqual(minBefore, minAfter, 1e-4))
	assert.True(t, common.VecEqual(maxBefore, maxAfter, 1e-4))
}

func TestScaleUniformAndInverseIsIdentity(t *testing.T) {
	verts, tris := tetrahedron()
	m, err := NewMeshFromArrays(nil, verts, tris)
	require.NoError(t, err)

	before := append([]Vertex(nil), m.Vertices...)
	m.ScaleUniform(2)
	m.ScaleUniform(0.5)
	for i, v := range m.Vertices {
		assert.True(t, common.VecEqual(v.Position, before[i].Position, 1e-4))
	}
}

func unitCubeTris() (verts []Vertex, tris []Triangle) {
	corners := [8]common.Vec3{
		{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
		{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
	}
	for _, c := range corners {
		verts = append(verts, Vertex{Position: c, Selected: true})
	}
	quad := func(a, b, c, d uint32) {
		tris = append(tris,
			Triangle{V1: a, V2: b, V3: c, Selected: true},
			Triangle{V1: a, V2: c, V3: d, Selected: true},
		)
	}
	quad(0, 1, 2, 3)
	quad(4, 7, 6, 5)
	quad(0, 4, 5, 1)
	quad(1, 5, 6, 2)
	quad(2, 6, 7, 3)
	quad(3, 7, 4, 0)
	return verts, tris
}

func TestRefineUnitCubeVertexAndFaceCounts(t *testing.T) {
	verts, tris := unitCubeTris()
	m, err := NewMeshFromArrays(nil, verts, tris)
	require.NoError(t, err)
	m.BuildAdjacency(nil, workpool.New(1))
	require.Len(t, m.Triangles, 12)

	m.Refine(nil, workpool.New(1))

	assert.Equal(t, 8+18, len(m.Vertices))
	assert.Equal(t, 48, len(m.Triangles))
}

func hexagonalFan() (verts []Vertex, tris []Triangle) {
	verts = append(verts, Vertex{Position: common.Vec3{0, 0, 0}, Selected: true})
	for i := 0; i < 6; i++ {
		angle := float32(i) * 3.14159265 / 3
		verts = append(verts, Vertex{Position: common.Vec3{cos32(angle), sin32(angle), 0}, Selected: true})
	}
	for i := 0; i < 6; i++ {
		a := uint32(1 + i)
		b := uint32(1 + (i+1)%6)
		tris = append(tris, Triangle{V1: 0, V2: a, V3: b, Selected: true})
	}
	return verts, tris
}

func cos32(x float32) float32 {
	return float32(math.Cos(float64(x)))
}

func sin32(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

func TestDecimateHexagonalFanRemovesCenterIntoFourTriangles(t *testing.T) {
	verts, tris := hexagonalFan()
	m, err := NewMeshFromArrays(nil, verts, tris)
	require.NoError(t, err)
	m.BuildAdjacency(nil, workpool.New(1))
	require.Equal(t, 6, m.Adjacency().Degree(0))

	ring := m.Adjacency().Ring(0)
	m.removeVertex(0, ring, 2, nil)

	live := 0
	for _, f := range m.Triangles {
		if !f.isDeleted() {
			live++
		}
	}
	assert.Equal(t, 4, live)
	assert.True(t, m.Vertices[0].isSentinel())
}

func octahedron() (verts []Vertex, tris []Triangle) {
	verts = []Vertex{
		{Position: common.Vec3{1, 0, 0}, Selected: true},  // 0 = +x
		{Position: common.Vec3{-1, 0, 0}, Selected: true}, // 1 = -x
		{Position: common.Vec3{0, 1, 0}, Selected: true},  // 2 = +y
		{Position: common.Vec3{0, -1, 0}, Selected: true}, // 3 = -y
		{Position: common.Vec3{0, 0, 1}, Selected: true},  // 4 = +z apex
		{Position: common.Vec3{0, 0, -1}, Selected: true}, // 5 = -z apex
	}
	tris = []Triangle{
		{V1: 4, V2: 0, V3: 2, Selected: true},
		{V1: 4, V2: 2, V3: 1, Selected: true},
		{V1: 4, V2: 1, V3: 3, Selected: true},
		{V1: 4, V2: 3, V3: 0, Selected: true},
		{V1: 5, V2: 2, V3: 0, Selected: true},
		{V1: 5, V2: 1, V3: 2, Selected: true},
		{V1: 5, V2: 3, V3: 1, Selected: true},
		{V1: 5, V2: 0, V3: 3, Selected: true},
	}
	return verts, tris
}

// bipyramid returns a triangular bipyramid (two tetrahedra glued on a
// shared equilateral base) with apex height h on either side of the
// base plane. Vertex order is B0,B1,B2 (base), T (top apex), Bo
// (bottom apex); flattening h pulls the top/bottom faces toward the
// base plane, sharpening the dihedral along each base edge.
func bipyramid(h float32) (verts []Vertex, tris []Triangle) {
	verts = []Vertex{
		{Position: common.Vec3{1, 0, 0}, Selected: true},
		{Position: common.Vec3{-0.5, 0.8660254, 0}, Selected: true},
		{Position: common.Vec3{-0.5, -0.8660254, 0}, Selected: true},
		{Position: common.Vec3{0, 0, h}, Selected: true},
		{Position: common.Vec3{0, 0, -h}, Selected: true},
	}
	tris = []Triangle{
		{V1: 3, V2: 0, V3: 1, Selected: true},
		{V1: 3, V2: 1, V3: 2, Selected: true},
		{V1: 3, V2: 2, V3: 0, Selected: true},
		{V1: 4, V2: 1, V3: 0, Selected: true},
		{V1: 4, V2: 2, V3: 1, Selected: true},
		{V1: 4, V2: 0, V3: 2, Selected: true},
	}
	return verts, tris
}

// A short bipyramid (h well below the base circumradius) puts a sharp
// crease along every base edge: the top and bottom faces fold away
// from each other rather than lying nearly flat. Flipping a base edge
// to the top-apex/bottom-apex diagonal also strictly improves the
// worst-case angle at h=0.3, so the two guards disagree and this
// exercises both independently.
func TestTryFlipRidgeGuardBlocksFavorableFlipOnSharpCrease(t *testing.T) {
	verts, tris := bipyramid(0.3)
	m, err := NewMeshFromArrays(nil, verts, tris)
	require.NoError(t, err)
	m.BuildAdjacency(nil, workpool.New(1))

	require.False(t, m.ringHasNeighbor(3, 4), "apexes must not already share an edge")

	flipped := m.tryFlip(0, 3, 2, 4, 2, 5, true, nil)
	assert.False(t, flipped, "ridge guard must refuse a flip across a sharp crease")
	assert.False(t, m.ringHasNeighbor(3, 4))
}

func TestTryFlipFlipsFavorableEdgeWhenRidgesNotPreserved(t *testing.T) {
	verts, tris := bipyramid(0.3)
	m, err := NewMeshFromArrays(nil, verts, tris)
	require.NoError(t, err)
	m.BuildAdjacency(nil, workpool.New(1))

	flipped := m.tryFlip(0, 3, 2, 4, 2, 5, false, nil)
	assert.True(t, flipped, "unguarded flip should proceed once the diagonal strictly improves the worst angle")
	assert.True(t, m.ringHasNeighbor(3, 4), "flipped diagonal should connect the two apexes")
}

func TestDecimateVertexCurvatureGateRemovesFlatVertexAboveThreshold(t *testing.T) {
	verts, tris := hexagonalFan()
	m, err := NewMeshFromArrays(nil, verts, tris)
	require.NoError(t, err)
	m.BuildAdjacency(nil, workpool.New(1))

	removed, aborted := m.decimateVertex(0, 2.0, 0, 0, 0.5, 2, nil)
	assert.True(t, removed)
	assert.False(t, aborted)
}

func TestDecimateVertexCurvatureGateBlocksBelowThreshold(t *testing.T) {
	verts, tris := hexagonalFan()
	m, err := NewMeshFromArrays(nil, verts, tris)
	require.NoError(t, err)
	m.BuildAdjacency(nil, workpool.New(1))

	removed, _ := m.decimateVertex(0, 2.0, 0, 0, 1.0, 2, nil)
	assert.False(t, removed, "flat-region proxy of ~1 must not clear a threshold of 1.0")
}

func TestSmoothNormalsPassPreservesCountsAndFiniteness(t *testing.T) {
	verts, tris := octahedron()
	m, err := NewMeshFromArrays(nil, verts, tris)
	require.NoError(t, err)
	m.BuildAdjacency(nil, workpool.New(1))

	nv, nf := len(m.Vertices), len(m.Triangles)
	m.SmoothNormalsPass(0, 180, false, nil)
	assert.Equal(t, nv, len(m.Vertices))
	assert.Equal(t, nf, len(m.Triangles))
	for _, v := range m.Vertices {
		for _, c := range v.Position {
			assert.False(t, math.IsNaN(float64(c)))
			assert.False(t, math.IsInf(float64(c), 0))
		}
	}
}

func TestFlipEdgesPreservesTopologicalInvariants(t *testing.T) {
	verts, tris := octahedron()
	m, err := NewMeshFromArrays(nil, verts, tris)
	require.NoError(t, err)
	m.BuildAdjacency(nil, workpool.New(1))

	for v := range m.Vertices {
		assert.True(t, m.Vertices[v].Selected, "vertex %d ring should have closed", v)
	}

	for v := range m.Vertices {
		m.FlipEdges(uint32(v), false, nil)
	}

	live := 0
	for _, f := range m.Triangles {
		if !f.isDeleted() {
			live++
		}
	}
	assert.Equal(t, 8, live)

	total := 0
	for v := range m.Vertices {
		total += m.Adjacency().Degree(uint32(v))
	}
	assert.Equal(t, 3*live, total)
}
