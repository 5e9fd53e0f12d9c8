package mesh

import (
	"math"

	"go.uber.org/zap"

	"meshopt/geom"
	"meshopt/internal/workpool"
)

// AngleStats scans every live face and returns the smallest and
// largest interior angle seen, in degrees, ignoring degenerate-edge
// sentinels. Returns (0,0) for a mesh with no measurable angle.
func (m *Mesh) AngleStats() (minAngle, maxAngle float64) {
	minAngle, maxAngle = math.Inf(1), math.Inf(-1)
	for _, f := range m.Triangles {
		if f.isDeleted() {
			continue
		}
		p0 := m.Vertices[f.V1].Position
		p1 := m.Vertices[f.V2].Position
		p2 := m.Vertices[f.V3].Position
		for _, a := range [3]float64{
			geom.Angle(p0, p1, p2),
			geom.Angle(p1, p2, p0),
			geom.Angle(p2, p0, p1),
		} {
			if a == geom.DegenerateAngle {
				continue
			}
			if a < minAngle {
				minAngle = a
			}
			if a > maxAngle {
				maxAngle = a
			}
		}
	}
	if math.IsInf(minAngle, 1) {
		minAngle = 0
	}
	if math.IsInf(maxAngle, -1) {
		maxAngle = 0
	}
	return minAngle, maxAngle
}

// Smooth runs relocation followed by edge flipping over every selected
// vertex, in increasing index order, for up to maxIterations passes,
// stopping early once both angle goals are met. Returns whether the
// goal was reached.
func (m *Mesh) Smooth(minAngleTarget, maxAngleTarget float64, maxIterations int, preserveRidges bool, radius int, verbose bool, log *zap.Logger) bool {
	log = nonNilLogger(log)
	for iter := 0; iter < maxIterations; iter++ {
		for v := range m.Vertices {
			if !m.Vertices[v].Selected {
				continue
			}
			m.Relocate(uint32(v), radius)
			m.FlipEdges(uint32(v), preserveRidges, log)
		}
		minA, maxA := m.AngleStats()
		if verbose {
			log.Info("smooth iteration",
				zap.Int("iter", iter), zap.Float64("minAngle", minA), zap.Float64("maxAngle", maxA))
		}
		if minA > minAngleTarget && maxA < maxAngleTarget {
			return true
		}
	}
	return false
}

// Coarse runs one decimation pass.
func (m *Mesh) Coarse(coarsenessRate, flatnessRate, densenessWeight, maxNormalAngle float64, radius int, verbose bool, log *zap.Logger, pool *workpool.Pool) OpStatus {
	log = nonNilLogger(log)
	status := m.CoarsenPass(coarsenessRate, flatnessRate, densenessWeight, maxNormalAngle, radius, pool, log)
	if verbose {
		log.Info("coarse pass complete",
			zap.Int("vertices", len(m.Vertices)), zap.Int("triangles", len(m.Triangles)))
	}
	return status
}

// CoarseDense is the "dense" coarsening preset: favors removing
// vertices in densely-sampled flat regions (flatnessRate=0,
// densenessWeight=10), run for a fixed iteration count.
func (m *Mesh) CoarseDense(rate float64, iterations, radius int, verbose bool, log *zap.Logger, pool *workpool.Pool) OpStatus {
	status := StatusOK
	for i := 0; i < iterations; i++ {
		status = m.Coarse(rate, 0, 10, -1, radius, verbose, log, pool)
	}
	return status
}

// CoarseFlat is the "flat" coarsening preset: favors removing vertices
// on flat surface regions regardless of sampling density
// (flatnessRate=1, densenessWeight=0).
func (m *Mesh) CoarseFlat(rate float64, iterations, radius int, verbose bool, log *zap.Logger, pool *workpool.Pool) OpStatus {
	status := StatusOK
	for i := 0; i < iterations; i++ {
		status = m.Coarse(rate, 1, 0, -1, radius, verbose, log, pool)
	}
	return status
}

// OptimizeUsingDefaultParameters runs the default optimization
// recipe: a flat-coarsening pass followed by angle-goal smoothing.
func (m *Mesh) OptimizeUsingDefaultParameters(log *zap.Logger, pool *workpool.Pool) bool {
	log = nonNilLogger(log)
	m.CoarseFlat(0.05, 5, defaultBFSRadius, true, log, pool)
	return m.Smooth(15, 150, 15, false, defaultBFSRadius, true, log)
}
