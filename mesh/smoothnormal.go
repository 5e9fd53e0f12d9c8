package mesh

import (
	"math"

	"go.uber.org/zap"

	"meshopt/common"
	"meshopt/geom"
)

// SmoothNormalsPass runs one "smoothNormal" pass over every selected
// vertex. minAngleTarget/maxAngleTarget are accepted for parity with
// the angle-goal driver loop and are only echoed in the verbose log
// line, since the per-vertex tilt has no angle gate of its own.
func (m *Mesh) SmoothNormalsPass(minAngleTarget, maxAngleTarget float64, verbose bool, log *zap.Logger) {
	log = nonNilLogger(log)
	for v := range m.Vertices {
		m.smoothNormalVertex(uint32(v))
	}
	if verbose {
		log.Info("smoothNormals pass complete",
			zap.Float64("minAngleTarget", minAngleTarget),
			zap.Float64("maxAngleTarget", maxAngleTarget))
	}
}

// smoothNormalVertex nudges v's position to better align its local
// normal with the tilt direction implied by its neighborhood's face
// normals. Skipped if v is unselected or any ring neighbor is
// unselected. For each consecutive run of ring neighbors (a,b,c,d),
// the candidate position is v's offset from neighbor c rotated by a
// small angle about the axis derived from (b-c).
func (m *Mesh) smoothNormalVertex(v uint32) {
	vert := &m.Vertices[v]
	if !vert.Selected {
		return
	}
	ring := m.adj.Ring(v)
	n := len(ring)
	if n < 3 {
		return
	}
	for _, r := range ring {
		if !m.Vertices[r.A].Selected {
			return
		}
	}

	p := vert.Position
	var accum common.Vec3
	count := 0

	for i := 0; i < n; i++ {
		aRec := ring[(i-1+n)%n]
		bRec := ring[i]
		cRec := ring[(i+1)%n]
		a, b, c, d := aRec.A, bRec.A, bRec.B, cRec.B

		pa := m.Vertices[a].Position
		pb := m.Vertices[b].Position
		pc := m.Vertices[c].Position
		pd := m.Vertices[d].Position

		g := geom.CrossNormal(p, pb, pc)

		e, ok := m.oppositeAcrossEdge(b, c)
		if !ok {
			continue
		}
		pe := m.Vertices[e].Position

		candidates := [3]common.Vec3{
			geom.CrossNormal(p, pa, pb),
			geom.CrossNormal(p, pc, pd),
			geom.CrossNormal(pb, pe, pc),
		}

		var tilt common.Vec3
		aligned := 0
		for _, ni := range candidates {
			dp := ni.Dot(g)
			if dp > 0 {
				tilt = tilt.Add(ni.Mul(dp))
				aligned++
			}
		}
		if aligned == 0 {
			continue
		}
		tiltLen := tilt.Len()
		if tiltLen == 0 {
			continue
		}
		tiltHat := tilt.Mul(1 / tiltLen)

		f := g.Cross(tiltHat)
		wDir := pb.Sub(pc)
		if f.Dot(wDir) < 0 {
			wDir = wDir.Mul(-1)
		}
		theta, phi := sphericalAngles(wDir)

		cosAlpha := clampUnit(float64(tiltHat.Dot(g)))
		alpha := math.Acos(cosAlpha) / float64(4-aligned)

		pivot := pc
		rotated := geom.Rotate(p.Sub(pivot), float32(theta), float32(phi), float32(alpha))
		accum = accum.Add(pivot.Add(rotated))
		count++
	}

	if count == 0 {
		return
	}
	vert.Position = accum.Mul(1 / float32(count))
}

// oppositeAcrossEdge returns the third vertex of the face on the other
// side of edge (b,c) from the face (v,b,c) that the caller already
// knows about, found by the one-ring invariant that a directed edge's
// "B" side belongs to exactly one record per incident vertex.
func (m *Mesh) oppositeAcrossEdge(b, c uint32) (uint32, bool) {
	for _, r := range m.adj.Ring(b) {
		if r.B == c {
			return r.A, true
		}
	}
	return 0, false
}

func sphericalAngles(w common.Vec3) (theta, phi float64) {
	l := w.Len()
	if l == 0 {
		return 0, 0
	}
	w = w.Mul(1 / l)
	theta = math.Acos(clampUnit(float64(w[2])))
	phi = math.Atan2(float64(w[1]), float64(w[0]))
	return theta, phi
}
