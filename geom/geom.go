// Package geom holds the pure, stateless geometric predicates the rest
// of the module builds on: unit edges, angle cosines, corner normals,
// interior angles, spherical-axis rotation, and tangent-plane
// projection. None of it touches mesh topology or vertex state.
package geom

import (
	"math"

	"meshopt/common"
)

// DegenerateAngle is returned by Angle when an incident edge has zero
// length; callers filter it out rather than propagating an error.
const DegenerateAngle = -999

// Hat returns the unit vector from a to b. A zero-length edge yields
// the zero vector rather than NaN.
func Hat(a, b common.Vec3) common.Vec3 {
	d := b.Sub(a)
	n := d.Len()
	if n == 0 {
		return common.Vec3{}
	}
	return d.Mul(1 / n)
}

// CosAngle returns the cosine of the angle at apex between the arms to
// b and c. Larger values mean a smaller angle; used both as a
// similarity measure and as a minimum-angle proxy.
func CosAngle(apex, b, c common.Vec3) float32 {
	return Hat(apex, b).Dot(Hat(apex, c))
}

// CrossNormal returns the normalized cross product hat(apex,c) x
// hat(apex,b). For a counter-clockwise winding (apex, b, c) this points
// opposite the outward normal (b-apex) x (c-apex).
func CrossNormal(apex, b, c common.Vec3) common.Vec3 {
	ab := Hat(apex, b)
	ac := Hat(apex, c)
	n := ac.Cross(ab)
	l := n.Len()
	if l == 0 {
		return common.Vec3{}
	}
	return n.Mul(1 / l)
}

// Angle returns the interior angle at a in the triangle (a,b,c), in
// degrees, computed from the law of cosines on squared edge lengths.
// Returns DegenerateAngle when either incident edge has zero length.
func Angle(a, b, c common.Vec3) float64 {
	ab2 := float64(a.Sub(b).Dot(a.Sub(b)))
	ac2 := float64(a.Sub(c).Dot(a.Sub(c)))
	bc2 := float64(b.Sub(c).Dot(b.Sub(c)))
	if ab2 == 0 || ac2 == 0 {
		return DegenerateAngle
	}
	ab := math.Sqrt(ab2)
	ac := math.Sqrt(ac2)
	cosA := (ab2 + ac2 - bc2) / (2 * ab * ac)
	cosA = clampUnit(cosA)
	return math.Acos(cosA) * 180 / math.Pi
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// rotateZ rotates v about the z-axis by angle radians.
func rotateZ(v common.Vec3, angle float32) common.Vec3 {
	s, c := float32(math.Sin(float64(angle))), float32(math.Cos(float64(angle)))
	return common.Vec3{
		v[0]*c - v[1]*s,
		v[0]*s + v[1]*c,
		v[2],
	}
}

// rotateY rotates v about the y-axis by angle radians.
func rotateY(v common.Vec3, angle float32) common.Vec3 {
	s, c := float32(math.Sin(float64(angle))), float32(math.Cos(float64(angle)))
	return common.Vec3{
		v[0]*c + v[2]*s,
		v[1],
		-v[0]*s + v[2]*c,
	}
}

// Rotate rotates s by alpha about the axis given in spherical
// coordinates (theta polar from the z-axis, phi azimuthal), by
// composing two rigid rotations that bring the axis onto z, a plain
// rotation about z by alpha, and the inverse pair bringing it back.
func Rotate(s common.Vec3, theta, phi, alpha float32) common.Vec3 {
	v := rotateZ(s, -phi)
	v = rotateY(v, -theta)
	v = rotateZ(v, alpha)
	v = rotateY(v, theta)
	v = rotateZ(v, phi)
	return v
}

// ProjectToTangent projects p onto the plane through corner a spanned
// by the frame (t, n): bisector t = hat(a,b)+hat(a,c) (normalized) and
// local normal n = hat(a,b) x hat(a,c) (normalized). Returns
// a + alpha*t + beta*n with alpha = (p-a).t and beta = (p-a).n, the
// tangent-space target used by vertex relocation; only the component
// along t x n is removed.
func ProjectToTangent(a, b, c, p common.Vec3) common.Vec3 {
	ab := Hat(a, b)
	ac := Hat(a, c)
	tRaw := ab.Add(ac)
	tLen := tRaw.Len()
	nRaw := ab.Cross(ac)
	nLen := nRaw.Len()
	if tLen == 0 || nLen == 0 {
		return p
	}
	t := tRaw.Mul(1 / tLen)
	n := nRaw.Mul(1 / nLen)
	d := p.Sub(a)
	alpha := d.Dot(t)
	beta := d.Dot(n)
	return a.Add(t.Mul(alpha)).Add(n.Mul(beta))
}
