// Package eigen implements the closed-form eigendecomposition of the
// 3x3 symmetric structure tensor assembled from a vertex's local
// normal field. It has no knowledge of mesh topology: callers (the
// mesh package) assemble the Tensor from a BFS over the one-ring and
// hand it here for a pure numeric solve.
package eigen

import (
	"math"

	"meshopt/common"
)

// Tensor is a symmetric 3x3 accumulator for sum(n * n^T) over a set of
// unit normals.
type Tensor struct {
	xx, xy, xz, yy, yz, zz float64
}

// Add accumulates n*n^T into the tensor.
func (t *Tensor) Add(n common.Vec3) {
	x, y, z := float64(n[0]), float64(n[1]), float64(n[2])
	t.xx += x * x
	t.xy += x * y
	t.xz += x * z
	t.yy += y * y
	t.yz += y * z
	t.zz += z * z
}

func (t Tensor) trace() float64 {
	return t.xx + t.yy + t.zz
}

func (t Tensor) det() float64 {
	return t.xx*(t.yy*t.zz-t.yz*t.yz) -
		t.xy*(t.xy*t.zz-t.yz*t.xz) +
		t.xz*(t.xy*t.yz-t.yy*t.xz)
}

// principalMinorSum is the sum of the three 2x2 principal minors of t,
// the c1 coefficient of the characteristic cubic.
func (t Tensor) principalMinorSum() float64 {
	m1 := t.xx*t.yy - t.xy*t.xy
	m2 := t.xx*t.zz - t.xz*t.xz
	m3 := t.yy*t.zz - t.yz*t.yz
	return m1 + m2 + m3
}

// shifted returns t - lambda*I.
func (t Tensor) shifted(lambda float64) Tensor {
	s := t
	s.xx -= lambda
	s.yy -= lambda
	s.zz -= lambda
	return s
}

// adjugateColumns returns the three candidate columns of adj(t) for a
// symmetric matrix: (adj00,adj01,adj02), (adj01,adj11,adj12),
// (adj02,adj12,adj22).
func (t Tensor) adjugateColumns() [3]common.Vec3 {
	adj00 := t.yy*t.zz - t.yz*t.yz
	adj01 := t.xz*t.yz - t.xy*t.zz
	adj02 := t.xy*t.yz - t.xz*t.yy
	adj11 := t.xx*t.zz - t.xz*t.xz
	adj12 := t.xy*t.xz - t.xx*t.yz
	adj22 := t.xx*t.yy - t.xy*t.xy
	return [3]common.Vec3{
		{float32(adj00), float32(adj01), float32(adj02)},
		{float32(adj01), float32(adj11), float32(adj12)},
		{float32(adj02), float32(adj12), float32(adj22)},
	}
}

// Basis holds a descending-eigenvalue eigendecomposition of a
// structure tensor.
type Basis struct {
	Values     [3]float64
	Vectors    [3]common.Vec3
	Degenerate bool
}

// Decompose solves the characteristic cubic of t analytically and
// returns its eigenvalues in descending order together with an
// orthonormal eigenbasis. On a degenerate (NaN) root, it falls back to
// the identity basis with eigenvalues (trace, 0, 0), matching a flat
// local neighborhood.
func Decompose(t Tensor) Basis {
	c0 := t.det()
	c1 := t.principalMinorSum()
	c2 := t.trace()

	a := (3*c1 - c2*c2) / 3
	b := (-2*c2*c2*c2 + 9*c1*c2 - 27*c0) / 27
	q := b*b/4 + a*a*a/27

	negQ := -q
	if negQ < 0 {
		negQ = 0
	}
	theta := math.Atan2(math.Sqrt(negQ), -b/2)

	pArg := b*b/4 - q
	if pArg < 0 {
		pArg = 0
	}
	p := math.Sqrt(pArg)
	pCbrt := math.Cbrt(p)

	sqrt3 := math.Sqrt(3)
	ct3, st3 := math.Cos(theta/3), math.Sin(theta/3)

	l1 := c2/3 + 2*pCbrt*ct3
	l2 := c2/3 - pCbrt*(ct3+sqrt3*st3)
	l3 := c2/3 - pCbrt*(ct3-sqrt3*st3)

	if isNaN(l1) || isNaN(l2) || isNaN(l3) {
		return Basis{
			Values: [3]float64{c2, 0, 0},
			Vectors: [3]common.Vec3{
				{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
			},
			Degenerate: true,
		}
	}

	vals := sortDescending(l1, l2, l3)

	e1 := largestAdjugateColumn(t.shifted(vals[0]))
	e2 := largestAdjugateColumn(t.shifted(vals[1]))
	if e1 == (common.Vec3{}) || e2 == (common.Vec3{}) {
		return Basis{
			Values: [3]float64{c2, 0, 0},
			Vectors: [3]common.Vec3{
				{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
			},
			Degenerate: true,
		}
	}
	e3 := e1.Cross(e2)
	if e3.Len() == 0 {
		return Basis{
			Values: [3]float64{c2, 0, 0},
			Vectors: [3]common.Vec3{
				{1, 0, 0}, {0, 1, 0}, {0, 0, 1},
			},
			Degenerate: true,
		}
	}
	e3 = e3.Mul(1 / e3.Len())

	return Basis{
		Values:  vals,
		Vectors: [3]common.Vec3{e1, e2, e3},
	}
}

func largestAdjugateColumn(shifted Tensor) common.Vec3 {
	cols := shifted.adjugateColumns()
	best := cols[0]
	bestNorm := best.Dot(best)
	for _, c := range cols[1:] {
		n := c.Dot(c)
		if n > bestNorm {
			best, bestNorm = c, n
		}
	}
	if bestNorm == 0 {
		return common.Vec3{}
	}
	l := float32(math.Sqrt(float64(bestNorm)))
	return best.Mul(1 / l)
}

func sortDescending(l1, l2, l3 float64) [3]float64 {
	v := [3]float64{l1, l2, l3}
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if v[j] > v[i] {
				v[i], v[j] = v[j], v[i]
			}
		}
	}
	return v
}

func isNaN(v float64) bool {
	return v != v
}
