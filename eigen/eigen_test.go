package eigen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"meshopt/common"
)

func TestDecomposeAlignedNormalsGivesDominantAxis(t *testing.T) {
	var ten Tensor
	ten.Add(common.Vec3{0, 0, 1})
	ten.Add(common.Vec3{0, 0, 1})
	ten.Add(common.Vec3{0.01, 0, 0.99996})

	b := Decompose(ten)
	assert.False(t, b.Degenerate)
	assert.GreaterOrEqual(t, b.Values[0], b.Values[1])
	assert.GreaterOrEqual(t, b.Values[1], b.Values[2])
	// Dominant eigenvector should be close to the z axis (up to sign).
	assert.Greater(t, b.Vectors[0][2]*b.Vectors[0][2], float32(0.9))
}

func TestDecomposeOrthonormalBasis(t *testing.T) {
	var ten Tensor
	ten.Add(common.Vec3{1, 0, 0})
	ten.Add(common.Vec3{0, 1, 0})
	ten.Add(common.Vec3{0, 0, 1})

	b := Decompose(ten)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1, b.Vectors[i].Len(), 1e-3)
		for j := i + 1; j < 3; j++ {
			assert.InDelta(t, 0, b.Vectors[i].Dot(b.Vectors[j]), 1e-2)
		}
	}
}

func TestDecomposeEigenvaluesNonNegativeNonIncreasing(t *testing.T) {
	var ten Tensor
	ten.Add(common.Vec3{0.3, 0.7, 0.1})
	ten.Add(common.Vec3{0.1, 0.6, 0.3})
	ten.Add(common.Vec3{0.2, 0.5, 0.4})

	b := Decompose(ten)
	assert.GreaterOrEqual(t, b.Values[0], 0.0)
	assert.GreaterOrEqual(t, b.Values[1], 0.0)
	assert.GreaterOrEqual(t, b.Values[2], 0.0)
	assert.GreaterOrEqual(t, b.Values[0], b.Values[1])
	assert.GreaterOrEqual(t, b.Values[1], b.Values[2])
}

func TestDecomposeZeroTensorIsDegenerate(t *testing.T) {
	b := Decompose(Tensor{})
	assert.Equal(t, [3]float64{0, 0, 0}, b.Values)
}
