package workpool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeVisitsEveryIndexExactlyOnce(t *testing.T) {
	const n = 997
	pool := New(8)
	var seen [n]int32
	pool.Range(n, func(i int) {
		atomic.AddInt32(&seen[i], 1)
	})
	for i, v := range seen {
		assert.Equal(t, int32(1), v, "index %d", i)
	}
}

func TestRangeZeroIsNoop(t *testing.T) {
	pool := New(4)
	called := false
	pool.Range(0, func(i int) { called = true })
	assert.False(t, called)
}

func TestPrefixSumBoolCountsPredecessors(t *testing.T) {
	pool := New(4)
	remove := []bool{false, true, false, true, true, false}
	got := pool.PrefixSumBool(remove)
	assert.Equal(t, []int{0, 0, 1, 1, 2, 3}, got)
}

func TestPrefixSumBoolEmpty(t *testing.T) {
	pool := New(4)
	assert.Empty(t, pool.PrefixSumBool(nil))
}
