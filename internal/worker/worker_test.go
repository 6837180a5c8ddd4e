package worker

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopePartitionsDisjointRanges(t *testing.T) {
	const n = 997
	buf := make([]int32, n)
	pool := NewWithParallelism(4)

	pool.Scope(n, func(s *Scope, chunk int) {
		for lo := 0; lo < n; lo += chunk {
			hi := lo + chunk
			if hi > n {
				hi = n
			}
			lo, hi := lo, hi
			s.Spawn(func() {
				for i := lo; i < hi; i++ {
					atomic.AddInt32(&buf[i], 1)
				}
			})
		}
	})

	for i, v := range buf {
		assert.Equalf(t, int32(1), v, "index %d touched %d times, want exactly once", i, v)
	}
}

func TestScopeBlocksUntilTasksComplete(t *testing.T) {
	pool := NewWithParallelism(8)
	var done int32

	pool.Scope(64, func(s *Scope, chunk int) {
		for i := 0; i < 8; i++ {
			s.Spawn(func() {
				atomic.AddInt32(&done, 1)
			})
		}
	})

	assert.EqualValues(t, 8, done)
}

func TestLogNumCPUs(t *testing.T) {
	cases := map[int]int{1: 0, 2: 1, 3: 1, 4: 2, 5: 2, 8: 3, 9: 3}
	for n, want := range cases {
		p := NewWithParallelism(n)
		assert.Equalf(t, want, p.LogNumCPUs(), "NumCPU=%d", n)
	}
}
