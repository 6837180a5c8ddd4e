// Copyright 2020 ConsenSys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package worker implements the structured data-parallelism primitive the
// domain package dispatches into: a Pool partitions a contiguous range of
// work into chunks sized for the available parallelism, and a Scope blocks
// at its closing boundary until every spawned task has returned.
package worker

import (
	"math/bits"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool is a minimal stand-in for the "thread pool primitive" spec.md lists
// as an external collaborator: it only decides how many chunks to split
// work into and hands off the actual scheduling to errgroup/the Go runtime.
type Pool struct {
	maxCPU int
}

// New returns a Pool sized to the host's available parallelism.
func New() *Pool {
	return &Pool{maxCPU: runtime.NumCPU()}
}

// NewWithParallelism returns a Pool capped at the given parallelism. Useful
// in tests that want to exercise a specific log_cpus value deterministically.
func NewWithParallelism(n int) *Pool {
	if n < 1 {
		n = 1
	}
	return &Pool{maxCPU: n}
}

// LogNumCPUs returns floor(log2(P)) for the pool's effective parallelism P.
func (p *Pool) LogNumCPUs() int {
	if p.maxCPU <= 1 {
		return 0
	}
	return bits.Len(uint(p.maxCPU)) - 1
}

// NumCPU returns the pool's effective parallelism P.
func (p *Pool) NumCPU() int {
	if p.maxCPU < 1 {
		return 1
	}
	return p.maxCPU
}

// Scope partitions [0, totalWork) into contiguous chunks and invokes body
// with a Scope to spawn tasks into and a suggested chunkSize. It blocks
// until every spawned task has returned, establishing happens-before
// between this call and whatever runs after it.
func (p *Pool) Scope(totalWork int, body func(s *Scope, chunkSize int)) {
	chunkSize := chunkSizeFor(totalWork, p.NumCPU())
	g := new(errgroup.Group)
	body(&Scope{g: g}, chunkSize)
	// Tasks wrapped by Scope.Spawn always return nil, so Wait never reports
	// an error. errgroup does not recover panics: a panic inside a task
	// crashes the process rather than surfacing here.
	_ = g.Wait()
}

func chunkSizeFor(totalWork, numCPU int) int {
	if numCPU < 1 {
		numCPU = 1
	}
	chunk := totalWork / numCPU
	if chunk < 1 {
		chunk = 1
	}
	return chunk
}

// Scope lets a Pool.Scope body spawn independent tasks. Tasks operate on
// disjoint slices; no two spawned tasks may touch the same memory.
type Scope struct {
	g *errgroup.Group
}

// Spawn runs task concurrently with other tasks spawned into this Scope.
func (s *Scope) Spawn(task func()) {
	s.g.Go(func() error {
		task()
		return nil
	})
}
