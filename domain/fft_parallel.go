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

package domain

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-evaldomain/internal/worker"
)

// fftParallel performs the same radix-2 NTT as fftSerial but splits the
// work into 2^logP independent sub-NTTs of length n' = n/2^logP, run
// concurrently across pool, then recombines. The result is bit-identical
// to fftSerial on the same input (see the parallel-vs-serial consistency
// test).
//
// The staging area is a single contiguous buffer of size n with stride P,
// per the design note in SPEC_FULL.md favoring cache locality over a
// vector-of-vectors layout; tmp[j*nPrime+i] holds sub-problem j's i-th
// element.
func fftParallel(pool *worker.Pool, a []Group, omega fr.Element, logN, logP int, newZero func() Group) {
	n := len(a)
	p := 1 << logP
	nPrime := n >> logP

	tmp := make([]Group, n)
	for i := range tmp {
		tmp[i] = newZero()
	}

	var expP big.Int
	expP.SetInt64(int64(p))
	var omegaPElem fr.Element
	omegaPElem.Exp(omega, &expP)

	// Each stripe's shuffle and its serial sub-NTT run inside the same
	// spawned task: tmp[j] is private to task j until the recombine
	// section below, so there is no reason to pay a second scope boundary
	// between building it and transforming it (domain.rs's parallel_fft
	// does both in one scope.spawn closure too).
	pool.Scope(p, func(s *worker.Scope, chunk int) {
		for lo := 0; lo < p; lo += chunk {
			hi := lo + chunk
			if hi > p {
				hi = p
			}
			lo, hi := lo, hi
			s.Spawn(func() {
				for j := lo; j < hi; j++ {
					stripe := tmp[j*nPrime : (j+1)*nPrime]
					stripeParallelFFT(a, stripe, omega, j, nPrime, p)
					fftSerial(stripe, omegaPElem, logN-logP)
				}
			})
		}
	})

	pool.Scope(n, func(s *worker.Scope, chunk int) {
		for lo := 0; lo < n; lo += chunk {
			hi := lo + chunk
			if hi > n {
				hi = n
			}
			lo, hi := lo, hi
			s.Spawn(func() {
				for idx := lo; idx < hi; idx++ {
					a[idx] = tmp[(idx%p)*nPrime+idx/p]
				}
			})
		}
	})
}

// stripeParallelFFT fills dst (sub-problem j, length nPrime) from the
// read-only buffer a, per SPEC_FULL.md §4.4 step 2: for i in 0..nPrime,
// for s in 0..P, idx = (i+s*nPrime) mod n, dst[i] += a[idx]*elt, then
// elt *= omega^(j*nPrime); after the inner loop elt *= omega^j.
func stripeParallelFFT(a []Group, dst []Group, omega fr.Element, j, nPrime, p int) {
	n := len(a)

	var omegaJ, omegaStep fr.Element
	var ej, estep big.Int
	ej.SetInt64(int64(j))
	estep.SetInt64(int64(j * nPrime))
	omegaJ.Exp(omega, &ej)
	omegaStep.Exp(omega, &estep)

	var elt fr.Element
	elt.SetOne()

	for i := 0; i < nPrime; i++ {
		acc := cloneGroup(dst[i])
		for s := 0; s < p; s++ {
			idx := (i + s*nPrime) % n
			term := cloneGroup(a[idx])
			term.ScaleAssign(&elt)
			acc = acc.AddAssign(term)
			elt.Mul(&elt, &omegaStep)
		}
		dst[i] = acc
		elt.Mul(&elt, &omegaJ)
	}
}
