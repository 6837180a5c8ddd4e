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
)

// fftSerial computes, in place, the radix-2 decimation-in-time Cooley-Tukey
// NTT of a (length n = 2^logN) using omega as the n-th root of unity.
func fftSerial(a []Group, omega fr.Element, logN int) {
	n := len(a)
	bitReverse(a, logN)

	var exp big.Int
	for s := 1; s <= logN; s++ {
		m := 1 << (s - 1)

		var wm fr.Element
		exp.SetInt64(int64(n / (2 * m)))
		wm.Exp(omega, &exp)

		for k := 0; k < n; k += 2 * m {
			var w fr.Element
			w.SetOne()

			for j := 0; j < m; j++ {
				t := cloneGroup(a[k+j+m])
				t.ScaleAssign(&w)

				lo := cloneGroup(a[k+j])
				a[k+j+m] = lo.SubAssign(t)
				a[k+j] = cloneGroup(a[k+j]).AddAssign(t)

				w.Mul(&w, &wm)
			}
		}
	}
}

// bitReverse permutes a in place so that a[k] and a[reverse(k)] are
// swapped, where reverse(k) is the bit-reversal of k in logN bits.
func bitReverse(a []Group, logN int) {
	n := len(a)
	for k := 0; k < n; k++ {
		rk := bitReverseIndex(uint(k), uint(logN))
		if uint(k) < rk {
			a[k], a[rk] = a[rk], a[k]
		}
	}
}

func bitReverseIndex(k, logN uint) uint {
	var r uint
	for i := uint(0); i < logN; i++ {
		r = (r << 1) | (k & 1)
		k >>= 1
	}
	return r
}

// cloneGroup returns a deep copy of g so in-place butterfly arithmetic
// never aliases the slot it was read from.
func cloneGroup(g Group) Group {
	switch v := g.(type) {
	case *Scalar:
		cp := *v
		return &cp
	case *Point:
		cp := *v
		return &cp
	default:
		panic("domain: unknown Group variant")
	}
}
