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

// Package quotient demonstrates the evaluation-domain core in its
// intended caller role: computing a Groth16-style quotient polynomial
// h = (a*b - c) / Z_H from the three R1CS witness polynomials a, b, c,
// where Z_H is the vanishing polynomial of the constraint domain H.
//
// This mirrors computeH in a Groth16 prover: a, b and c are evaluated on
// a coset of H (since Z_H is identically zero on H itself), multiplied
// and subtracted pointwise, then divided by the constant value Z_H takes
// on that coset, and finally interpolated back to coefficient form.
package quotient

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-evaldomain/domain"
	"github.com/consensys/gnark-evaldomain/internal/worker"
)

// ComputeQuotient returns the coefficients of h = (a*b - c) / Z_H, where
// H is the evaluation domain sized to fit the longest of a, b, c.
//
// a, b and c are treated as dense coefficient vectors of the same
// constraint-domain polynomials a Groth16 prover would pass in; they need
// not have equal length, only fit within the same power-of-two domain.
func ComputeQuotient(pool *worker.Pool, a, b, c []fr.Element) ([]fr.Element, error) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	if len(c) > n {
		n = len(c)
	}

	da, err := domain.NewScalarDomain(padTo(a, n), domain.WithPool(pool))
	if err != nil {
		return nil, fmt.Errorf("quotient: building domain for a: %w", err)
	}
	db, err := domain.NewScalarDomain(padTo(b, da.Cardinality), domain.WithPool(pool))
	if err != nil {
		return nil, fmt.Errorf("quotient: building domain for b: %w", err)
	}
	dc, err := domain.NewScalarDomain(padTo(c, da.Cardinality), domain.WithPool(pool))
	if err != nil {
		return nil, fmt.Errorf("quotient: building domain for c: %w", err)
	}

	da.CosetFFT()
	db.CosetFFT()
	dc.CosetFFT()

	da.MulAssign(db)
	da.SubAssign(dc)

	da.DivideByZOnCoset()
	da.ICosetFFT()

	out := make([]fr.Element, len(da.Coeffs))
	for i, g := range da.Coeffs {
		out[i] = g.(*domain.Scalar).Element
	}
	return out, nil
}

func padTo(v []fr.Element, n int) []fr.Element {
	if len(v) >= n {
		return v
	}
	out := make([]fr.Element, n)
	copy(out, v)
	return out
}
