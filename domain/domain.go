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

// Package domain implements the evaluation-domain core of the proving
// pipeline: construction of a power-of-two domain over the bn254 scalar
// field, radix-2 NTT/INTT (serial, parallel and accelerator-backed),
// coset transforms, and the elementwise operations (multiply, subtract,
// distribute powers, vanishing-polynomial division) that a Groth16-style
// prover composes into a quotient computation.
package domain

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-evaldomain/internal/gpu"
	"github.com/consensys/gnark-evaldomain/internal/worker"
)

// twoAdicity is S: bn254's scalar field Fr has a multiplicative subgroup
// of order 2^28.
const twoAdicity = 28

// rootOfUnity is a primitive 2^28-th root of unity of bn254's Fr, and
// multiplicativeGen is a generator of Fr*. Both are the field's own
// well-known public constants (the same values gnark-crypto's generated
// fft.Domain and element packages embed for this curve); they are not
// derived at runtime because Fr exposes no "find me a root of unity"
// operation of its own (see SPEC_FULL.md §3, "Field F").
var (
	rootOfUnity      fr.Element
	multiplicativeGen fr.Element
)

func init() {
	rootOfUnity.SetString("19103219067921713944291392827692070036145651957329286315305642004821462161904")
	multiplicativeGen.SetUint64(5)
}

// Domain is an EvaluationDomain over Group: it owns coeffs exclusively
// and is mutated in place by every transform and elementwise operation.
type Domain struct {
	pool   *worker.Pool
	kernel gpu.Kernel
	kind   kind

	Coeffs []Group

	Exp      int
	Omega    fr.Element
	OmegaInv fr.Element
	GInv     fr.Element
	MInv     fr.Element

	Cardinality int
}

// Option configures FromCoeffs.
type Option func(*domainConfig)

type domainConfig struct {
	pool           *worker.Pool
	useAccelerator bool
	maxAccelLogN   int
}

// WithPool attaches a worker pool to the domain; if omitted, a
// default pool sized to runtime.NumCPU is used.
func WithPool(p *worker.Pool) Option {
	return func(c *domainConfig) { c.pool = p }
}

// WithAccelerator asks FromCoeffs to attempt creating a GPU kernel sized
// for up to 2^logMaxSize elements. Kernel creation is best-effort: a
// failure logs a warning once and leaves the domain on the CPU-only path
// (§4.5/§7.2).
func WithAccelerator(logMaxSize int) Option {
	return func(c *domainConfig) {
		c.useAccelerator = true
		c.maxAccelLogN = logMaxSize
	}
}

// FromCoeffs builds a Domain holding coeffs (padded with zeros up to the
// next power of two), per SPEC_FULL.md §4.2. newZero must return a fresh
// zero value of the Group variant coeffs is built from (ZeroScalar or
// ZeroPoint) — it is used to pad and, for Point domains, is never passed
// to the accelerator.
func FromCoeffs(coeffs []Group, k kind, newZero func() Group, opts ...Option) (*Domain, error) {
	cfg := domainConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := len(coeffs)
	exp := 0
	m := 1
	for m < n {
		m <<= 1
		exp++
	}
	if exp > twoAdicity {
		return nil, fmt.Errorf("%w: %d coefficients need 2^%d, field supports up to 2^%d",
			ErrPolynomialDegreeTooLarge, n, exp, twoAdicity)
	}

	padded := make([]Group, m)
	copy(padded, coeffs)
	for i := n; i < m; i++ {
		padded[i] = newZero()
	}

	var omega fr.Element
	omega.Set(&rootOfUnity)
	for s := 0; s < twoAdicity-exp; s++ {
		omega.Square(&omega)
	}

	var omegaInv, gInv, mInv fr.Element
	omegaInv.Inverse(&omega)
	gInv.Inverse(&multiplicativeGen)
	mInv.SetUint64(uint64(m))
	mInv.Inverse(&mInv)

	pool := cfg.pool
	if pool == nil {
		pool = worker.New()
	}

	var kernel gpu.Kernel
	if cfg.useAccelerator && k == scalarKind {
		kernel = createKernel(cfg.maxAccelLogN)
	}

	return &Domain{
		pool:        pool,
		kernel:      kernel,
		kind:        k,
		Coeffs:      padded,
		Exp:         exp,
		Omega:       omega,
		OmegaInv:    omegaInv,
		GInv:        gInv,
		MInv:        mInv,
		Cardinality: m,
	}, nil
}

// NewScalarDomain is a convenience constructor for the common case: a
// Domain over fr.Element coefficients.
func NewScalarDomain(values []fr.Element, opts ...Option) (*Domain, error) {
	coeffs := make([]Group, len(values))
	for i, v := range values {
		coeffs[i] = NewScalar(v)
	}
	return FromCoeffs(coeffs, scalarKind, func() Group { return ZeroScalar() }, opts...)
}

// NewPointDomain is a convenience constructor for a Domain over
// projective curve points (C2); the accelerator is never attempted for
// it regardless of WithAccelerator, per SPEC_FULL.md §11.
func NewPointDomain(values []Point, opts ...Option) (*Domain, error) {
	coeffs := make([]Group, len(values))
	for i := range values {
		v := values[i]
		coeffs[i] = &v
	}
	return FromCoeffs(coeffs, pointKind, func() Group { return ZeroPoint() }, opts...)
}

func (d *Domain) zeroer() func() Group {
	if d.kind == pointKind {
		return func() Group { return ZeroPoint() }
	}
	return func() Group { return ZeroScalar() }
}

// FFT applies the forward radix-2 NTT in place using Omega.
func (d *Domain) FFT() {
	if d.Exp == 0 {
		return
	}
	bestFFT(d.pool, d.kernel, d.Coeffs, d.Omega, d.Exp, d.kind, d.zeroer())
}

// IFFT applies the forward NTT using OmegaInv, then scales every
// coefficient by MInv.
func (d *Domain) IFFT() {
	if d.Exp == 0 {
		return
	}
	bestFFT(d.pool, d.kernel, d.Coeffs, d.OmegaInv, d.Exp, d.kind, d.zeroer())
	d.scaleAll(&d.MInv)
}

// DistributePowers sets coeffs[i] <- coeffs[i]*g^i for i in 0..len(coeffs),
// parallelizing by seeding each chunk's starting power via exponentiation
// (so chunks are independent), per SPEC_FULL.md §4.2.
func (d *Domain) DistributePowers(g fr.Element) {
	n := len(d.Coeffs)
	d.pool.Scope(n, func(s *worker.Scope, chunk int) {
		for lo := 0; lo < n; lo += chunk {
			hi := lo + chunk
			if hi > n {
				hi = n
			}
			lo, hi := lo, hi
			s.Spawn(func() {
				var exp big.Int
				exp.SetInt64(int64(lo))
				var u fr.Element
				u.Exp(g, &exp)
				for i := lo; i < hi; i++ {
					d.Coeffs[i] = d.Coeffs[i].ScaleAssign(&u)
					u.Mul(&u, &g)
				}
			})
		}
	})
}

// CosetFFT evaluates the polynomial on the coset g*H.
func (d *Domain) CosetFFT() {
	d.DistributePowers(multiplicativeGen)
	d.FFT()
}

// ICosetFFT interpolates evaluations on the coset g*H back to coefficient
// form.
func (d *Domain) ICosetFFT() {
	d.IFFT()
	d.DistributePowers(d.GInv)
}

// Z returns tau^m - 1, the vanishing polynomial of H evaluated at tau.
func (d *Domain) Z(tau *fr.Element) fr.Element {
	var exp big.Int
	exp.SetInt64(int64(d.Cardinality))
	var r, one fr.Element
	r.Exp(*tau, &exp)
	one.SetOne()
	r.Sub(&r, &one)
	return r
}

// DivideByZOnCoset scales every coefficient by the inverse of z(g) =
// g^m-1, the constant value the vanishing polynomial takes everywhere on
// the coset g*H. The caller must already have coefficients in coset
// evaluation form (§4.2); this operation cannot detect a violated
// precondition.
func (d *Domain) DivideByZOnCoset() {
	zg := d.Z(&multiplicativeGen)
	zg.Inverse(&zg)
	d.scaleAll(&zg)
}

func (d *Domain) scaleAll(by *fr.Element) {
	n := len(d.Coeffs)
	d.pool.Scope(n, func(s *worker.Scope, chunk int) {
		for lo := 0; lo < n; lo += chunk {
			hi := lo + chunk
			if hi > n {
				hi = n
			}
			lo, hi := lo, hi
			s.Spawn(func() {
				for i := lo; i < hi; i++ {
					d.Coeffs[i] = d.Coeffs[i].ScaleAssign(by)
				}
			})
		}
	})
}

// MulAssign performs the elementwise product coeffs[i] *= other.coeffs[i]
// in evaluation form; other must be a Scalar-valued domain of equal
// length, per SPEC_FULL.md §4.2.
func (d *Domain) MulAssign(other *Domain) {
	if len(d.Coeffs) != len(other.Coeffs) {
		panic("domain: MulAssign requires equal-length domains")
	}
	if other.kind != scalarKind {
		panic("domain: MulAssign requires a Scalar-valued factor")
	}
	n := len(d.Coeffs)
	d.pool.Scope(n, func(s *worker.Scope, chunk int) {
		for lo := 0; lo < n; lo += chunk {
			hi := lo + chunk
			if hi > n {
				hi = n
			}
			lo, hi := lo, hi
			s.Spawn(func() {
				for i := lo; i < hi; i++ {
					f := other.Coeffs[i].(*Scalar).Element
					d.Coeffs[i] = d.Coeffs[i].ScaleAssign(&f)
				}
			})
		}
	})
}

// SubAssign performs the elementwise subtraction coeffs[i] -=
// other.coeffs[i]; other must have equal length and the same Group
// variant.
func (d *Domain) SubAssign(other *Domain) {
	if len(d.Coeffs) != len(other.Coeffs) {
		panic("domain: SubAssign requires equal-length domains")
	}
	if d.kind != other.kind {
		panic("domain: SubAssign requires matching Group variants")
	}
	n := len(d.Coeffs)
	d.pool.Scope(n, func(s *worker.Scope, chunk int) {
		for lo := 0; lo < n; lo += chunk {
			hi := lo + chunk
			if hi > n {
				hi = n
			}
			lo, hi := lo, hi
			s.Spawn(func() {
				for i := lo; i < hi; i++ {
					d.Coeffs[i] = d.Coeffs[i].SubAssign(other.Coeffs[i])
				}
			})
		}
	})
}
