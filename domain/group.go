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

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Group is the capability set an EvaluationDomain's coefficients must
// support: an additive group that can also be scaled by a field element.
// Scalar and Point are the only two implementations; isGroup seals the
// interface so no third variant can slip into a Domain's coeffs slice.
type Group interface {
	// AddAssign sets the receiver to receiver+other and returns it.
	AddAssign(other Group) Group
	// SubAssign sets the receiver to receiver-other and returns it.
	SubAssign(other Group) Group
	// ScaleAssign left-multiplies the receiver by a field scalar.
	ScaleAssign(by *fr.Element) Group
	// Equal reports whether the receiver and other hold the same value.
	Equal(other Group) bool

	isGroup()
}

// kind tags which concrete Group variant a Domain was built over, so
// MulAssign/SubAssign/the accelerator path can check at runtime what the
// Rust original enforced at compile time via its Group<E> type parameter.
type kind uint8

const (
	scalarKind kind = iota
	pointKind
)

// Scalar is the Group implementation backing ordinary polynomial
// coefficients: a bn254 scalar-field element.
type Scalar struct {
	fr.Element
}

// NewScalar wraps a field element as a Scalar.
func NewScalar(e fr.Element) *Scalar {
	return &Scalar{Element: e}
}

// ZeroScalar returns the additive identity Scalar.
func ZeroScalar() *Scalar {
	return &Scalar{}
}

func (s *Scalar) AddAssign(other Group) Group {
	o := other.(*Scalar)
	s.Element.Add(&s.Element, &o.Element)
	return s
}

func (s *Scalar) SubAssign(other Group) Group {
	o := other.(*Scalar)
	s.Element.Sub(&s.Element, &o.Element)
	return s
}

func (s *Scalar) ScaleAssign(by *fr.Element) Group {
	s.Element.Mul(&s.Element, by)
	return s
}

func (s *Scalar) Equal(other Group) bool {
	o, ok := other.(*Scalar)
	return ok && s.Element.Equal(&o.Element)
}

func (s *Scalar) isGroup() {}

// Point is the Group implementation parameterizing a Domain over
// projective curve points. It exists so callers can type a Domain over
// curve points the way the spec requires; the NTT itself is never run on
// a Point-valued domain in practice (see the accelerator-dispatch open
// question in SPEC_FULL.md §11), but FFT/IFFT on the CPU path work on
// either variant identically since both only use Group's methods.
type Point struct {
	bn254.G1Jac
}

// NewPoint wraps a curve point as a Point.
func NewPoint(p bn254.G1Jac) *Point {
	return &Point{G1Jac: p}
}

// ZeroPoint returns the point at infinity.
func ZeroPoint() *Point {
	p := &Point{}
	p.G1Jac.X.SetOne()
	p.G1Jac.Y.SetOne()
	p.G1Jac.Z.SetZero()
	return p
}

func (p *Point) AddAssign(other Group) Group {
	o := other.(*Point)
	p.G1Jac.AddAssign(&o.G1Jac)
	return p
}

func (p *Point) SubAssign(other Group) Group {
	o := other.(*Point)
	p.G1Jac.SubAssign(&o.G1Jac)
	return p
}

func (p *Point) ScaleAssign(by *fr.Element) Group {
	var bi big.Int
	by.BigInt(&bi)
	p.G1Jac.ScalarMultiplication(&p.G1Jac, &bi)
	return p
}

func (p *Point) Equal(other Group) bool {
	o, ok := other.(*Point)
	if !ok {
		return false
	}
	var a, b bn254.G1Affine
	a.FromJacobian(&p.G1Jac)
	b.FromJacobian(&o.G1Jac)
	return a.Equal(&b)
}

func (p *Point) isGroup() {}
