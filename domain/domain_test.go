package domain

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomFrSlice(n int) []fr.Element {
	out := make([]fr.Element, n)
	for i := range out {
		out[i].SetUint64(uint64(rand.Intn(1 << 20)))
	}
	return out
}

func elementsOf(t *testing.T, d *Domain) []fr.Element {
	t.Helper()
	out := make([]fr.Element, len(d.Coeffs))
	for i, g := range d.Coeffs {
		out[i] = g.(*Scalar).Element
	}
	return out
}

func TestFromCoeffsPadsWithZero(t *testing.T) {
	vals := randomFrSlice(5)
	d, err := NewScalarDomain(vals)
	require.NoError(t, err)

	assert.Equal(t, 8, d.Cardinality)
	for i := 5; i < 8; i++ {
		var zero fr.Element
		assert.True(t, d.Coeffs[i].(*Scalar).Element.Equal(&zero))
	}
}

func TestFromCoeffsEmptyAndSingleton(t *testing.T) {
	d0, err := NewScalarDomain(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, d0.Cardinality)
	assert.Equal(t, 0, d0.Exp)

	d1, err := NewScalarDomain(randomFrSlice(1))
	require.NoError(t, err)
	assert.Equal(t, 1, d1.Cardinality)
}

func TestDegreeTooLarge(t *testing.T) {
	_, err := NewScalarDomain(make([]fr.Element, 1<<(twoAdicity+1)))
	assert.ErrorIs(t, err, ErrPolynomialDegreeTooLarge)
}

func TestFFTIFFTRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8, 16, 32, 64, 128, 256, 512} {
		vals := randomFrSlice(n)
		d, err := NewScalarDomain(vals)
		require.NoError(t, err)
		original := elementsOf(t, d)

		d.FFT()
		d.IFFT()

		got := elementsOf(t, d)
		for i := range original {
			assert.Truef(t, got[i].Equal(&original[i]), "n=%d index=%d", n, i)
		}
	}
}

func TestIFFTFFTRoundTrip(t *testing.T) {
	vals := randomFrSlice(64)
	d, err := NewScalarDomain(vals)
	require.NoError(t, err)
	original := elementsOf(t, d)

	d.IFFT()
	d.FFT()

	got := elementsOf(t, d)
	for i := range original {
		assert.True(t, got[i].Equal(&original[i]))
	}
}

func TestCosetRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 4, 16, 64} {
		vals := randomFrSlice(n)
		d, err := NewScalarDomain(vals)
		require.NoError(t, err)
		original := elementsOf(t, d)

		d.CosetFFT()
		d.ICosetFFT()

		got := elementsOf(t, d)
		for i := range original {
			assert.Truef(t, got[i].Equal(&original[i]), "n=%d index=%d", n, i)
		}
	}
}

func TestDistributePowersInverseIsIdentity(t *testing.T) {
	vals := randomFrSlice(16)
	d, err := NewScalarDomain(vals)
	require.NoError(t, err)
	original := elementsOf(t, d)

	d.DistributePowers(multiplicativeGen)
	d.DistributePowers(d.GInv)

	got := elementsOf(t, d)
	for i := range original {
		assert.True(t, got[i].Equal(&original[i]))
	}
}

func TestLengthZeroAndOneAreNoOps(t *testing.T) {
	for _, n := range []int{0, 1} {
		vals := randomFrSlice(n)
		d, err := NewScalarDomain(vals)
		require.NoError(t, err)
		original := elementsOf(t, d)

		d.FFT()
		d.IFFT()
		d.CosetFFT()
		d.ICosetFFT()

		got := elementsOf(t, d)
		for i := range original {
			assert.True(t, got[i].Equal(&original[i]))
		}
	}
}

func TestMaxDomainSizeIsAccepted(t *testing.T) {
	// Building a 2^28-element domain is too costly for a unit test. FromCoeffs
	// only rejects exp > twoAdicity, and at exp == twoAdicity it uses
	// rootOfUnity squared zero times, so check that this root is a primitive
	// 2^twoAdicity-th root of unity.
	omega := omegaForLogN(twoAdicity)
	var half, full big.Int
	half.Lsh(big.NewInt(1), twoAdicity-1)
	full.Lsh(big.NewInt(1), twoAdicity)

	var one, minusOne, r fr.Element
	one.SetOne()
	minusOne.Neg(&one)

	r.Exp(omega, &half)
	require.True(t, r.Equal(&minusOne))
	r.Exp(omega, &full)
	assert.True(t, r.Equal(&one))
}

func TestZVanishesOnSubgroupNonzeroOnGenerator(t *testing.T) {
	d, err := NewScalarDomain(randomFrSlice(16))
	require.NoError(t, err)

	var omegaK fr.Element
	omegaK.SetOne()
	for k := 0; k < d.Cardinality; k++ {
		z := d.Z(&omegaK)
		var zero fr.Element
		assert.Truef(t, z.Equal(&zero), "z(omega^%d) should vanish", k)
		omegaK.Mul(&omegaK, &d.Omega)
	}

	zg := d.Z(&multiplicativeGen)
	var zero fr.Element
	assert.False(t, zg.Equal(&zero))
}

func TestPolynomialMultiplicationViaNTT(t *testing.T) {
	a := randomFrSlice(6) // deg(a) = 5
	b := randomFrSlice(5) // deg(b) = 4

	want := schoolbookConvolution(a, b)

	padded := make([]fr.Element, 10)
	copy(padded, want[:10])

	aPad := make([]fr.Element, 16)
	copy(aPad, a)
	bPad := make([]fr.Element, 16)
	copy(bPad, b)

	da, err := NewScalarDomain(aPad)
	require.NoError(t, err)
	db, err := NewScalarDomain(bPad)
	require.NoError(t, err)

	da.FFT()
	db.FFT()
	da.MulAssign(db)
	da.IFFT()

	got := elementsOf(t, da)
	for i := 0; i < 10; i++ {
		assert.Truef(t, got[i].Equal(&padded[i]), "coefficient %d", i)
	}
}

func schoolbookConvolution(a, b []fr.Element) []fr.Element {
	out := make([]fr.Element, len(a)+len(b)-1)
	for i := range out {
		out[i].SetZero()
	}
	for i := range a {
		for j := range b {
			var t fr.Element
			t.Mul(&a[i], &b[j])
			out[i+j].Add(&out[i+j], &t)
		}
	}
	return out
}

func TestDivideByZOnCoset(t *testing.T) {
	vals := randomFrSlice(16)
	d, err := NewScalarDomain(vals)
	require.NoError(t, err)

	d.CosetFFT()
	before := elementsOf(t, d)

	d.DivideByZOnCoset()

	zg := d.Z(&multiplicativeGen)
	var zgInv fr.Element
	zgInv.Inverse(&zg)

	got := elementsOf(t, d)
	for i := range got {
		var want fr.Element
		want.Mul(&before[i], &zgInv)
		assert.Truef(t, got[i].Equal(&want), "index %d", i)
	}
}

func TestMulAssignRequiresEqualLength(t *testing.T) {
	d1, err := NewScalarDomain(randomFrSlice(4))
	require.NoError(t, err)
	d2, err := NewScalarDomain(randomFrSlice(8))
	require.NoError(t, err)

	assert.Panics(t, func() { d1.MulAssign(d2) })
}

func TestSubAssignRequiresMatchingVariant(t *testing.T) {
	scalarDomain, err := NewScalarDomain(randomFrSlice(4))
	require.NoError(t, err)

	pointDomain, err := NewPointDomain(make([]Point, 4))
	require.NoError(t, err)

	assert.Panics(t, func() { scalarDomain.SubAssign(pointDomain) })
}

func TestSubAssignElementwise(t *testing.T) {
	a := randomFrSlice(8)
	b := randomFrSlice(8)

	da, err := NewScalarDomain(a)
	require.NoError(t, err)
	db, err := NewScalarDomain(b)
	require.NoError(t, err)

	da.SubAssign(db)

	got := elementsOf(t, da)
	for i := range a {
		var want fr.Element
		want.Sub(&a[i], &b[i])
		assert.True(t, got[i].Equal(&want))
	}
}
