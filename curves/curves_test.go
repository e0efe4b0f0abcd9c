package curves

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/gciphers/keygen"
)

func seeded(label string) *rand.ChaCha8 {
	var seed [32]byte
	copy(seed[:], label)
	return rand.NewChaCha8(seed)
}

func TestDomains(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			d, err := ByName(name)
			require.NoError(t, err)
			require.NoError(t, d.Validate())
			assert.Equal(t, big.NewInt(1), d.H)
			assert.True(t, d.Q.ProbablyPrime(20))
		})
	}
}

func TestByName(t *testing.T) {
	d, err := ByName(" SECP256K1 ")
	require.NoError(t, err)
	assert.True(t, d.Curve.Equal(Secp256k1().Curve))

	_, err = ByName("p256")
	assert.ErrorIs(t, err, ErrUnknownCurve)

	assert.Equal(t, []string{NameBN254, NameSecp256k1}, Names())
}

func TestDomainIsCopy(t *testing.T) {
	d := Secp256k1()
	d.Q.SetInt64(5)
	assert.NotEqual(t, big.NewInt(5), Secp256k1().Q)
}

func TestSecp256k1MatchesDecred(t *testing.T) {
	d := Secp256k1()
	curve := secp256k1.S256()
	r := seeded("secp256k1")

	for i := 0; i < 8; i++ {
		km, err := keygen.NewKeyMaterial(r, d)
		require.NoError(t, err)

		wantX, wantY := curve.ScalarBaseMult(km.X.Bytes())
		assert.Equal(t, wantX, km.Y.X())
		assert.Equal(t, wantY, km.Y.Y())

		// The fixed-width encoding is the SEC1 uncompressed form.
		pub, err := secp256k1.ParsePubKey(d.Curve.Bytes(km.Y))
		require.NoError(t, err)
		assert.Equal(t, wantX, pub.X())
		assert.Equal(t, wantY, pub.Y())

		sumX, sumY := curve.Add(wantX, wantY, curve.Params().Gx, curve.Params().Gy)
		sum := d.Curve.Add(km.Y, d.G)
		assert.Equal(t, sumX, sum.X())
		assert.Equal(t, sumY, sum.Y())
	}
}

func TestBN254MatchesGnark(t *testing.T) {
	d := BN254()
	_, _, g1, _ := bn254.Generators()
	r := seeded("bn254")

	for i := 0; i < 8; i++ {
		km, err := keygen.NewKeyMaterial(r, d)
		require.NoError(t, err)

		var want bn254.G1Affine
		want.ScalarMultiplication(&g1, km.X)
		assert.Equal(t, want.X.BigInt(new(big.Int)), km.Y.X())
		assert.Equal(t, want.Y.BigInt(new(big.Int)), km.Y.Y())

		var got bn254.G1Affine
		got.X.SetBigInt(km.Y.X())
		got.Y.SetBigInt(km.Y.Y())
		assert.True(t, got.IsOnCurve())
	}
}
