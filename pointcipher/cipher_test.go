package pointcipher

import (
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/f3rmion/gciphers/alphabet"
	"github.com/f3rmion/gciphers/curves"
	"github.com/f3rmion/gciphers/group"
	"github.com/f3rmion/gciphers/keygen"
)

const referenceCiphertext = "((8,21),26)((8,21),11)((8,21),26)((8,26),40)((8,21),18)((8,21),26)"

func bi(v int64) *big.Int { return big.NewInt(v) }

func seeded(label string) *rand.ChaCha8 {
	var seed [32]byte
	copy(seed[:], label)
	return rand.NewChaCha8(seed)
}

// referenceKeys is y² = x³ + 2x + 7 over F_47, G = (8,26), q = 3, x = 2.
func referenceKeys(t *testing.T) *keygen.KeyMaterial {
	t.Helper()
	c, err := group.New(bi(2), bi(7), bi(47))
	require.NoError(t, err)
	g, err := c.NewPoint(bi(8), bi(26))
	require.NoError(t, err)
	km, err := keygen.FromPrivate(&keygen.Domain{Curve: c, G: g, Q: bi(3), H: bi(16)}, bi(2))
	require.NoError(t, err)
	require.Equal(t, "(8,21)", km.Y.String())
	return km
}

func TestReferenceVector(t *testing.T) {
	km := referenceKeys(t)
	pub := km.Public()

	values, err := alphabet.New().Values("отодно")
	require.NoError(t, err)
	nonces := []int64{2, 2, 2, 1, 2, 2}

	var out []CipherValue
	for i, m := range values {
		v, err := EncryptSymbol(pub, int64(m), bi(nonces[i]))
		require.NoError(t, err)
		out = append(out, v)
	}
	assert.Equal(t, referenceCiphertext, Format(out))

	plain, err := New().Decrypt(km.Curve, km.X, referenceCiphertext)
	require.NoError(t, err)
	assert.Equal(t, "отодно", plain)
}

func TestRoundTrip(t *testing.T) {
	c := New()

	t.Run("Reference", func(t *testing.T) {
		km := referenceKeys(t)
		r := seeded("reference")
		for _, msg := range []string{"отодно", "а", "я", alphabet.Russian} {
			ct, err := c.Encrypt(r, km.Public(), msg)
			require.NoError(t, err)
			plain, err := c.Decrypt(km.Curve, km.X, ct)
			require.NoError(t, err)
			assert.Equal(t, msg, plain)
		}
	})

	t.Run("Generated", func(t *testing.T) {
		r := seeded("generated")
		curve, err := keygen.RandomCurve(r, keygen.DefaultMinModulus, keygen.DefaultMaxModulus)
		require.NoError(t, err)
		km, err := keygen.Generate(r, curve)
		require.NoError(t, err)

		ct, err := c.Encrypt(r, km.Public(), "шифрование")
		require.NoError(t, err)
		plain, err := c.Decrypt(km.Curve, km.X, ct)
		require.NoError(t, err)
		assert.Equal(t, "шифрование", plain)
	})

	t.Run("Secp256k1", func(t *testing.T) {
		r := seeded("secp256k1")
		km, err := keygen.NewKeyMaterial(r, curves.Secp256k1())
		require.NoError(t, err)

		ct, err := c.Encrypt(r, km.Public(), "эллиптическая")
		require.NoError(t, err)
		plain, err := c.Decrypt(km.Curve, km.X, ct)
		require.NoError(t, err)
		assert.Equal(t, "эллиптическая", plain)
	})

	t.Run("CustomAlphabet", func(t *testing.T) {
		latin, err := alphabet.FromString("abcdefghijklmnopqrstuvwxyz")
		require.NoError(t, err)
		c := New(WithAlphabet(latin))
		km := referenceKeys(t)
		r := seeded("latin")

		ct, err := c.Encrypt(r, km.Public(), "zebra")
		require.NoError(t, err)
		plain, err := c.Decrypt(km.Curve, km.X, ct)
		require.NoError(t, err)
		assert.Equal(t, "zebra", plain)
	})
}

func TestEncryptPreconditions(t *testing.T) {
	c := New()
	km := referenceKeys(t)
	r := seeded("preconditions")

	_, err := c.Encrypt(r, km.Public(), "")
	assert.ErrorIs(t, err, alphabet.ErrEmptyValue)

	_, err = c.Encrypt(r, km.Public(), "hello")
	assert.ErrorIs(t, err, alphabet.ErrInvalidText)

	_, err = c.Encrypt(r, nil, "отодно")
	assert.ErrorIs(t, err, group.ErrInvalidKey)

	t.Run("SmallModulus", func(t *testing.T) {
		small, err := group.New(bi(3), bi(4), bi(11))
		require.NoError(t, err)
		km, err := keygen.Generate(r, small)
		require.NoError(t, err)
		_, err = c.Encrypt(r, km.Public(), "отодно")
		assert.ErrorIs(t, err, group.ErrInvalidKey)
	})

	t.Run("PublicPointOffSubgroup", func(t *testing.T) {
		pub := km.Public()
		pub.Y = group.Point{}
		_, err := c.Encrypt(r, pub, "отодно")
		assert.ErrorIs(t, err, group.ErrInvalidKey)
	})
}

func TestZeroMaskExhaustsBudget(t *testing.T) {
	// On y² = x³ + x over F_37 the point (0,0) has order 2, so every mask
	// has x = 0.
	curve, err := group.New(bi(1), bi(0), bi(37))
	require.NoError(t, err)
	g, err := curve.NewPoint(bi(0), bi(0))
	require.NoError(t, err)
	km, err := keygen.FromPrivate(&keygen.Domain{Curve: curve, G: g, Q: bi(2), H: bi(1)}, bi(1))
	require.NoError(t, err)

	_, err = EncryptSymbol(km.Public(), 1, bi(1))
	assert.ErrorIs(t, err, ErrZeroMask)

	_, err = New(WithRetryBudget(4)).Encrypt(seeded("zero"), km.Public(), "а")
	assert.ErrorIs(t, err, keygen.ErrRetryBudgetExceeded)
}

func TestDecryptErrors(t *testing.T) {
	c := New()
	km := referenceKeys(t)

	// m = 38·6 mod 47 = 40 lies past the end of the alphabet.
	_, err := c.Decrypt(km.Curve, km.X, "((8,21),38)")
	assert.ErrorIs(t, err, alphabet.ErrInvalidIndex)

	_, err = c.Decrypt(km.Curve, km.X, "((8,21),0)")
	assert.ErrorIs(t, err, alphabet.ErrInvalidIndex)

	_, err = c.Decrypt(km.Curve, km.X, "((O),5)")
	assert.ErrorIs(t, err, ErrZeroMask)
	_, err = c.Decrypt(km.Curve, km.X, "((О),5)")
	assert.ErrorIs(t, err, ErrZeroMask)

	_, err = c.Decrypt(km.Curve, bi(0), referenceCiphertext)
	assert.ErrorIs(t, err, group.ErrInvalidKey)

	_, err = c.Decrypt(km.Curve, km.X, "  ")
	assert.ErrorIs(t, err, alphabet.ErrEmptyValue)
}

func TestParse(t *testing.T) {
	curve := referenceKeys(t).Curve

	values, err := Parse(curve, referenceCiphertext)
	require.NoError(t, err)
	require.Len(t, values, 6)
	assert.Equal(t, "(8,26)", values[3].R.String())
	assert.Equal(t, bi(40), values[3].C)
	assert.Equal(t, referenceCiphertext, Format(values))

	separated, err := Parse(curve, "((8,21),26), ((8,21),11)\n((8, 26), 40)")
	require.NoError(t, err)
	assert.Equal(t, "((8,21),26)((8,21),11)((8,26),40)", Format(separated))

	for _, bad := range []string{
		"(8,21),26",
		"((8,21),26",
		"((8,21)26)",
		"((8,21),x)",
		"((8,21),47)",
		"((8,21),-1)",
		"((8,20),26)",
		"((8,21),26)junk",
		"((8,21",
	} {
		_, err := Parse(curve, bad)
		assert.ErrorIs(t, err, ErrMalformedCiphertext, "%q", bad)
	}
}
