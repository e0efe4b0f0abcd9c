// Package pointcipher implements per-symbol ElGamal-style encryption over
// a [group.Curve].
//
// Each plaintext symbol becomes its alphabet position m in [1, N]. With a
// fresh ephemeral scalar k the sender computes R = k·G and the mask
// S = k·Y, then publishes (R, m·S.x mod p). The holder of x recovers
// S = x·R and divides the mask out again.
//
// Every symbol is encrypted independently, so equal symbols encrypted with
// equal nonces give equal ciphertext values. On the toy curves this is a
// demonstration of the arithmetic, not a confidential channel.
package pointcipher

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/f3rmion/gciphers/alphabet"
	"github.com/f3rmion/gciphers/group"
	"github.com/f3rmion/gciphers/internal/sampler"
	"github.com/f3rmion/gciphers/keygen"
	"github.com/f3rmion/gciphers/modarith"
)

// ErrZeroMask is returned when a mask point is the identity or has
// x-coordinate 0, which would erase the symbol value.
var ErrZeroMask = errors.New("mask point has no usable x-coordinate")

// CipherValue is the encryption of one symbol.
type CipherValue struct {
	R group.Point // ephemeral share k·G
	C *big.Int    // m·S.x mod p
}

// Cipher encrypts and decrypts alphabet text. The zero value is not usable;
// create one with New.
type Cipher struct {
	alphabet *alphabet.Alphabet
	budget   int
}

// Option configures a Cipher.
type Option func(*Cipher)

// WithAlphabet replaces the default alphabet.
func WithAlphabet(a *alphabet.Alphabet) Option {
	return func(c *Cipher) {
		c.alphabet = a
	}
}

// WithRetryBudget caps how many nonces are tried per symbol.
func WithRetryBudget(n int) Option {
	return func(c *Cipher) {
		c.budget = n
	}
}

// New returns a Cipher over the default alphabet.
func New(opts ...Option) *Cipher {
	c := &Cipher{
		alphabet: alphabet.New(),
		budget:   sampler.DefaultBudget,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Alphabet returns the alphabet c maps symbols through.
func (c *Cipher) Alphabet() *alphabet.Alphabet {
	return c.alphabet
}

// EncryptSymbol encrypts the value m with the nonce k. It does not
// validate pub; callers that accept external keys use Encrypt.
func EncryptSymbol(pub *keygen.PublicKey, m int64, k *big.Int) (CipherValue, error) {
	curve := pub.Curve
	s := curve.ScalarMult(pub.Y, k)
	if s.IsIdentity() || s.X().Sign() == 0 {
		return CipherValue{}, ErrZeroMask
	}
	c := new(big.Int).Mul(big.NewInt(m), s.X())
	return CipherValue{
		R: curve.ScalarMult(pub.G, k),
		C: c.Mod(c, curve.P()),
	}, nil
}

// EncryptValues encrypts each value with its own nonce drawn from [1, q).
// Nonces that give a zero mask are redrawn.
func (c *Cipher) EncryptValues(r io.Reader, pub *keygen.PublicKey, ms []int64) ([]CipherValue, error) {
	out := make([]CipherValue, 0, len(ms))
	for i, m := range ms {
		var v CipherValue
		err := sampler.Retry(c.budget, func() (bool, error) {
			k, err := sampler.Scalar(r, pub.Q)
			if err != nil {
				return false, err
			}
			v, err = EncryptSymbol(pub, m, k)
			if errors.Is(err, ErrZeroMask) {
				return false, nil
			}
			return err == nil, err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt symbol %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Encrypt validates plaintext and pub, then encrypts every symbol and
// returns the formatted ciphertext. No output is produced on error.
func (c *Cipher) Encrypt(r io.Reader, pub *keygen.PublicKey, plaintext string) (string, error) {
	if err := c.alphabet.ValidatePhrase("plaintext", plaintext); err != nil {
		return "", err
	}
	if err := c.checkKey(pub); err != nil {
		return "", err
	}
	values, err := c.alphabet.Values(plaintext)
	if err != nil {
		return "", err
	}
	ms := make([]int64, len(values))
	for i, v := range values {
		ms[i] = int64(v)
	}
	out, err := c.EncryptValues(r, pub, ms)
	if err != nil {
		return "", err
	}
	return Format(out), nil
}

// checkKey requires a valid public key on a field larger than the
// alphabet, so that distinct symbols stay distinct and invertible mod p.
func (c *Cipher) checkKey(pub *keygen.PublicKey) error {
	if pub == nil {
		return fmt.Errorf("%w: public key is missing", group.ErrInvalidKey)
	}
	if err := pub.Validate(); err != nil {
		return err
	}
	if pub.Curve.P().Cmp(big.NewInt(int64(c.alphabet.Len()))) <= 0 {
		return fmt.Errorf("%w: modulus %s does not exceed the alphabet size %d",
			group.ErrInvalidKey, pub.Curve.P(), c.alphabet.Len())
	}
	return nil
}

// DecryptValue recovers m = C·(x·R).x⁻¹ mod p. The inverse uses Fermat's
// little theorem, which holds because curves have prime moduli.
func DecryptValue(curve *group.Curve, x *big.Int, v CipherValue) (*big.Int, error) {
	s := curve.ScalarMult(v.R, x)
	if s.IsIdentity() || s.X().Sign() == 0 {
		return nil, fmt.Errorf("%w: cannot unmask R=%s", ErrZeroMask, v.R)
	}
	inv, err := modarith.InverseFermat(s.X(), curve.P())
	if err != nil {
		return nil, err
	}
	m := new(big.Int).Mul(v.C, inv)
	return m.Mod(m, curve.P()), nil
}

// Decrypt parses ciphertext and maps every recovered value back through
// the alphabet.
func (c *Cipher) Decrypt(curve *group.Curve, x *big.Int, ciphertext string) (string, error) {
	if x == nil || x.Sign() <= 0 {
		return "", fmt.Errorf("%w: private scalar must be positive", group.ErrInvalidKey)
	}
	values, err := Parse(curve, ciphertext)
	if err != nil {
		return "", err
	}
	out := make([]rune, 0, len(values))
	for i, v := range values {
		m, err := DecryptValue(curve, x, v)
		if err != nil {
			return "", fmt.Errorf("failed to decrypt symbol %d: %w", i, err)
		}
		if !m.IsInt64() || m.Int64() > int64(c.alphabet.Len()) {
			return "", fmt.Errorf("%w: %s", alphabet.ErrInvalidIndex, m)
		}
		sym, err := c.alphabet.Symbol(int(m.Int64()) - 1)
		if err != nil {
			return "", err
		}
		out = append(out, sym)
	}
	return string(out), nil
}
