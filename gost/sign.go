package gost

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

// ErrWeakNonce is returned by SignDigest for a nonce k whose point k·G is
// the identity or yields r = 0.
var ErrWeakNonce = errors.New("nonce yields a degenerate signature")

// Signer signs and verifies messages. Create one with New.
type Signer struct {
	hasher Hasher
	budget int
}

// Option configures a Signer.
type Option func(*Signer)

// WithHasher replaces the default SquareHasher.
func WithHasher(h Hasher) Option {
	return func(s *Signer) {
		s.hasher = h
	}
}

// WithRetryBudget caps how many nonces Sign tries.
func WithRetryBudget(n int) Option {
	return func(s *Signer) {
		s.budget = n
	}
}

// New returns a Signer using the square hash.
func New(opts ...Option) *Signer {
	s := &Signer{
		hasher: &SquareHasher{},
		budget: sampler.DefaultBudget,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Digest hashes message modulo m. A zero hash is replaced by 1.
func (s *Signer) Digest(message string, m *big.Int) (*big.Int, error) {
	if message == "" {
		return nil, &alphabet.EmptyValueError{Field: "message"}
	}
	if m == nil || m.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("%w: hash modulus must be at least 2", group.ErrInvalidKey)
	}
	h, err := s.hasher.Hash(message, m)
	if err != nil {
		return nil, err
	}
	if h.Sign() == 0 {
		h.SetInt64(1)
	}
	return h, nil
}

// reduceDigest maps the digest h to e = h mod q. A value without inverse
// mod q, zero in particular, becomes 1, so signer and verifier agree.
func reduceDigest(h, q *big.Int) (e, inv *big.Int) {
	e = new(big.Int).Mod(h, q)
	inv, err := modarith.Inverse(e, q)
	if err != nil {
		return big.NewInt(1), big.NewInt(1)
	}
	return e, inv
}

// SignDigest signs the digest h with the nonce k.
func SignDigest(key *keygen.KeyMaterial, h, k *big.Int) (Signature, error) {
	p := key.Curve.ScalarMult(key.G, k)
	if p.IsIdentity() || p.X().Sign() == 0 {
		return Signature{}, ErrWeakNonce
	}
	r := new(big.Int).Mod(p.X(), key.Q)
	if r.Sign() == 0 {
		return Signature{}, ErrWeakNonce
	}
	e, _ := reduceDigest(h, key.Q)
	ke := new(big.Int).Mul(k, e)
	rx := new(big.Int).Mul(r, key.X)
	sv := ke.Add(ke, rx)
	return Signature{R: r, S: sv.Mod(sv, key.Q)}, nil
}

// Sign hashes message modulo m and signs it with a fresh nonce.
func (s *Signer) Sign(rng io.Reader, key *keygen.KeyMaterial, message string, m *big.Int) (Signature, error) {
	h, err := s.Digest(message, m)
	if err != nil {
		return Signature{}, err
	}
	if err := key.Validate(); err != nil {
		return Signature{}, err
	}

	var sig Signature
	err = sampler.Retry(s.budget, func() (bool, error) {
		k, err := sampler.Scalar(rng, key.Q)
		if err != nil {
			return false, err
		}
		sig, err = SignDigest(key, h, k)
		if errors.Is(err, ErrWeakNonce) {
			return false, nil
		}
		return err == nil, err
	})
	if err != nil {
		return Signature{}, fmt.Errorf("failed to sign: %w", err)
	}
	return sig, nil
}

// VerifyDigest checks sig against the digest h.
func VerifyDigest(pub *keygen.PublicKey, h *big.Int, sig Signature) bool {
	q := pub.Q
	if sig.R == nil || sig.S == nil {
		return false
	}
	if sig.R.Sign() <= 0 || sig.R.Cmp(q) >= 0 || sig.S.Sign() < 0 || sig.S.Cmp(q) >= 0 {
		return false
	}
	_, hinv := reduceDigest(h, q)

	u1 := new(big.Int).Mul(sig.S, hinv)
	u1.Mod(u1, q)
	u2 := new(big.Int).Mul(sig.R, hinv)
	u2.Neg(u2).Mod(u2, q)

	c := pub.Curve
	p := c.Add(c.ScalarMult(pub.G, u1), c.ScalarMult(pub.Y, u2))
	if p.IsIdentity() {
		return false
	}
	return new(big.Int).Mod(p.X(), q).Cmp(sig.R) == 0
}

// Verify reports whether sig is a valid signature of message under pub.
// Invalid signatures give false; errors mean malformed input.
func (s *Signer) Verify(pub *keygen.PublicKey, message string, sig Signature, m *big.Int) (bool, error) {
	h, err := s.Digest(message, m)
	if err != nil {
		return false, err
	}
	if pub == nil {
		return false, fmt.Errorf("%w: public key is missing", group.ErrInvalidKey)
	}
	if err := pub.Validate(); err != nil {
		return false, err
	}
	return VerifyDigest(pub, h, sig), nil
}
