package gost

import (
	"crypto/sha256"
	"math/big"

	"golang.org/x/crypto/blake2b"

	"github.com/f3rmion/gciphers/alphabet"
)

// Hasher reduces a message to an integer modulo m.
// Implementations may return 0; the Signer maps it to 1.
type Hasher interface {
	Hash(message string, m *big.Int) (*big.Int, error)
}

// SquareHasher is the toy hash h = (h + v)² mod m, folded over the
// alphabet values v of the message. It is NOT collision resistant: two
// messages collide with probability about 1/m and preimages are trivial.
// It exists for the classroom vectors and must not protect anything.
type SquareHasher struct {
	// Alphabet maps symbols to values. Nil selects the default alphabet.
	Alphabet *alphabet.Alphabet
}

// Hash implements Hasher. Only alphabet symbols are accepted.
func (h *SquareHasher) Hash(message string, m *big.Int) (*big.Int, error) {
	a := h.Alphabet
	if a == nil {
		a = alphabet.New()
	}
	values, err := a.Values(message)
	if err != nil {
		return nil, err
	}
	acc := new(big.Int)
	for _, v := range values {
		acc.Add(acc, big.NewInt(int64(v)))
		acc.Mul(acc, acc)
		acc.Mod(acc, m)
	}
	return acc, nil
}

// SHA256Hasher hashes the UTF-8 message with SHA-256 and reduces the
// big-endian digest modulo m.
type SHA256Hasher struct{}

// Hash implements Hasher.
func (h *SHA256Hasher) Hash(message string, m *big.Int) (*big.Int, error) {
	digest := sha256.Sum256([]byte(message))
	return reduce(digest[:], m), nil
}

// Blake2bHasher hashes Prefix followed by the UTF-8 message with
// BLAKE2b-512 and reduces the big-endian digest modulo m.
type Blake2bHasher struct {
	// Prefix is the domain separation prefix.
	Prefix string
}

// NewBlake2bHasher creates a Blake2bHasher with the default prefix.
func NewBlake2bHasher() *Blake2bHasher {
	return &Blake2bHasher{Prefix: "GCIPHERS-GOST-BLAKE2B-v1"}
}

// Hash implements Hasher.
func (h *Blake2bHasher) Hash(message string, m *big.Int) (*big.Int, error) {
	hasher, err := blake2b.New512(nil)
	if err != nil {
		return nil, err
	}
	hasher.Write([]byte(h.Prefix))
	hasher.Write([]byte(message))
	return reduce(hasher.Sum(nil), m), nil
}

func reduce(digest []byte, m *big.Int) *big.Int {
	v := new(big.Int).SetBytes(digest)
	return v.Mod(v, m)
}

// HasherByName returns the hasher for "square", "sha256" or "blake2b".
func HasherByName(name string) (Hasher, bool) {
	switch name {
	case "square", "":
		return &SquareHasher{}, true
	case "sha256":
		return &SHA256Hasher{}, true
	case "blake2b":
		return NewBlake2bHasher(), true
	}
	return nil, false
}
