// Package modarith provides the integer arithmetic modulo n used by the
// curve engine.
//
// All functions allocate their result and never modify their arguments.
package modarith

import (
	"errors"
	"math/big"
)

var (
	// ErrNoInverse is returned when the value and the modulus are not coprime.
	ErrNoInverse = errors.New("value has no inverse modulo n")

	// ErrInvalidModulus is returned for a modulus smaller than 2.
	ErrInvalidModulus = errors.New("modulus must be at least 2")

	// ErrNegativeExponent is returned by PowMod for exponents below zero.
	ErrNegativeExponent = errors.New("exponent must not be negative")
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Mod returns value mod modulus in [0, modulus). Negative values wrap
// around instead of truncating toward zero. modulus must be positive.
func Mod(value, modulus *big.Int) *big.Int {
	// big.Int.Mod is Euclidean: the result is never negative for modulus > 0.
	return new(big.Int).Mod(value, modulus)
}

// PowMod returns base^exponent mod modulus.
func PowMod(base, exponent, modulus *big.Int) (*big.Int, error) {
	if modulus.Cmp(two) < 0 {
		return nil, ErrInvalidModulus
	}
	if exponent.Sign() < 0 {
		return nil, ErrNegativeExponent
	}
	return new(big.Int).Exp(Mod(base, modulus), exponent, modulus), nil
}

// Inverse returns the multiplicative inverse of value modulo modulus using
// the extended Euclidean algorithm. It fails with ErrNoInverse when
// gcd(value, modulus) != 1.
func Inverse(value, modulus *big.Int) (*big.Int, error) {
	if modulus.Cmp(two) < 0 {
		return nil, ErrInvalidModulus
	}
	v := Mod(value, modulus)
	if v.Sign() == 0 {
		return nil, ErrNoInverse
	}
	x := new(big.Int)
	d := new(big.Int).GCD(x, nil, v, modulus)
	if d.Cmp(one) != 0 {
		return nil, ErrNoInverse
	}
	return x.Mod(x, modulus), nil
}

// InverseFermat returns value^(p-2) mod p, the inverse of value for a
// prime p. The result is meaningless when p is composite.
func InverseFermat(value, p *big.Int) (*big.Int, error) {
	if p.Cmp(two) < 0 {
		return nil, ErrInvalidModulus
	}
	v := Mod(value, p)
	if v.Sign() == 0 {
		return nil, ErrNoInverse
	}
	return new(big.Int).Exp(v, new(big.Int).Sub(p, two), p), nil
}

// IsPrime reports whether n is prime. The answer is exact for n < 2^64.
func IsPrime(n *big.Int) bool {
	if n.Sign() <= 0 {
		return false
	}
	return n.ProbablyPrime(20)
}
