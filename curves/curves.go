// Package curves provides real-size domains whose parameters come from
// established curve libraries.
//
// The toy domains of the keygen package are found by enumerating every
// point, which is impossible at cryptographic sizes. The domains here take
// p, a, b, the generator and its prime order straight from their library
// backends:
//
//   - secp256k1: y² = x³ + 7, from github.com/decred/dcrd/dcrec/secp256k1/v4
//   - bn254: the G1 group y² = x³ + 3 of the BN254 pairing curve, from
//     github.com/consensys/gnark-crypto/ecc/bn254
//
// Both have cofactor 1. A domain plugs into [keygen.NewKeyMaterial], the
// point cipher and the signature scheme like any other.
package curves

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/f3rmion/gciphers/group"
	"github.com/f3rmion/gciphers/keygen"
)

// Curve names accepted by ByName.
const (
	NameSecp256k1 = "secp256k1"
	NameBN254     = "bn254"
)

// ErrUnknownCurve is returned by ByName for names it does not know.
var ErrUnknownCurve = errors.New("unknown curve")

var (
	secp256k1Domain = sync.OnceValue(func() *keygen.Domain {
		params := secp256k1.S256().Params()
		return mustDomain(NameSecp256k1, big.NewInt(0), params.B, params.P, params.Gx, params.Gy, params.N)
	})

	bn254Domain = sync.OnceValue(func() *keygen.Domain {
		_, _, g1, _ := bn254.Generators()
		gx := g1.X.BigInt(new(big.Int))
		gy := g1.Y.BigInt(new(big.Int))
		return mustDomain(NameBN254, big.NewInt(0), big.NewInt(3), fp.Modulus(), gx, gy, fr.Modulus())
	})
)

var registry = map[string]func() *keygen.Domain{
	NameSecp256k1: Secp256k1,
	NameBN254:     BN254,
}

// mustDomain panics on failure: the parameters are library constants.
func mustDomain(name string, a, b, p, gx, gy, q *big.Int) *keygen.Domain {
	c, err := group.New(a, b, p)
	if err != nil {
		panic(fmt.Sprintf("curves: %s: %v", name, err))
	}
	g, err := c.NewPoint(gx, gy)
	if err != nil {
		panic(fmt.Sprintf("curves: %s generator: %v", name, err))
	}
	d := &keygen.Domain{Curve: c, G: g, Q: new(big.Int).Set(q), H: big.NewInt(1)}
	if err := d.Validate(); err != nil {
		panic(fmt.Sprintf("curves: %s: %v", name, err))
	}
	return d
}

func clone(d *keygen.Domain) *keygen.Domain {
	return &keygen.Domain{
		Curve: d.Curve,
		G:     d.G,
		Q:     new(big.Int).Set(d.Q),
		H:     new(big.Int).Set(d.H),
	}
}

// Secp256k1 returns the secp256k1 domain.
func Secp256k1() *keygen.Domain { return clone(secp256k1Domain()) }

// BN254 returns the domain of the BN254 G1 group.
func BN254() *keygen.Domain { return clone(bn254Domain()) }

// ByName returns the domain registered under name, ignoring case.
func ByName(name string) (*keygen.Domain, error) {
	fn, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
	}
	return fn(), nil
}

// Names returns the registered curve names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
