package keygen

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/bits-and-blooms/bitset"

	"github.com/f3rmion/gciphers/group"
	"github.com/f3rmion/gciphers/internal/sampler"
	"github.com/f3rmion/gciphers/modarith"
)

// MaxEnumerationModulus is the largest field modulus EnumeratePoints
// accepts. Enumeration costs O(p) time and memory.
const MaxEnumerationModulus = 1 << 20

// Default modulus range of RandomCurve. Every prime in it exceeds the
// size of the default alphabet, as the point cipher requires.
const (
	DefaultMinModulus = 33
	DefaultMaxModulus = 61
)

// EnumeratePoints returns every affine point of c, ordered by x. For each
// x with x³ + ax + b a non-zero square, both (x, y) and (x, p−y) are listed.
func EnumeratePoints(c *group.Curve) ([]group.Point, error) {
	p := c.P()
	if !p.IsInt64() || p.Int64() > MaxEnumerationModulus {
		return nil, fmt.Errorf("%w: %s > %d", ErrModulusTooLarge, p, MaxEnumerationModulus)
	}
	n := p.Int64()
	a, b := c.A().Int64(), c.B().Int64()

	// residues marks the quadratic residues; roots[r] is the largest y
	// with y² ≡ r.
	residues := bitset.New(uint(n))
	roots := make([]int64, n)
	for y := int64(0); y < n; y++ {
		r := y * y % n
		residues.Set(uint(r))
		roots[r] = y
	}

	var points []group.Point
	for x := int64(0); x < n; x++ {
		f := (x*x%n*x%n + a*x%n + b) % n
		if !residues.Test(uint(f)) {
			continue
		}
		ys := []int64{roots[f]}
		if roots[f] != 0 {
			ys = append(ys, n-roots[f])
		}
		for _, y := range ys {
			pt, err := c.NewPoint(big.NewInt(x), big.NewInt(y))
			if err != nil {
				return nil, err
			}
			points = append(points, pt)
		}
	}
	return points, nil
}

// GroupOrder returns the order of the full curve group: the affine points
// plus the identity.
func GroupOrder(points []group.Point) *big.Int {
	return big.NewInt(int64(len(points) + 1))
}

// ChooseSubgroupOrder returns the largest prime i in [3, n) that divides
// n, or n itself when there is none. This is a heuristic: it never picks 2,
// and a composite n without such a divisor is returned unchanged. n must
// fit in an int64; larger values are returned as is.
func ChooseSubgroupOrder(n *big.Int) *big.Int {
	if !n.IsInt64() {
		return new(big.Int).Set(n)
	}
	v := n.Int64()
	for i := v - 1; i >= 3; i-- {
		if v%i == 0 && modarith.IsPrime(big.NewInt(i)) {
			return big.NewInt(i)
		}
	}
	return new(big.Int).Set(n)
}

// Cofactor returns h = n/q.
func Cofactor(n, q *big.Int) *big.Int {
	return new(big.Int).Quo(n, q)
}

// ChooseGenerator samples points uniformly and returns the first h·P that
// is not the identity.
func ChooseGenerator(r io.Reader, c *group.Curve, points []group.Point, h *big.Int, opts ...Option) (group.Point, error) {
	if len(points) == 0 {
		return group.Point{}, ErrEmptyPointSet
	}
	cfg := newConfig(opts)

	var g group.Point
	err := sampler.Retry(cfg.budget, func() (bool, error) {
		i, err := sampler.Index(r, len(points))
		if err != nil {
			return false, err
		}
		g = c.ScalarMult(points[i], h)
		return !g.IsIdentity(), nil
	})
	if err != nil {
		return group.Point{}, fmt.Errorf("failed to choose generator: %w", err)
	}
	return g, nil
}

// DeriveDomain enumerates c and derives the subgroup order, cofactor and a
// generator.
func DeriveDomain(r io.Reader, c *group.Curve, opts ...Option) (*Domain, error) {
	points, err := EnumeratePoints(c)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPointSet, c)
	}
	n := GroupOrder(points)
	q := ChooseSubgroupOrder(n)
	h := Cofactor(n, q)

	g, err := ChooseGenerator(r, c, points, h, opts...)
	if err != nil {
		return nil, err
	}
	return &Domain{Curve: c, G: g, Q: q, H: h}, nil
}

// RandomCurve draws a prime p from [lo, hi) and coefficients a, b from
// [1, p) until the curve is non-singular.
func RandomCurve(r io.Reader, lo, hi int64, opts ...Option) (*group.Curve, error) {
	if lo < 2 || hi <= lo {
		return nil, fmt.Errorf("%w: empty modulus range [%d, %d)", group.ErrInvalidKey, lo, hi)
	}
	cfg := newConfig(opts)

	var p *big.Int
	err := sampler.Retry(cfg.budget, func() (bool, error) {
		v, err := sampler.Between(r, big.NewInt(lo), big.NewInt(hi))
		if err != nil {
			return false, err
		}
		p = v
		return modarith.IsPrime(p), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to choose modulus: %w", err)
	}

	var c *group.Curve
	err = sampler.Retry(cfg.budget, func() (bool, error) {
		// p = 2 leaves a single candidate, so sample from [1, p) only when
		// the range is not empty.
		a, err := coefficient(r, p)
		if err != nil {
			return false, err
		}
		b, err := coefficient(r, p)
		if err != nil {
			return false, err
		}
		c, err = group.New(a, b, p)
		return err == nil, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to choose coefficients: %w", err)
	}
	return c, nil
}

// RandomDomain draws random curves with p in [lo, hi) until one yields a
// domain. A curve without points, or one whose cofactor sends every sampled
// point to the identity, is replaced by a fresh draw.
func RandomDomain(r io.Reader, lo, hi int64, opts ...Option) (*Domain, error) {
	cfg := newConfig(opts)

	var d *Domain
	err := sampler.Retry(cfg.budget, func() (bool, error) {
		c, err := RandomCurve(r, lo, hi, opts...)
		if err != nil {
			return false, err
		}
		d, err = DeriveDomain(r, c, opts...)
		if errors.Is(err, ErrEmptyPointSet) || errors.Is(err, ErrRetryBudgetExceeded) {
			return false, nil
		}
		return err == nil, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to derive a random domain: %w", err)
	}
	return d, nil
}

func coefficient(r io.Reader, p *big.Int) (*big.Int, error) {
	if p.Cmp(big.NewInt(2)) <= 0 {
		return big.NewInt(1), nil
	}
	return sampler.Scalar(r, p)
}
