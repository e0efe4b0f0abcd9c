package group

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/f3rmion/gciphers/modarith"
)

var (
	// ErrInvalidCurve is returned when 4a³ + 27b² ≡ 0 (mod p).
	ErrInvalidCurve = errors.New("curve is singular: 4a^3 + 27b^2 = 0 mod p")

	// ErrInvalidKey is returned when a key or parameter violates a scheme
	// precondition, such as a composite field modulus.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidPoint is returned for coordinates that are out of range or
	// do not satisfy the curve equation.
	ErrInvalidPoint = errors.New("point is not on the curve")
)

var (
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// Curve is y² = x³ + ax + b over GF(p). Create curves with [New].
type Curve struct {
	a, b, p *big.Int
}

// CheckNonSingular returns ErrInvalidCurve unless 4a³ + 27b² ≢ 0 (mod p).
// A singular curve has no group structure and must not be used for keys.
func CheckNonSingular(a, b, p *big.Int) error {
	if p.Sign() <= 0 {
		return fmt.Errorf("%w: modulus %s is not positive", ErrInvalidKey, p)
	}
	a3 := new(big.Int).Exp(a, three, nil)
	a3.Mul(a3, big.NewInt(4))
	b2 := new(big.Int).Mul(b, b)
	b2.Mul(b2, big.NewInt(27))
	if modarith.Mod(a3.Add(a3, b2), p).Sign() == 0 {
		return fmt.Errorf("%w (a=%s, b=%s, p=%s)", ErrInvalidCurve, a, b, p)
	}
	return nil
}

// New validates (a, b, p) and returns the curve. The non-singularity check
// comes first (ErrInvalidCurve), then the primality of p (ErrInvalidKey).
// a and b are reduced modulo p.
func New(a, b, p *big.Int) (*Curve, error) {
	if err := CheckNonSingular(a, b, p); err != nil {
		return nil, err
	}
	if !modarith.IsPrime(p) {
		return nil, fmt.Errorf("%w: modulus %s is not prime", ErrInvalidKey, p)
	}
	return &Curve{
		a: modarith.Mod(a, p),
		b: modarith.Mod(b, p),
		p: new(big.Int).Set(p),
	}, nil
}

// A returns a copy of the coefficient a.
func (c *Curve) A() *big.Int { return new(big.Int).Set(c.a) }

// B returns a copy of the coefficient b.
func (c *Curve) B() *big.Int { return new(big.Int).Set(c.b) }

// P returns a copy of the field modulus.
func (c *Curve) P() *big.Int { return new(big.Int).Set(c.p) }

// Equal reports whether c and d describe the same curve.
func (c *Curve) Equal(d *Curve) bool {
	return c.a.Cmp(d.a) == 0 && c.b.Cmp(d.b) == 0 && c.p.Cmp(d.p) == 0
}

func (c *Curve) String() string {
	return fmt.Sprintf("y^2 = x^3 + %sx + %s (mod %s)", c.a, c.b, c.p)
}

// Identity returns the point at infinity.
func (c *Curve) Identity() Point {
	return Point{}
}

// rhs returns x³ + ax + b mod p.
func (c *Curve) rhs(x *big.Int) *big.Int {
	v := new(big.Int).Exp(x, three, c.p)
	v.Add(v, new(big.Int).Mul(c.a, x))
	v.Add(v, c.b)
	return v.Mod(v, c.p)
}

// Contains reports whether p lies on the curve. The identity always does.
func (c *Curve) Contains(p Point) bool {
	if p.IsIdentity() {
		return true
	}
	if !c.inField(p.x) || !c.inField(p.y) {
		return false
	}
	y2 := new(big.Int).Exp(p.y, two, c.p)
	return y2.Cmp(c.rhs(p.x)) == 0
}

func (c *Curve) inField(v *big.Int) bool {
	return v.Sign() >= 0 && v.Cmp(c.p) < 0
}

// NewPoint returns the affine point (x, y). Coordinates must already be in
// [0, p) and satisfy the curve equation.
func (c *Curve) NewPoint(x, y *big.Int) (Point, error) {
	pt := affine(new(big.Int).Set(x), new(big.Int).Set(y))
	if !c.Contains(pt) {
		return Point{}, fmt.Errorf("%w: %s on %s", ErrInvalidPoint, pt, c)
	}
	return pt, nil
}

// Neg returns -p.
func (c *Curve) Neg(p Point) Point {
	if p.IsIdentity() {
		return p
	}
	return affine(p.X(), modarith.Mod(new(big.Int).Neg(p.y), c.p))
}

// Add returns p + q. Both points must lie on c; Point does not record its
// curve, so points of another curve give a meaningless result. Coordinates
// are compared mod p, which keeps every slope denominator invertible.
func (c *Curve) Add(p, q Point) Point {
	switch {
	case p.IsIdentity():
		return q
	case q.IsIdentity():
		return p
	}
	sameX := modarith.Mod(p.x, c.p).Cmp(modarith.Mod(q.x, c.p)) == 0
	switch {
	case sameX && modarith.Mod(p.y, c.p).Cmp(modarith.Mod(q.y, c.p)) == 0:
		return c.Double(p)
	case sameX:
		// q = -p: the secant is vertical.
		return Point{}
	}
	num := new(big.Int).Sub(q.y, p.y)
	den := new(big.Int).Sub(q.x, p.x)
	return c.chord(p, q, c.div(num, den))
}

// Double returns p + p.
func (c *Curve) Double(p Point) Point {
	if p.IsIdentity() {
		return p
	}
	den := new(big.Int).Mul(p.y, two)
	if modarith.Mod(den, c.p).Sign() == 0 {
		// Vertical tangent; over F_2 every tangent is treated as vertical.
		return Point{}
	}
	num := new(big.Int).Mul(p.x, p.x)
	num.Mul(num, three)
	num.Add(num, c.a)
	return c.chord(p, p, c.div(num, den))
}

// chord completes an addition given the slope of the line through p and q.
func (c *Curve) chord(p, q Point, lambda *big.Int) Point {
	x := new(big.Int).Mul(lambda, lambda)
	x.Sub(x, p.x)
	x.Sub(x, q.x)
	x.Mod(x, c.p)

	y := new(big.Int).Sub(p.x, x)
	y.Mul(y, lambda)
	y.Sub(y, p.y)
	y.Mod(y, c.p)
	return affine(x, y)
}

// div returns num/den mod p. den is never 0 mod p here: Add and Double
// return the identity for vertical lines before computing a slope.
func (c *Curve) div(num, den *big.Int) *big.Int {
	inv, err := modarith.Inverse(den, c.p)
	if err != nil {
		panic(fmt.Sprintf("group: slope denominator %s not invertible mod %s", den, c.p))
	}
	v := new(big.Int).Mul(num, inv)
	return v.Mod(v, c.p)
}

// ScalarMult returns n·p with 1·p = p. Zero gives the identity and a
// negative n multiplies -p. As with Add, p must lie on c.
func (c *Curve) ScalarMult(p Point, n *big.Int) Point {
	switch n.Sign() {
	case 0:
		return Point{}
	case -1:
		return c.ScalarMult(c.Neg(p), new(big.Int).Neg(n))
	}
	if p.IsIdentity() {
		return p
	}
	// Left-to-right double-and-add, starting from p for the top bit.
	result := p
	for i := n.BitLen() - 2; i >= 0; i-- {
		result = c.Double(result)
		if n.Bit(i) == 1 {
			result = c.Add(result, p)
		}
	}
	return result
}
