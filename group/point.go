package group

import (
	"fmt"
	"math/big"
)

// IdentitySymbol is the text form of the identity point, with a Cyrillic О.
const IdentitySymbol = "(О)"

// latinIdentitySymbol is accepted by ParsePoint as well.
const latinIdentitySymbol = "(O)"

// Point is an element of a curve group. The zero value is the identity.
type Point struct {
	x, y *big.Int
}

// IsIdentity reports whether p is the point at infinity.
func (p Point) IsIdentity() bool {
	return p.x == nil
}

// X returns a copy of the x-coordinate, or nil for the identity.
func (p Point) X() *big.Int {
	if p.IsIdentity() {
		return nil
	}
	return new(big.Int).Set(p.x)
}

// Y returns a copy of the y-coordinate, or nil for the identity.
func (p Point) Y() *big.Int {
	if p.IsIdentity() {
		return nil
	}
	return new(big.Int).Set(p.y)
}

// Equal reports whether p and q are the same point.
func (p Point) Equal(q Point) bool {
	if p.IsIdentity() || q.IsIdentity() {
		return p.IsIdentity() == q.IsIdentity()
	}
	return p.x.Cmp(q.x) == 0 && p.y.Cmp(q.y) == 0
}

// String returns "(x,y)", or IdentitySymbol for the identity.
func (p Point) String() string {
	if p.IsIdentity() {
		return IdentitySymbol
	}
	return fmt.Sprintf("(%s,%s)", p.x, p.y)
}

func affine(x, y *big.Int) Point {
	return Point{x: x, y: y}
}
