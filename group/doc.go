// Package group implements the elliptic-curve group over a prime field
// used by every scheme in this module.
//
// A [Curve] is the short Weierstrass curve
//
//	y² = x³ + a·x + b  (mod p)
//
// with p prime and 4a³ + 27b² ≢ 0 (mod p). Its elements are [Point] values:
// either the identity (the point at infinity, which is the zero value of
// Point) or an affine pair (x, y) on the curve.
//
// # Design
//
// Points are immutable values. Every operation lives on the Curve and
// returns a fresh Point:
//
//	c, _ := group.New(big.NewInt(2), big.NewInt(7), big.NewInt(47))
//	g, _ := c.NewPoint(big.NewInt(8), big.NewInt(26))
//	y := c.ScalarMult(g, big.NewInt(2)) // (8,21)
//
// Points are only created through a Curve, so a non-identity Point always
// satisfies the curve equation of the Curve that produced it. Mixing points
// of different curves is a caller error; [Curve.Contains] detects it.
//
// # Scalar multiplication convention
//
// ScalarMult follows the convention 1·P = P and n·P = P + P + … (n terms).
// 0·P is the identity and negative multiples use −P.
//
// # Security Considerations
//
// Arithmetic is variable-time *big.Int arithmetic in affine coordinates.
// The package is meant for teaching on small moduli and for checking
// results on named curves; it offers no side-channel protection.
package group
