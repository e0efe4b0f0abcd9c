package group

import (
	"fmt"
	"math/big"
	"strings"
)

const (
	tagIdentity     = 0x00
	tagUncompressed = 0x04
)

// ByteLen returns the width of one encoded coordinate.
func (c *Curve) ByteLen() int {
	return (c.p.BitLen() + 7) / 8
}

// Bytes encodes p as 0x04 ‖ X ‖ Y with fixed-width big-endian coordinates,
// or as the single byte 0x00 for the identity.
func (c *Curve) Bytes(p Point) []byte {
	if p.IsIdentity() {
		return []byte{tagIdentity}
	}
	n := c.ByteLen()
	out := make([]byte, 1+2*n)
	out[0] = tagUncompressed
	p.x.FillBytes(out[1 : 1+n])
	p.y.FillBytes(out[1+n:])
	return out
}

// SetBytes decodes a point produced by Bytes and checks it is on the curve.
func (c *Curve) SetBytes(data []byte) (Point, error) {
	if len(data) == 1 && data[0] == tagIdentity {
		return Point{}, nil
	}
	n := c.ByteLen()
	if len(data) != 1+2*n || data[0] != tagUncompressed {
		return Point{}, fmt.Errorf("%w: malformed encoding of %d bytes", ErrInvalidPoint, len(data))
	}
	x := new(big.Int).SetBytes(data[1 : 1+n])
	y := new(big.Int).SetBytes(data[1+n:])
	return c.NewPoint(x, y)
}

// ParsePoint reads the text form produced by Point.String: "(x,y)" or
// IdentitySymbol. The identity may also be written with a Latin O.
// Surrounding whitespace is ignored.
func (c *Curve) ParsePoint(s string) (Point, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, IdentitySymbol) || strings.EqualFold(s, latinIdentitySymbol) {
		return Point{}, nil
	}
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return Point{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidPoint, s)
	}
	parts := strings.Split(s[1:len(s)-1], ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidPoint, s)
	}
	x, ok := new(big.Int).SetString(strings.TrimSpace(parts[0]), 10)
	if !ok {
		return Point{}, fmt.Errorf("%w: bad x-coordinate in %q", ErrInvalidPoint, s)
	}
	y, ok := new(big.Int).SetString(strings.TrimSpace(parts[1]), 10)
	if !ok {
		return Point{}, fmt.Errorf("%w: bad y-coordinate in %q", ErrInvalidPoint, s)
	}
	return c.NewPoint(x, y)
}
