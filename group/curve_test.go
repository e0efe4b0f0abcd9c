package group

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bi(v int64) *big.Int { return big.NewInt(v) }

func mustCurve(t *testing.T, a, b, p int64) *Curve {
	t.Helper()
	c, err := New(bi(a), bi(b), bi(p))
	require.NoError(t, err)
	return c
}

func pt(t *testing.T, c *Curve, x, y int64) Point {
	t.Helper()
	p, err := c.NewPoint(bi(x), bi(y))
	require.NoError(t, err)
	return p
}

// affinePoints lists E(F_11) for y² = x³ + 3x + 4 without the identity.
var affinePoints = [][2]int64{
	{0, 2}, {0, 9}, {4, 5}, {4, 6}, {5, 1}, {5, 10}, {7, 4},
	{7, 7}, {8, 1}, {8, 10}, {9, 1}, {9, 10}, {10, 0},
}

func smallGroup(t *testing.T) (*Curve, []Point) {
	c := mustCurve(t, 3, 4, 11)
	pts := []Point{c.Identity()}
	for _, xy := range affinePoints {
		pts = append(pts, pt(t, c, xy[0], xy[1]))
	}
	return c, pts
}

// repeatedAdd is the literal definition: start at p and add p n-1 times.
func repeatedAdd(c *Curve, p Point, n int) Point {
	result := p
	for i := 1; i < n; i++ {
		result = c.Add(result, p)
	}
	return result
}

func TestNew(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		c := mustCurve(t, -1, 15, 11)
		assert.Equal(t, bi(10), c.A())
		assert.Equal(t, bi(4), c.B())
		assert.Equal(t, bi(11), c.P())
	})

	t.Run("Singular", func(t *testing.T) {
		_, err := New(bi(0), bi(0), bi(11))
		assert.ErrorIs(t, err, ErrInvalidCurve)

		// 4(-3)³ + 27·2² = 0 for every p.
		_, err = New(bi(-3), bi(2), bi(47))
		assert.ErrorIs(t, err, ErrInvalidCurve)
		assert.ErrorIs(t, CheckNonSingular(bi(-3), bi(2), bi(47)), ErrInvalidCurve)
	})

	t.Run("SingularModP", func(t *testing.T) {
		// 4·1 + 27·1 = 31 ≡ 0 (mod 31)
		assert.ErrorIs(t, CheckNonSingular(bi(1), bi(1), bi(31)), ErrInvalidCurve)
		assert.NoError(t, CheckNonSingular(bi(1), bi(1), bi(37)))
	})

	t.Run("CompositeModulus", func(t *testing.T) {
		// 4·27 + 27·16 = 540 is a unit mod 49.
		_, err := New(bi(3), bi(4), bi(49))
		assert.ErrorIs(t, err, ErrInvalidKey)
		_, err = New(bi(3), bi(4), bi(1))
		assert.Error(t, err)
		_, err = New(bi(3), bi(4), bi(0))
		assert.ErrorIs(t, err, ErrInvalidKey)
	})

	t.Run("SingularCheckedFirst", func(t *testing.T) {
		_, err := New(bi(0), bi(0), bi(49))
		assert.ErrorIs(t, err, ErrInvalidCurve)
	})
}

func TestNewPoint(t *testing.T) {
	c := mustCurve(t, 3, 4, 11)

	_, err := c.NewPoint(bi(1), bi(1))
	assert.ErrorIs(t, err, ErrInvalidPoint)

	_, err = c.NewPoint(bi(11), bi(2)) // (0,2) shifted by p
	assert.ErrorIs(t, err, ErrInvalidPoint)

	_, err = c.NewPoint(bi(0), bi(-9))
	assert.ErrorIs(t, err, ErrInvalidPoint)

	x := bi(4)
	p, err := c.NewPoint(x, bi(6))
	require.NoError(t, err)
	x.SetInt64(5)
	assert.Equal(t, bi(4), p.X(), "point must not alias its inputs")
}

func TestIdentityLaws(t *testing.T) {
	c, pts := smallGroup(t)
	id := c.Identity()

	assert.True(t, c.Add(id, id).IsIdentity())
	for _, p := range pts {
		assert.True(t, c.Add(p, id).Equal(p), "%s + O", p)
		assert.True(t, c.Add(id, p).Equal(p), "O + %s", p)
		assert.True(t, c.Add(p, c.Neg(p)).IsIdentity(), "%s + -%s", p, p)
	}
}

func TestAddCommutative(t *testing.T) {
	c, pts := smallGroup(t)
	for _, p := range pts {
		for _, q := range pts {
			pq := c.Add(p, q)
			assert.True(t, pq.Equal(c.Add(q, p)), "%s + %s", p, q)
			assert.True(t, c.Contains(pq), "%s + %s = %s left the curve", p, q, pq)
		}
	}
}

func TestAddAssociative(t *testing.T) {
	c, pts := smallGroup(t)
	for _, p := range pts {
		for _, q := range pts {
			for _, r := range pts[:5] {
				left := c.Add(c.Add(p, q), r)
				right := c.Add(p, c.Add(q, r))
				assert.True(t, left.Equal(right), "(%s+%s)+%s", p, q, r)
			}
		}
	}
}

func TestDouble(t *testing.T) {
	c := mustCurve(t, 2, 7, 47)
	g := pt(t, c, 8, 26)

	assert.Equal(t, "(8,21)", c.Double(g).String())
	assert.True(t, c.Double(g).Equal(c.Add(g, g)))

	// y = 0 has a vertical tangent.
	c11 := mustCurve(t, 3, 4, 11)
	assert.True(t, c11.Double(pt(t, c11, 10, 0)).IsIdentity())
	assert.True(t, c11.Double(c11.Identity()).IsIdentity())
}

func TestForeignPointsDoNotPanic(t *testing.T) {
	c := mustCurve(t, 3, 4, 11)
	other := mustCurve(t, 2, 7, 47)
	// 8 ≡ 19 (mod 11), so the secant through these points is vertical in F_11.
	p := pt(t, other, 8, 21)
	q := pt(t, other, 19, 18)

	assert.NotPanics(t, func() {
		assert.True(t, c.Add(p, q).IsIdentity())
		c.ScalarMult(p, bi(5))
	})

	// Over F_2 the tangent denominator 2y always vanishes.
	c2 := mustCurve(t, 0, 1, 2)
	g := pt(t, c2, 0, 1)
	assert.NotPanics(t, func() {
		assert.True(t, c2.Double(g).IsIdentity())
		c2.ScalarMult(g, bi(3))
	})
}

func TestScalarMult(t *testing.T) {
	t.Run("MatchesRepeatedAdd", func(t *testing.T) {
		c, pts := smallGroup(t)
		for _, p := range pts {
			for n := 1; n <= 30; n++ {
				want := repeatedAdd(c, p, n)
				got := c.ScalarMult(p, bi(int64(n)))
				assert.True(t, got.Equal(want), "%d·%s: got %s want %s", n, p, got, want)
			}
		}
	})

	t.Run("OneIsIdentityMap", func(t *testing.T) {
		c, pts := smallGroup(t)
		for _, p := range pts {
			assert.True(t, c.ScalarMult(p, bi(1)).Equal(p))
		}
	})

	t.Run("ZeroAndNegative", func(t *testing.T) {
		c := mustCurve(t, 2, 7, 47)
		g := pt(t, c, 8, 26)
		assert.True(t, c.ScalarMult(g, bi(0)).IsIdentity())
		assert.True(t, c.ScalarMult(g, bi(-1)).Equal(c.Neg(g)))
		assert.True(t, c.ScalarMult(g, bi(-2)).Equal(c.Neg(c.Double(g))))
	})

	t.Run("SubgroupOfOrderThree", func(t *testing.T) {
		c := mustCurve(t, 2, 7, 47)
		g := pt(t, c, 8, 26)
		assert.Equal(t, "(8,26)", c.ScalarMult(g, bi(1)).String())
		assert.Equal(t, "(8,21)", c.ScalarMult(g, bi(2)).String())
		assert.True(t, c.ScalarMult(g, bi(3)).IsIdentity())
		assert.Equal(t, "(8,26)", c.ScalarMult(g, bi(4)).String())
	})

	t.Run("GroupOrderAnnihilates", func(t *testing.T) {
		c, pts := smallGroup(t)
		for _, p := range pts {
			assert.True(t, c.ScalarMult(p, bi(14)).IsIdentity(), "14·%s", p)
		}
	})
}

func TestNeg(t *testing.T) {
	c := mustCurve(t, 2, 7, 47)
	g := pt(t, c, 8, 26)
	assert.Equal(t, "(8,21)", c.Neg(g).String())
	assert.True(t, c.Neg(c.Identity()).IsIdentity())
	assert.True(t, c.Neg(c.Neg(g)).Equal(g))
}

func TestPointAccessors(t *testing.T) {
	var id Point
	assert.True(t, id.IsIdentity())
	assert.Nil(t, id.X())
	assert.Nil(t, id.Y())
	assert.Equal(t, "(О)", id.String())

	c := mustCurve(t, 3, 4, 11)
	p := pt(t, c, 4, 6)
	p.X().SetInt64(99)
	assert.Equal(t, bi(4), p.X())
	assert.False(t, p.Equal(id))
	assert.False(t, id.Equal(p))
	assert.True(t, id.Equal(Point{}))
}

func TestCurveEqual(t *testing.T) {
	assert.True(t, mustCurve(t, 3, 4, 11).Equal(mustCurve(t, 14, 15, 11)))
	assert.False(t, mustCurve(t, 3, 4, 11).Equal(mustCurve(t, 3, 4, 13)))
}
