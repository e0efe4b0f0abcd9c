package keygen

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/f3rmion/gciphers/group"
	"github.com/f3rmion/gciphers/internal/sampler"
)

var (
	// ErrEmptyPointSet is returned when a curve has no affine points.
	ErrEmptyPointSet = errors.New("curve has no affine points")

	// ErrRetryBudgetExceeded is returned when a sample-until-valid loop
	// does not converge within its retry budget. The point cipher and the
	// signature scheme report the same error.
	ErrRetryBudgetExceeded = sampler.ErrBudgetExceeded

	// ErrModulusTooLarge is returned when enumeration is requested for a
	// modulus above MaxEnumerationModulus.
	ErrModulusTooLarge = errors.New("modulus too large to enumerate")
)

// Option configures key generation.
type Option func(*config)

type config struct {
	budget int
}

func newConfig(opts []Option) *config {
	cfg := &config{budget: sampler.DefaultBudget}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithRetryBudget caps the number of attempts of every sampling loop.
// Non-positive values select the default.
func WithRetryBudget(n int) Option {
	return func(c *config) {
		c.budget = n
	}
}

// Domain holds the public parameters shared by all keys on a curve.
type Domain struct {
	Curve *group.Curve
	G     group.Point // generator of the order-Q subgroup
	Q     *big.Int    // subgroup order
	H     *big.Int    // cofactor, n/Q
}

// Validate checks that G is a non-identity curve point annihilated by Q.
func (d *Domain) Validate() error {
	if d.Curve == nil {
		return fmt.Errorf("%w: domain has no curve", group.ErrInvalidKey)
	}
	if d.Q == nil || d.Q.Cmp(big.NewInt(2)) < 0 {
		return fmt.Errorf("%w: subgroup order must be at least 2", group.ErrInvalidKey)
	}
	if d.H != nil && d.H.Sign() <= 0 {
		return fmt.Errorf("%w: cofactor must be positive", group.ErrInvalidKey)
	}
	if d.G.IsIdentity() || !d.Curve.Contains(d.G) {
		return fmt.Errorf("%w: generator %s is not a curve point", group.ErrInvalidKey, d.G)
	}
	if !d.Curve.ScalarMult(d.G, d.Q).IsIdentity() {
		return fmt.Errorf("%w: order of %s does not divide %s", group.ErrInvalidKey, d.G, d.Q)
	}
	return nil
}

// PublicKey is a domain together with the public point Y = x·G.
type PublicKey struct {
	Domain
	Y group.Point
}

// Validate checks the domain and that Y is a non-identity curve point.
func (k *PublicKey) Validate() error {
	if err := k.Domain.Validate(); err != nil {
		return err
	}
	if k.Y.IsIdentity() || !k.Curve.Contains(k.Y) {
		return fmt.Errorf("%w: public point %s is not a curve point", group.ErrInvalidKey, k.Y)
	}
	return nil
}

// KeyMaterial is a full key set: domain, public point and private scalar.
// It is created once and never mutated.
type KeyMaterial struct {
	PublicKey
	X *big.Int // private scalar in [1, Q)
}

// Validate checks the public part, the range of X and that Y = X·G.
func (k *KeyMaterial) Validate() error {
	if err := k.PublicKey.Validate(); err != nil {
		return err
	}
	if err := checkPrivate(k.X, k.Q); err != nil {
		return err
	}
	if !k.Curve.ScalarMult(k.G, k.X).Equal(k.Y) {
		return fmt.Errorf("%w: public point does not match private scalar", group.ErrInvalidKey)
	}
	return nil
}

// Public returns a copy of the public part of k.
func (k *KeyMaterial) Public() *PublicKey {
	pub := k.PublicKey
	return &pub
}

// SharedPoint returns X·peer, the Diffie-Hellman shared point between k
// and the owner of peer. Both parties obtain the same point.
func (k *KeyMaterial) SharedPoint(peer group.Point) (group.Point, error) {
	if peer.IsIdentity() || !k.Curve.Contains(peer) {
		return group.Point{}, fmt.Errorf("%w: peer point %s is not a curve point", group.ErrInvalidKey, peer)
	}
	shared := k.Curve.ScalarMult(peer, k.X)
	if shared.IsIdentity() {
		return group.Point{}, fmt.Errorf("%w: shared point is the identity", group.ErrInvalidKey)
	}
	return shared, nil
}

func checkPrivate(x, q *big.Int) error {
	if x == nil || x.Sign() <= 0 || x.Cmp(q) >= 0 {
		return fmt.Errorf("%w: private scalar must be in [1, %s)", group.ErrInvalidKey, q)
	}
	return nil
}

// NewKeyMaterial draws a private scalar x uniformly from [1, q) and
// returns the key set with Y = x·G. When q is the heuristic fallback and G
// has a smaller order, scalars that give Y = O are redrawn.
func NewKeyMaterial(r io.Reader, d *Domain, opts ...Option) (*KeyMaterial, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	cfg := newConfig(opts)

	var x *big.Int
	var y group.Point
	err := sampler.Retry(cfg.budget, func() (bool, error) {
		var err error
		if x, err = sampler.Scalar(r, d.Q); err != nil {
			return false, err
		}
		y = d.Curve.ScalarMult(d.G, x)
		return !y.IsIdentity(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sample private scalar: %w", err)
	}
	return &KeyMaterial{
		PublicKey: PublicKey{Domain: *d, Y: y},
		X:         x,
	}, nil
}

// FromPrivate rebuilds key material from a known private scalar.
func FromPrivate(d *Domain, x *big.Int) (*KeyMaterial, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := checkPrivate(x, d.Q); err != nil {
		return nil, err
	}
	y := d.Curve.ScalarMult(d.G, x)
	if y.IsIdentity() {
		return nil, fmt.Errorf("%w: %s·G is the identity", group.ErrInvalidKey, x)
	}
	return &KeyMaterial{
		PublicKey: PublicKey{Domain: *d, Y: y},
		X:         new(big.Int).Set(x),
	}, nil
}

// Generate derives a domain for c by enumeration and draws a key pair on it.
func Generate(r io.Reader, c *group.Curve, opts ...Option) (*KeyMaterial, error) {
	d, err := DeriveDomain(r, c, opts...)
	if err != nil {
		return nil, err
	}
	return NewKeyMaterial(r, d, opts...)
}
