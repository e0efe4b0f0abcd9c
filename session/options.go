package session

import (
	"math/big"

	"go.uber.org/zap"

	"github.com/f3rmion/gciphers/alphabet"
	"github.com/f3rmion/gciphers/gost"
	"github.com/f3rmion/gciphers/internal/sampler"
)

// config holds the settings of a Session.
type config struct {
	logger      *zap.Logger
	budget      int
	hasher      gost.Hasher
	hashModulus *big.Int
	alphabet    *alphabet.Alphabet
}

func defaultConfig() *config {
	return &config{
		logger:   zap.NewNop(),
		budget:   sampler.DefaultBudget,
		hasher:   &gost.SquareHasher{},
		alphabet: alphabet.New(),
	}
}

// Option configures a Session.
type Option func(*config)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRetryBudget caps every sample-until-valid loop.
func WithRetryBudget(n int) Option {
	return func(c *config) {
		c.budget = n
	}
}

// WithHasher sets the signature hash. The default is the square hash.
func WithHasher(h gost.Hasher) Option {
	return func(c *config) {
		if h != nil {
			c.hasher = h
		}
	}
}

// WithHashModulus sets the modulus m of the signature hash. Without it
// the subgroup order q of the current keys is used.
func WithHashModulus(m *big.Int) Option {
	return func(c *config) {
		if m != nil {
			c.hashModulus = new(big.Int).Set(m)
		}
	}
}

// WithAlphabet sets the alphabet of the cipher and the square hash.
func WithAlphabet(a *alphabet.Alphabet) Option {
	return func(c *config) {
		if a != nil {
			c.alphabet = a
		}
	}
}
