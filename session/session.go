package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sync"

	"go.uber.org/zap"

	"github.com/f3rmion/gciphers/gost"
	"github.com/f3rmion/gciphers/group"
	"github.com/f3rmion/gciphers/keygen"
	"github.com/f3rmion/gciphers/pointcipher"
)

var (
	// ErrNoKeys is returned by operations that need keys before any were
	// generated, set or imported.
	ErrNoKeys = errors.New("no key material")

	// ErrNoPrivateKey is returned by Decrypt and Sign when the session
	// holds only a public key.
	ErrNoPrivateKey = errors.New("session holds no private key")
)

// Session owns one key set and exposes the cipher and signature entry
// points over it. It is safe for concurrent use when its random source is.
type Session struct {
	mu     sync.RWMutex
	rng    io.Reader
	cfg    *config
	cipher *pointcipher.Cipher
	signer *gost.Signer

	pub  *keygen.PublicKey
	keys *keygen.KeyMaterial // nil for public-only sessions
}

// New creates a session without keys. A nil rng selects crypto/rand.Reader.
func New(rng io.Reader, opts ...Option) *Session {
	if rng == nil {
		rng = rand.Reader
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	hasher := cfg.hasher
	if sq, ok := hasher.(*gost.SquareHasher); ok && sq.Alphabet == nil {
		hasher = &gost.SquareHasher{Alphabet: cfg.alphabet}
	}
	return &Session{
		rng: rng,
		cfg: cfg,
		cipher: pointcipher.New(
			pointcipher.WithAlphabet(cfg.alphabet),
			pointcipher.WithRetryBudget(cfg.budget),
		),
		signer: gost.New(
			gost.WithHasher(hasher),
			gost.WithRetryBudget(cfg.budget),
		),
	}
}

// Generate derives a domain for curve by enumeration and draws a fresh
// key pair on it. The previous keys are replaced.
func (s *Session) Generate(curve *group.Curve) (*keygen.KeyMaterial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	km, err := keygen.Generate(s.rng, curve, keygen.WithRetryBudget(s.cfg.budget))
	if err != nil {
		s.cfg.logger.Debug("key generation failed", zap.Stringer("curve", curve), zap.Error(err))
		return nil, err
	}
	s.install(km)
	return km, nil
}

// GenerateRandom draws random curves with p in [lo, hi) until one yields a
// domain and generates keys on it.
func (s *Session) GenerateRandom(lo, hi int64) (*keygen.KeyMaterial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	budget := keygen.WithRetryBudget(s.cfg.budget)
	d, err := keygen.RandomDomain(s.rng, lo, hi, budget)
	if err != nil {
		return nil, err
	}
	km, err := keygen.NewKeyMaterial(s.rng, d, budget)
	if err != nil {
		return nil, err
	}
	s.install(km)
	return km, nil
}

// UseDomain draws a fresh key pair on an existing domain, such as one from
// the curves package.
func (s *Session) UseDomain(d *keygen.Domain) (*keygen.KeyMaterial, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	km, err := keygen.NewKeyMaterial(s.rng, d, keygen.WithRetryBudget(s.cfg.budget))
	if err != nil {
		return nil, err
	}
	s.install(km)
	return km, nil
}

// SetKeyMaterial validates km and makes it the session's key set.
func (s *Session) SetKeyMaterial(km *keygen.KeyMaterial) error {
	if km == nil {
		return ErrNoKeys
	}
	if err := km.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.install(km)
	return nil
}

// SetPublicKey makes pub the session's key and drops any private key.
// Only Encrypt and Verify work afterwards.
func (s *Session) SetPublicKey(pub *keygen.PublicKey) error {
	if pub == nil {
		return ErrNoKeys
	}
	if err := pub.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = nil
	s.pub = pub
	s.cfg.logger.Info("public key installed", zap.Stringer("curve", pub.Curve), zap.Stringer("y", pub.Y))
	return nil
}

// install must be called with mu held.
func (s *Session) install(km *keygen.KeyMaterial) {
	s.keys = km
	s.pub = km.Public()
	s.cfg.logger.Info("key material installed",
		zap.Stringer("curve", km.Curve),
		zap.Stringer("g", km.G),
		zap.Stringer("q", km.Q),
		zap.Stringer("h", km.H),
		zap.Stringer("y", km.Y),
	)
}

// KeyMaterial returns the full key set, or nil when the session has none or
// holds only a public key.
func (s *Session) KeyMaterial() *keygen.KeyMaterial {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keys
}

// PublicKey returns the public key, or nil before keys exist.
func (s *Session) PublicKey() *keygen.PublicKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pub
}

func (s *Session) publicKey() (*keygen.PublicKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pub == nil {
		return nil, ErrNoKeys
	}
	return s.pub, nil
}

func (s *Session) privateKey() (*keygen.KeyMaterial, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.pub == nil {
		return nil, ErrNoKeys
	}
	if s.keys == nil {
		return nil, ErrNoPrivateKey
	}
	return s.keys, nil
}

// HashModulus returns the modulus of the signature hash: the configured
// one, or q of the current keys.
func (s *Session) HashModulus() (*big.Int, error) {
	pub, err := s.publicKey()
	if err != nil {
		return nil, err
	}
	return s.hashModulus(pub), nil
}

func (s *Session) hashModulus(pub *keygen.PublicKey) *big.Int {
	if s.cfg.hashModulus != nil {
		return new(big.Int).Set(s.cfg.hashModulus)
	}
	return new(big.Int).Set(pub.Q)
}

// Encrypt encrypts plaintext under the session's public key.
func (s *Session) Encrypt(plaintext string) (string, error) {
	pub, err := s.publicKey()
	if err != nil {
		return "", err
	}
	s.mu.Lock() // the random source is not required to be goroutine safe
	defer s.mu.Unlock()
	ct, err := s.cipher.Encrypt(s.rng, pub, plaintext)
	if err != nil {
		return "", err
	}
	s.cfg.logger.Debug("encrypted", zap.Int("symbols", len([]rune(plaintext))))
	return ct, nil
}

// Decrypt decrypts ciphertext with the session's private key.
func (s *Session) Decrypt(ciphertext string) (string, error) {
	km, err := s.privateKey()
	if err != nil {
		return "", err
	}
	plain, err := s.cipher.Decrypt(km.Curve, km.X, ciphertext)
	if err != nil {
		return "", err
	}
	s.cfg.logger.Debug("decrypted", zap.Int("symbols", len([]rune(plain))))
	return plain, nil
}

// Sign signs message with the session's private key.
func (s *Session) Sign(message string) (gost.Signature, error) {
	km, err := s.privateKey()
	if err != nil {
		return gost.Signature{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sig, err := s.signer.Sign(s.rng, km, message, s.hashModulus(&km.PublicKey))
	if err != nil {
		return gost.Signature{}, err
	}
	s.cfg.logger.Debug("signed", zap.Stringer("signature", sig))
	return sig, nil
}

// Verify parses signature as "r,s" and checks it against message. A wrong
// signature gives false; errors mean malformed input.
func (s *Session) Verify(message, signature string) (bool, error) {
	pub, err := s.publicKey()
	if err != nil {
		return false, err
	}
	sig, err := gost.ParseSignature(signature)
	if err != nil {
		return false, err
	}
	ok, err := s.signer.Verify(pub, message, sig, s.hashModulus(pub))
	if err != nil {
		return false, err
	}
	s.cfg.logger.Debug("verified", zap.Bool("valid", ok))
	return ok, nil
}

// SharedPoint returns the Diffie-Hellman point between the session's
// private key and peer, given in "(x,y)" form.
func (s *Session) SharedPoint(peer string) (group.Point, error) {
	km, err := s.privateKey()
	if err != nil {
		return group.Point{}, err
	}
	p, err := km.Curve.ParsePoint(peer)
	if err != nil {
		return group.Point{}, fmt.Errorf("peer: %w", err)
	}
	return km.SharedPoint(p)
}
