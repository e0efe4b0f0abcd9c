package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/f3rmion/gciphers/group"
	"github.com/f3rmion/gciphers/keygen"
)

// ExportVersion is the current export format version.
const ExportVersion = 1

// ErrInvalidImportData is returned when exported keys fail validation.
var ErrInvalidImportData = errors.New("invalid import data")

// ExportedKeys is the JSON form of a key set. All numbers are decimal
// strings and points use the "(x,y)" form.
// WARNING: when PrivateKey is set this contains secret material.
type ExportedKeys struct {
	// Version is the export format version. MUST be 1.
	Version int `json:"version"`
	// A, B and P are the curve coefficients and field modulus.
	A string `json:"a"`
	B string `json:"b"`
	P string `json:"p"`
	// Generator is G.
	Generator string `json:"generator"`
	// Order is the subgroup order q.
	Order string `json:"order"`
	// Cofactor is h.
	Cofactor string `json:"cofactor"`
	// PublicKey is Y = x·G.
	PublicKey string `json:"publicKey"`
	// PrivateKey is x. Omitted from public exports.
	PrivateKey string `json:"privateKey,omitempty"`
	// ExportedAt is informational only.
	ExportedAt time.Time `json:"exportedAt"`
}

// decoded is the validated content of an ExportedKeys.
type decoded struct {
	pub *keygen.PublicKey
	x   *big.Int
}

func parseInt(field, s string) (*big.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: %s is required", ErrInvalidImportData, field)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a decimal integer", ErrInvalidImportData, field)
	}
	return v, nil
}

func (e *ExportedKeys) decode() (*decoded, error) {
	if e.Version != ExportVersion {
		return nil, fmt.Errorf("%w: unsupported version %d, expected %d", ErrInvalidImportData, e.Version, ExportVersion)
	}
	var nums [5]*big.Int
	for i, f := range []struct{ name, value string }{
		{"a", e.A}, {"b", e.B}, {"p", e.P}, {"order", e.Order}, {"cofactor", e.Cofactor},
	} {
		v, err := parseInt(f.name, f.value)
		if err != nil {
			return nil, err
		}
		nums[i] = v
	}
	curve, err := group.New(nums[0], nums[1], nums[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImportData, err)
	}
	g, err := curve.ParsePoint(e.Generator)
	if err != nil {
		return nil, fmt.Errorf("%w: generator: %w", ErrInvalidImportData, err)
	}
	y, err := curve.ParsePoint(e.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: publicKey: %w", ErrInvalidImportData, err)
	}
	pub := &keygen.PublicKey{
		Domain: keygen.Domain{Curve: curve, G: g, Q: nums[3], H: nums[4]},
		Y:      y,
	}
	if err := pub.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImportData, err)
	}

	out := &decoded{pub: pub}
	if e.PrivateKey != "" {
		x, err := parseInt("privateKey", e.PrivateKey)
		if err != nil {
			return nil, err
		}
		km := &keygen.KeyMaterial{PublicKey: *pub, X: x}
		if err := km.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidImportData, err)
		}
		out.x = x
	}
	return out, nil
}

// Validate checks the version, that every number parses, and that the
// key set is consistent.
func (e *ExportedKeys) Validate() error {
	_, err := e.decode()
	return err
}

// HasPrivateKey reports whether e carries the private scalar.
func (e *ExportedKeys) HasPrivateKey() bool {
	return e.PrivateKey != ""
}

// Export returns the session's keys. The private scalar is included only
// when includePrivate is set.
func (s *Session) Export(includePrivate bool) (*ExportedKeys, error) {
	pub, err := s.publicKey()
	if err != nil {
		return nil, err
	}
	exported := &ExportedKeys{
		Version:    ExportVersion,
		A:          pub.Curve.A().String(),
		B:          pub.Curve.B().String(),
		P:          pub.Curve.P().String(),
		Generator:  pub.G.String(),
		Order:      pub.Q.String(),
		Cofactor:   pub.H.String(),
		PublicKey:  pub.Y.String(),
		ExportedAt: time.Now().UTC(),
	}
	if includePrivate {
		km, err := s.privateKey()
		if err != nil {
			return nil, err
		}
		exported.PrivateKey = km.X.String()
	}
	return exported, nil
}

// Import validates data and replaces the session's keys with it. Public
// exports give a public-only session.
func (s *Session) Import(data *ExportedKeys) error {
	if data == nil {
		return fmt.Errorf("%w: exported keys cannot be nil", ErrInvalidImportData)
	}
	d, err := data.decode()
	if err != nil {
		return err
	}
	if d.x == nil {
		return s.SetPublicKey(d.pub)
	}
	return s.SetKeyMaterial(&keygen.KeyMaterial{PublicKey: *d.pub, X: d.x})
}

// ExportToFile writes the session's keys to path as indented JSON. Files
// with a private key are created with mode 0600.
func (s *Session) ExportToFile(path string, includePrivate bool) error {
	data, err := s.Export(includePrivate)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal keys: %w", err)
	}
	mode := os.FileMode(0o644)
	if includePrivate {
		mode = 0o600
	}
	if err := os.WriteFile(path, append(raw, '\n'), mode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// ImportFromFile reads keys written by ExportToFile.
func (s *Session) ImportFromFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}
	var data ExportedKeys
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("%w: parse keys: %w", ErrInvalidImportData, err)
	}
	return s.Import(&data)
}
