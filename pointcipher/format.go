package pointcipher

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/f3rmion/gciphers/alphabet"
	"github.com/f3rmion/gciphers/group"
)

// ErrMalformedCiphertext is returned by Parse for text that is not a
// sequence of ((x,y),c) tuples.
var ErrMalformedCiphertext = errors.New("malformed ciphertext")

// String returns the tuple form ((x,y),c).
func (v CipherValue) String() string {
	return fmt.Sprintf("(%s,%s)", v.R, v.C)
}

// Format concatenates the tuple forms of values without separators.
func Format(values []CipherValue) string {
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(v.String())
	}
	return sb.String()
}

const separators = ", \t\r\n"

// Parse reads ciphertext produced by Format. Tuples may also be separated
// by commas or whitespace. Every R must lie on curve and every c in [0, p).
func Parse(curve *group.Curve, s string) ([]CipherValue, error) {
	rest := strings.Trim(s, separators)
	if rest == "" {
		return nil, &alphabet.EmptyValueError{Field: "ciphertext"}
	}

	var values []CipherValue
	for rest != "" {
		if !strings.HasPrefix(rest, "((") {
			return nil, fmt.Errorf("%w: expected \"((\" at %q", ErrMalformedCiphertext, rest)
		}
		end := strings.IndexByte(rest[1:], ')')
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated point in %q", ErrMalformedCiphertext, rest)
		}
		r, err := curve.ParsePoint(rest[1 : end+2])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedCiphertext, err)
		}

		rest = strings.TrimLeft(rest[end+2:], " \t")
		if !strings.HasPrefix(rest, ",") {
			return nil, fmt.Errorf("%w: expected \",\" after %s", ErrMalformedCiphertext, r)
		}
		rest = rest[1:]
		end = strings.IndexByte(rest, ')')
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated tuple", ErrMalformedCiphertext)
		}
		c, ok := new(big.Int).SetString(strings.TrimSpace(rest[:end]), 10)
		if !ok || c.Sign() < 0 || c.Cmp(curve.P()) >= 0 {
			return nil, fmt.Errorf("%w: bad value %q", ErrMalformedCiphertext, rest[:end])
		}
		values = append(values, CipherValue{R: r, C: c})
		rest = strings.TrimLeft(rest[end+1:], separators)
	}
	return values, nil
}
