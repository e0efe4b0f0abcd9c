package gost

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/f3rmion/gciphers/alphabet"
)

// ErrMalformedSignature is returned by ParseSignature.
var ErrMalformedSignature = errors.New("malformed signature")

// Signature is the pair (r, s), both reduced mod q.
type Signature struct {
	R, S *big.Int
}

// String returns "r,s".
func (sig Signature) String() string {
	return fmt.Sprintf("%s,%s", sig.R, sig.S)
}

// ParseSignature reads "r,s". Optional surrounding parentheses and spaces
// are ignored.
func ParseSignature(s string) (Signature, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Signature{}, &alphabet.EmptyValueError{Field: "signature"}
	}
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = s[1 : len(s)-1]
	}
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Signature{}, fmt.Errorf("%w: expected \"r,s\", got %q", ErrMalformedSignature, s)
	}
	var sig Signature
	for i, dst := range []**big.Int{&sig.R, &sig.S} {
		v, ok := new(big.Int).SetString(strings.TrimSpace(parts[i]), 10)
		if !ok || v.Sign() < 0 {
			return Signature{}, fmt.Errorf("%w: bad component %q", ErrMalformedSignature, parts[i])
		}
		*dst = v
	}
	return sig, nil
}
