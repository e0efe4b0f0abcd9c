// Package sampler draws uniform values from an injected random source and
// runs bounded "sample until valid" loops.
package sampler

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// DefaultBudget is the attempt limit used when a caller does not set one.
const DefaultBudget = 1024

// ErrBudgetExceeded is returned by Retry when no attempt succeeded.
var ErrBudgetExceeded = errors.New("retry budget exceeded")

var one = big.NewInt(1)

// Scalar returns a uniform integer in [1, q). q must be at least 2.
func Scalar(r io.Reader, q *big.Int) (*big.Int, error) {
	if q.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("cannot sample from [1, %s)", q)
	}
	k, err := rand.Int(r, new(big.Int).Sub(q, one))
	if err != nil {
		return nil, err
	}
	return k.Add(k, one), nil
}

// Between returns a uniform integer in [lo, hi).
func Between(r io.Reader, lo, hi *big.Int) (*big.Int, error) {
	width := new(big.Int).Sub(hi, lo)
	if width.Sign() <= 0 {
		return nil, fmt.Errorf("cannot sample from empty range [%s, %s)", lo, hi)
	}
	v, err := rand.Int(r, width)
	if err != nil {
		return nil, err
	}
	return v.Add(v, lo), nil
}

// Index returns a uniform integer in [0, n).
func Index(r io.Reader, n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("cannot sample an index below %d", n)
	}
	v, err := rand.Int(r, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// Retry calls attempt until it reports done, returns an error, or budget
// attempts have been made. A non-positive budget means DefaultBudget.
func Retry(budget int, attempt func() (done bool, err error)) error {
	if budget <= 0 {
		budget = DefaultBudget
	}
	for i := 0; i < budget; i++ {
		done, err := attempt()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return fmt.Errorf("%w after %d attempts", ErrBudgetExceeded, budget)
}
