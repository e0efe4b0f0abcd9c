package alphabet

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Russian is the default 32-symbol alphabet (without "ё").
const Russian = "абвгдежзийклмнопрстуфхцчшщъыьэюя"

var (
	// ErrInvalidText is returned when a text contains a symbol that is not
	// part of the alphabet.
	ErrInvalidText = errors.New("alphabet does not contain symbol")

	// ErrInvalidIndex is returned when a numeric value has no corresponding
	// alphabet position.
	ErrInvalidIndex = errors.New("no symbol at index")

	// ErrEmptyValue is returned when a required value is empty.
	ErrEmptyValue = errors.New("value is missing")
)

// EmptyValueError reports which required field was empty.
// It matches [ErrEmptyValue] with errors.Is.
type EmptyValueError struct {
	Field string
}

func (e *EmptyValueError) Error() string {
	return fmt.Sprintf("%s is missing", e.Field)
}

// Is implements errors.Is for sentinel error matching.
func (e *EmptyValueError) Is(target error) bool {
	return target == ErrEmptyValue
}

// Alphabet is an immutable ordered set of distinct symbols. Positions are
// 0-based; ciphers that need non-zero values use Index+1.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

var defaultAlphabet = mustFromString(Russian)

// New returns the default alphabet.
func New() *Alphabet {
	return defaultAlphabet
}

// FromString builds an alphabet from the symbols of s in order.
// It fails on an empty string, invalid UTF-8 or repeated symbols.
func FromString(s string) (*Alphabet, error) {
	if s == "" {
		return nil, &EmptyValueError{Field: "alphabet"}
	}
	if !utf8.ValidString(s) {
		return nil, errors.New("alphabet is not valid UTF-8")
	}
	a := &Alphabet{index: make(map[rune]int)}
	for _, r := range s {
		if _, dup := a.index[r]; dup {
			return nil, fmt.Errorf("alphabet repeats symbol %q", r)
		}
		a.index[r] = len(a.symbols)
		a.symbols = append(a.symbols, r)
	}
	return a, nil
}

func mustFromString(s string) *Alphabet {
	a, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Len returns the number of symbols.
func (a *Alphabet) Len() int {
	return len(a.symbols)
}

// String returns the symbols in order.
func (a *Alphabet) String() string {
	return string(a.symbols)
}

// Contains reports whether r is part of the alphabet.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// Index returns the position of r.
func (a *Alphabet) Index(r rune) (int, error) {
	i, ok := a.index[r]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidText, r)
	}
	return i, nil
}

// Symbol returns the symbol at position i.
func (a *Alphabet) Symbol(i int) (rune, error) {
	if i < 0 || i >= len(a.symbols) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}
	return a.symbols[i], nil
}

// Validate checks that every symbol of text belongs to the alphabet.
func (a *Alphabet) Validate(text string) error {
	for _, r := range text {
		if !a.Contains(r) {
			return fmt.Errorf("%w: %q", ErrInvalidText, r)
		}
	}
	return nil
}

// ValidatePhrase is Validate for a required field: an empty text fails
// with an [EmptyValueError] naming field.
func (a *Alphabet) ValidatePhrase(field, text string) error {
	if text == "" {
		return &EmptyValueError{Field: field}
	}
	return a.Validate(text)
}

// Values maps text to 1-based positions (Index+1), the representation
// used by the point cipher and the square hash.
func (a *Alphabet) Values(text string) ([]int, error) {
	values := make([]int, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		i, err := a.Index(r)
		if err != nil {
			return nil, err
		}
		values = append(values, i+1)
	}
	return values, nil
}
