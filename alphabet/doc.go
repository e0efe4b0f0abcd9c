// Package alphabet maps the symbols of a fixed, ordered character set to
// integer positions and back.
//
// Every cipher and signature in this module validates its text input
// against an [Alphabet] before producing output, so the errors defined here
// ([ErrInvalidText], [ErrInvalidIndex], [ErrEmptyValue]) are the ones callers
// see for malformed text.
package alphabet
