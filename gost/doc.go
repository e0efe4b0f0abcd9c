// Package gost implements a GOST R 34.10-2012 style signature over a
// [group.Curve].
//
// # Signing
//
// The message is hashed to h in [1, m) by a [Hasher] and reduced to
// e = h mod q; an e without inverse mod q (e = 0 for prime q) is replaced
// by 1. For a nonce k drawn from [1, q):
//
//	P = k·G
//	r = P.x mod q
//	s = (k·e + r·x) mod q
//
// Nonces with P = O, P.x = 0 or r = 0 are redrawn, bounded by the retry
// budget.
//
// # Verification
//
//	u1 = s·e⁻¹ mod q
//	u2 = −r·e⁻¹ mod q
//	P  = u1·G + u2·Y
//
// The signature is valid iff P ≠ O and P.x mod q = r. A bad signature is
// reported as false, never as an error.
//
// # Hashing
//
// The default [SquareHasher] reproduces the classroom hash and offers no
// security at all. [SHA256Hasher] and [Blake2bHasher] reduce a real digest
// modulo m and are the right choice on the curves from the curves package,
// typically with m = q.
package gost
