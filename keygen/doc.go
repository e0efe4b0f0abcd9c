// Package keygen derives key material for a [group.Curve].
//
// Key generation on a small curve proceeds in the order below:
//
//  1. [EnumeratePoints] lists every affine point by brute force (O(p)).
//  2. [GroupOrder] is the number of points plus one for the identity.
//  3. [ChooseSubgroupOrder] picks q, the largest prime divisor found by a
//     linear scan (or n itself), and [Cofactor] gives h = n/q.
//  4. [ChooseGenerator] multiplies random points by h until the result is
//     not the identity; that point is the generator G.
//  5. [NewKeyMaterial] draws the private scalar x from [1, q) and sets Y = x·G,
//     redrawing x in the rare case that Y is the identity.
//
// [DeriveDomain] runs steps 1–4 and [Generate] runs all of them. Domains
// for real-size curves, where enumeration is impossible, come from the
// curves package and feed straight into [NewKeyMaterial].
//
// Every loop that samples until a predicate holds is bounded by a retry
// budget (see [WithRetryBudget]) and fails with [ErrRetryBudgetExceeded].
//
// # Randomness
//
// All functions take the random source as an io.Reader. Pass
// crypto/rand.Reader outside of tests. The enumeration-based domains are far
// too small to protect anything; they exist to make the arithmetic visible.
package keygen
