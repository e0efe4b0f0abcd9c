// Package session provides a high-level API over the curve engine. A
// [Session] owns one key set for its lifetime and exposes string entry
// points for encryption, decryption, signing and verification, the way a
// front end collects them from form fields.
//
// # Keys
//
// Keys come from one of four places:
//
//	s := session.New(rand.Reader)
//	km, err := s.Generate(curve)              // enumerate a small curve
//	km, err := s.GenerateRandom(33, 61)       // random small curve
//	km, err := s.UseDomain(curves.Secp256k1()) // named curve
//	err := s.Import(exported)                 // earlier export
//
// Operations before any keys exist fail with [ErrNoKeys]. A session built
// from a public export can encrypt and verify only; Decrypt and Sign fail
// with [ErrNoPrivateKey].
//
// # Entry points
//
//	ct, err := s.Encrypt("отодно")      // "((8,21),26)((8,21),11)..."
//	pt, err := s.Decrypt(ct)
//	sig, err := s.Sign("подпись")       // sig.String() == "r,s"
//	ok, err := s.Verify("подпись", sig.String())
//
// Verify returns false for a signature that does not match and an error
// only for malformed input.
//
// # Export
//
// [Session.Export] produces an [ExportedKeys] document (version 1) with
// every number as a decimal string. The private scalar is included only on
// request. Handle such exports like any other secret.
//
// # Logging
//
// Sessions log key lifecycle events through zap (see [WithLogger]). The
// private scalar is never logged.
package session
