// Package crypto contains the hash primitives shared by the accumulator and
// the Merkle-Patricia index:
// - Digest hashes arbitrary data with SHAKE128.
// - Commit/NewCommit build a salted cryptographic commitment, used by the
//   Merkle-Patricia index to bind a leaf hash to its value.
// - MakeRand returns hashed random bytes suitable for tree nonces.
package crypto
