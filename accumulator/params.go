// Package accumulator implements a dynamic cryptographic accumulator over
// BLS12-381: adding or deleting an element updates a single G1 point, and
// membership is proven with a constant-size witness verified by a pairing
// equation, independently of how many elements the accumulator holds.
package accumulator

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"

	"github.com/kazmiller0/distributed-storage-system/crypto"
)

// CeremonySeed fixes the trapdoor derivation so every process that calls
// Params() computes bit-identical public parameters without any of them
// communicating the trapdoor itself. This stands in for a real multi-party
// powers-of-tau ceremony: the trapdoor is derived once, used to build the
// public powers below, and is never again materialized by accumulator
// operations.
const CeremonySeed = "distributed-keyword-index/accumulator/ceremony/v1"

// MaxDegree bounds the number of elements a single accumulator instance may
// hold; it sizes the public powers-of-tau table.
const MaxDegree = 1024

// PublicParams is the powers-of-tau parameter set shared by every storage
// node running the accumulator ADS. G1Powers[i] = g1^(tau^i) for i in
// [0, MaxDegree]; G2Gen = g2; G2Tau = g2^tau.
type PublicParams struct {
	G1Powers []bls12381.G1Affine
	G2Gen    bls12381.G2Affine
	G2Tau    bls12381.G2Affine
}

var params *PublicParams

func init() {
	params = setup(MaxDegree)
}

// Params returns the shared public parameters. It never exposes tau.
func Params() *PublicParams {
	return params
}

func setup(maxDegree int) *PublicParams {
	tau := seedToFr(CeremonySeed)

	_, g2Jac, g1Gen, g2Gen := bls12381.Generators()

	g1PowersJac := make([]bls12381.G1Jac, maxDegree+1)
	var g1Gen0 bls12381.G1Jac
	g1Gen0.FromAffine(&g1Gen)
	g1PowersJac[0] = g1Gen0

	tauBig := new(big.Int)
	tau.BigInt(tauBig)

	var cur fr.Element
	cur.SetOne()
	for i := 1; i <= maxDegree; i++ {
		cur.Mul(&cur, &tau)
		curBig := new(big.Int)
		cur.BigInt(curBig)
		var p bls12381.G1Jac
		p.ScalarMultiplication(&g1Gen0, curBig)
		g1PowersJac[i] = p
	}

	g1Powers := make([]bls12381.G1Affine, maxDegree+1)
	for i, p := range g1PowersJac {
		var aff bls12381.G1Affine
		aff.FromJacobian(&p)
		g1Powers[i] = aff
	}

	var g2TauJac bls12381.G2Jac
	g2TauJac.ScalarMultiplication(&g2Jac, tauBig)
	var g2Tau bls12381.G2Affine
	g2Tau.FromJacobian(&g2TauJac)

	return &PublicParams{
		G1Powers: g1Powers,
		G2Gen:    g2Gen,
		G2Tau:    g2Tau,
	}
}

// seedToFr derives a scalar field element deterministically from a seed
// string by hashing and reducing modulo the scalar field order.
func seedToFr(seed string) fr.Element {
	digest := crypto.Digest([]byte(seed))
	var e fr.Element
	e.SetBytes(digest)
	return e
}

// g2TauMinus returns g2^(tau-element), computed from the public G2Gen and
// G2Tau without ever recovering tau: g2^tau * g2^(-element).
func g2TauMinus(element int64) bls12381.G2Affine {
	_, g2Jac, _, _ := bls12381.Generators()
	eBig := elementBigInt(element)
	var eNegJac bls12381.G2Jac
	eNegJac.ScalarMultiplication(&g2Jac, eBig)
	eNegJac.Neg(&eNegJac)

	var tauJac bls12381.G2Jac
	tauJac.FromAffine(&params.G2Tau)
	tauJac.AddAssign(&eNegJac)

	var out bls12381.G2Affine
	out.FromJacobian(&tauJac)
	return out
}
