package accumulator

import (
	"encoding/binary"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/kazmiller0/distributed-storage-system/crypto"
)

// Element derives the accumulator element for a (keyword, fid) pair: the
// first 8 bytes of crypto.Digest("keyword:fid"), read big-endian as an
// int64. Combining them as "keyword:fid" before hashing makes the same fid
// under two different keywords map to two different elements, barring a
// collision of the truncated 64-bit digest.
func Element(keyword, fid string) int64 {
	digest := crypto.Digest([]byte(keyword + ":" + fid))
	return int64(binary.BigEndian.Uint64(digest[:8]))
}

// elementToFr reduces a signed element into the scalar field, matching the
// convention used throughout this package: negative elements are encoded
// as the field negation of their absolute value.
func elementToFr(element int64) fr.Element {
	var e fr.Element
	if element >= 0 {
		e.SetInt64(element)
	} else {
		e.SetInt64(-element)
		e.Neg(&e)
	}
	return e
}

func elementBigInt(element int64) *big.Int {
	e := elementToFr(element)
	b := new(big.Int)
	e.BigInt(b)
	return b
}
