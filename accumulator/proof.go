package accumulator

import (
	"encoding/binary"
	"errors"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// ProofSize is the fixed wire size, in bytes, of every proof produced by
// this package: two 96-byte uncompressed G1 points, an 8-byte element, and
// a 1-byte validity flag.
const ProofSize = 96 + 96 + 8 + 1

// ErrMalformedProof indicates a proof buffer of the wrong size.
var ErrMalformedProof = errors.New("[accumulator] malformed proof")

// AddProof attests that NewValue is OldValue updated to also commit to
// Element.
type AddProof struct {
	OldValue bls12381.G1Affine
	NewValue bls12381.G1Affine
	Element  int64
}

// Verify checks e(NewValue, g2) == e(OldValue, g2^(tau-element)). A proof
// with OldValue == NewValue is a no-op (the accumulator already committed
// to Element before this add) and verifies trivially: idempotent add never
// re-derives the transition pairing equation, since there was no
// transition.
func (p *AddProof) Verify() bool {
	if rawBytes(p.OldValue) == rawBytes(p.NewValue) {
		return true
	}
	g2MinusE := g2TauMinus(p.Element)
	lhs, err := bls12381.Pair([]bls12381.G1Affine{p.NewValue}, []bls12381.G2Affine{Params().G2Gen})
	if err != nil {
		return false
	}
	rhs, err := bls12381.Pair([]bls12381.G1Affine{p.OldValue}, []bls12381.G2Affine{g2MinusE})
	if err != nil {
		return false
	}
	return lhs.Equal(&rhs)
}

// Marshal encodes p into the fixed-size update-proof wire layout:
// old(96) || element(8, little-endian) || new(96) || valid(1).
func (p *AddProof) Marshal() []byte {
	return marshalUpdateProof(p.OldValue, p.NewValue, p.Element, p.Verify())
}

// UnmarshalAddProof decodes a buffer produced by AddProof.Marshal. The
// returned valid flag is the claim embedded in the wire data; callers
// that need a guarantee must call Verify on the result.
func UnmarshalAddProof(buf []byte) (*AddProof, bool, error) {
	old, new_, element, valid, err := unmarshalUpdateProof(buf)
	if err != nil {
		return nil, false, err
	}
	return &AddProof{OldValue: old, NewValue: new_, Element: element}, valid, nil
}

// DeleteProof attests that NewValue is OldValue updated to no longer
// commit to Element.
type DeleteProof struct {
	OldValue bls12381.G1Affine
	NewValue bls12381.G1Affine
	Element  int64
}

// Verify checks e(NewValue, g2^(tau-element)) == e(OldValue, g2). As with
// AddProof, OldValue == NewValue is the no-op case (deleting an already
// absent element) and verifies trivially.
func (p *DeleteProof) Verify() bool {
	if rawBytes(p.OldValue) == rawBytes(p.NewValue) {
		return true
	}
	g2MinusE := g2TauMinus(p.Element)
	lhs, err := bls12381.Pair([]bls12381.G1Affine{p.NewValue}, []bls12381.G2Affine{g2MinusE})
	if err != nil {
		return false
	}
	rhs, err := bls12381.Pair([]bls12381.G1Affine{p.OldValue}, []bls12381.G2Affine{Params().G2Gen})
	if err != nil {
		return false
	}
	return lhs.Equal(&rhs)
}

// Marshal encodes p using the same layout as AddProof.Marshal.
func (p *DeleteProof) Marshal() []byte {
	return marshalUpdateProof(p.OldValue, p.NewValue, p.Element, p.Verify())
}

// UnmarshalDeleteProof decodes a buffer produced by DeleteProof.Marshal.
func UnmarshalDeleteProof(buf []byte) (*DeleteProof, bool, error) {
	old, new_, element, valid, err := unmarshalUpdateProof(buf)
	if err != nil {
		return nil, false, err
	}
	return &DeleteProof{OldValue: old, NewValue: new_, Element: element}, valid, nil
}

// MembershipProof attests that Element belongs to the set committed to by
// some accumulator value, via the constant-size Witness.
type MembershipProof struct {
	Witness bls12381.G1Affine
	Element int64
}

// Verify checks e(Witness, g2^(tau-element)) == e(accumulator, g2).
func (p *MembershipProof) Verify(accumulatorValue bls12381.G1Affine) bool {
	g2MinusE := g2TauMinus(p.Element)
	lhs, err := bls12381.Pair([]bls12381.G1Affine{p.Witness}, []bls12381.G2Affine{g2MinusE})
	if err != nil {
		return false
	}
	rhs, err := bls12381.Pair([]bls12381.G1Affine{accumulatorValue}, []bls12381.G2Affine{Params().G2Gen})
	if err != nil {
		return false
	}
	return lhs.Equal(&rhs)
}

// Marshal encodes p against accumulatorValue into the fixed-size
// membership-proof wire layout:
// witness(96) || element(8, little-endian) || accumulator(96) || valid(1).
func (p *MembershipProof) Marshal(accumulatorValue bls12381.G1Affine) []byte {
	valid := p.Verify(accumulatorValue)
	buf := make([]byte, 0, ProofSize)
	wBytes := rawBytes(p.Witness)
	buf = append(buf, wBytes[:]...)
	var elemBuf [8]byte
	binary.LittleEndian.PutUint64(elemBuf[:], uint64(p.Element))
	buf = append(buf, elemBuf[:]...)
	accBytes := rawBytes(accumulatorValue)
	buf = append(buf, accBytes[:]...)
	if valid {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	return buf
}

// UnmarshalMembershipProof decodes a buffer produced by
// MembershipProof.Marshal, also returning the accumulator value it was
// checked against and the embedded validity claim.
func UnmarshalMembershipProof(buf []byte) (proof *MembershipProof, accumulatorValue bls12381.G1Affine, valid bool, err error) {
	if len(buf) != ProofSize {
		err = ErrMalformedProof
		return
	}
	witness, uerr := g1FromRaw(buf[0:96])
	if uerr != nil {
		err = uerr
		return
	}
	element := int64(binary.LittleEndian.Uint64(buf[96:104]))
	acc, uerr := g1FromRaw(buf[104:200])
	if uerr != nil {
		err = uerr
		return
	}
	valid = buf[200] == 1
	proof = &MembershipProof{Witness: witness, Element: element}
	accumulatorValue = acc
	return
}

func marshalUpdateProof(old, new_ bls12381.G1Affine, element int64, valid bool) []byte {
	buf := make([]byte, 0, ProofSize)
	oldBytes := rawBytes(old)
	buf = append(buf, oldBytes[:]...)
	var elemBuf [8]byte
	binary.LittleEndian.PutUint64(elemBuf[:], uint64(element))
	buf = append(buf, elemBuf[:]...)
	newBytes := rawBytes(new_)
	buf = append(buf, newBytes[:]...)
	if valid {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	return buf
}

func unmarshalUpdateProof(buf []byte) (old, new_ bls12381.G1Affine, element int64, valid bool, err error) {
	if len(buf) != ProofSize {
		err = ErrMalformedProof
		return
	}
	old, err = g1FromRaw(buf[0:96])
	if err != nil {
		return
	}
	element = int64(binary.LittleEndian.Uint64(buf[96:104]))
	new_, err = g1FromRaw(buf[104:200])
	if err != nil {
		return
	}
	valid = buf[200] == 1
	return
}

// MarshalValue encodes an accumulator value (a G1 point) into the 96-byte
// root-digest encoding used throughout this package's proofs.
func MarshalValue(v bls12381.G1Affine) []byte {
	b := rawBytes(v)
	return b[:]
}

// rawBytes encodes a G1 point as 48-byte X || 48-byte Y (uncompressed, no
// flag bits) — the fixed 96-byte encoding this package's wire layout uses
// in place of BLS12-381's true 48-byte compressed form.
func rawBytes(p bls12381.G1Affine) [96]byte {
	var out [96]byte
	xBytes := p.X.Bytes()
	yBytes := p.Y.Bytes()
	copy(out[0:48], xBytes[:])
	copy(out[48:96], yBytes[:])
	return out
}

func g1FromRaw(buf []byte) (bls12381.G1Affine, error) {
	var p bls12381.G1Affine
	if len(buf) != 96 {
		return p, ErrMalformedProof
	}
	p.X.SetBytes(buf[0:48])
	p.Y.SetBytes(buf[48:96])
	return p, nil
}
