package accumulator

import (
	"errors"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

var (
	// ErrDuplicateElement is returned by Add when the element is already
	// held by the accumulator.
	ErrDuplicateElement = errors.New("[accumulator] element already present")
	// ErrNotMember is returned by Delete/Membership when the element is
	// not held by the accumulator.
	ErrNotMember = errors.New("[accumulator] element not present")
)

// Accumulator is g1^P(tau) where P(x) = product(x - e) over every element e
// currently held. It keeps the element list so P can be rebuilt from
// scratch on every mutation — this never requires tau itself, only the
// public powers-of-tau table.
type Accumulator struct {
	value    bls12381.G1Affine
	elements []int64
}

// New returns an empty accumulator: g1^1, the commitment to P(x) = 1.
func New() *Accumulator {
	return &Accumulator{
		value: Params().G1Powers[0],
	}
}

// Value returns the current accumulator value.
func (a *Accumulator) Value() bls12381.G1Affine {
	return a.value
}

// Len reports how many elements the accumulator currently holds.
func (a *Accumulator) Len() int {
	return len(a.elements)
}

func (a *Accumulator) contains(element int64) bool {
	for _, e := range a.elements {
		if e == element {
			return true
		}
	}
	return false
}

// Add inserts element and returns a proof that the new accumulator value
// is the old one updated to also commit to element.
func (a *Accumulator) Add(element int64) (*AddProof, error) {
	if a.contains(element) {
		return nil, ErrDuplicateElement
	}
	old := a.value
	a.elements = append(a.elements, element)
	a.value = commit(a.elements)
	return &AddProof{
		OldValue: old,
		NewValue: a.value,
		Element:  element,
	}, nil
}

// Delete removes element and returns a proof that the new accumulator
// value is the old one updated to no longer commit to element.
func (a *Accumulator) Delete(element int64) (*DeleteProof, error) {
	idx := -1
	for i, e := range a.elements {
		if e == element {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrNotMember
	}
	old := a.value
	a.elements = append(a.elements[:idx], a.elements[idx+1:]...)
	a.value = commit(a.elements)
	return &DeleteProof{
		OldValue: old,
		NewValue: a.value,
		Element:  element,
	}, nil
}

// Membership returns a constant-size witness proving element belongs to
// the set currently committed to by a.Value().
func (a *Accumulator) Membership(element int64) (*MembershipProof, error) {
	if !a.contains(element) {
		return nil, ErrNotMember
	}
	remaining := make([]int64, 0, len(a.elements)-1)
	for _, e := range a.elements {
		if e != element {
			remaining = append(remaining, e)
		}
	}
	witness := commit(remaining)
	return &MembershipProof{
		Witness: witness,
		Element: element,
	}, nil
}

// commit expands the characteristic polynomial of elements and evaluates
// it at tau via the public powers-of-tau table (a multi-scalar
// multiplication), without ever recovering tau.
func commit(elements []int64) bls12381.G1Affine {
	coeffs := characteristicPoly(elements)
	powers := Params().G1Powers
	if len(coeffs) > len(powers) {
		panic("accumulator: element set exceeds MaxDegree")
	}

	var acc bls12381.G1Jac
	first := true
	for i, c := range coeffs {
		if c.IsZero() {
			continue
		}
		cBig := new(big.Int)
		c.BigInt(cBig)
		var term bls12381.G1Jac
		term.FromAffine(&powers[i])
		term.ScalarMultiplication(&term, cBig)
		if first {
			acc = term
			first = false
		} else {
			acc.AddAssign(&term)
		}
	}
	var out bls12381.G1Affine
	out.FromJacobian(&acc)
	return out
}

// characteristicPoly returns the coefficients (constant term first) of
// product(x - e) over elements.
func characteristicPoly(elements []int64) []fr.Element {
	var one fr.Element
	one.SetOne()
	coeffs := []fr.Element{one}
	for _, e := range elements {
		neg := elementToFr(e)
		neg.Neg(&neg)
		coeffs = multiplyLinear(coeffs, neg)
	}
	return coeffs
}

// multiplyLinear multiplies the polynomial coeffs (constant term first) by
// (x + c), i.e. (x - element) when c = -element.
func multiplyLinear(coeffs []fr.Element, c fr.Element) []fr.Element {
	out := make([]fr.Element, len(coeffs)+1)
	for i, coeff := range coeffs {
		var term fr.Element
		term.Mul(&coeff, &c)
		out[i].Add(&out[i], &term)

		out[i+1].Add(&out[i+1], &coeff)
	}
	return out
}
