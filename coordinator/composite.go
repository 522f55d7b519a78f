package coordinator

import (
	"encoding/binary"
	"fmt"

	"github.com/kazmiller0/distributed-storage-system/accumulator"
	"github.com/kazmiller0/distributed-storage-system/ads"
)

// compositeKind tags which ADS the component proofs inside a composite
// proof belong to, so a verifier knows the fixed stride to split on.
type compositeKind byte

const (
	compositeKindAccumulator compositeKind = 1
	compositeKindMPT         compositeKind = 2
)

func kindTag(kind ads.Kind) (compositeKind, int, error) {
	switch kind {
	case ads.KindAccumulator:
		return compositeKindAccumulator, accumulator.ProofSize, nil
	case ads.KindMPT:
		return compositeKindMPT, mptDigestSize, nil
	default:
		return 0, 0, fmt.Errorf("coordinator: unknown ads kind %q", kind)
	}
}

// MarshalComposite concatenates the per-leaf proofs of a boolean query
// into one buffer: a one-byte kind tag, a big-endian two-byte component
// count, then each component proof back to back. No delimiter is needed
// between components since the tag fixes each one's stride. A leaf whose
// query returned an empty (never-mentioned-keyword) proof contributes a
// zero-filled component so the stride stays uniform.
func MarshalComposite(kind ads.Kind, proofs [][]byte) ([]byte, error) {
	tag, stride, err := kindTag(kind)
	if err != nil {
		return nil, err
	}
	if len(proofs) > 1<<16-1 {
		return nil, fmt.Errorf("coordinator: too many components (%d) for a composite proof", len(proofs))
	}
	buf := make([]byte, 0, 3+len(proofs)*stride)
	buf = append(buf, byte(tag))
	var countBuf [2]byte
	binary.BigEndian.PutUint16(countBuf[:], uint16(len(proofs)))
	buf = append(buf, countBuf[:]...)
	for _, p := range proofs {
		component := make([]byte, stride)
		copy(component, p)
		buf = append(buf, component...)
	}
	return buf, nil
}

// UnmarshalComposite splits a composite proof back into its component
// proofs, each still independently verifiable with the Verifier for the
// returned kind. A component that MarshalComposite zero-filled for an
// empty leaf proof comes back zero-filled, not empty.
func UnmarshalComposite(buf []byte) (kind ads.Kind, components [][]byte, err error) {
	if len(buf) < 3 {
		return "", nil, fmt.Errorf("coordinator: composite proof too short")
	}
	tag := compositeKind(buf[0])
	count := binary.BigEndian.Uint16(buf[1:3])
	var stride int
	switch tag {
	case compositeKindAccumulator:
		kind = ads.KindAccumulator
		stride = accumulator.ProofSize
	case compositeKindMPT:
		kind = ads.KindMPT
		stride = mptDigestSize
	default:
		return "", nil, fmt.Errorf("coordinator: unknown composite proof kind tag %d", tag)
	}
	body := buf[3:]
	if len(body) != int(count)*stride {
		return "", nil, fmt.Errorf("coordinator: composite proof length mismatch")
	}
	components = make([][]byte, count)
	for i := 0; i < int(count); i++ {
		components[i] = body[i*stride : (i+1)*stride]
	}
	return kind, components, nil
}
