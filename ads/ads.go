// Package ads defines the authenticated data structure facade a storage
// node runs one instance of per keyword: a uniform Add/Query/Delete
// capability set realized either over a dynamic cryptographic accumulator
// or a Merkle-Patricia trie, chosen once per storage node at startup.
package ads

import "github.com/kazmiller0/distributed-storage-system/storage/kv"

// ADS is the uniform capability set a storage node drives per keyword.
// Every operation must be deterministic given an identical mutation
// history, and every mutation returns a proof of the state transition
// alongside the resulting root digest.
type ADS interface {
	// Add records fid under keyword. It is idempotent: adding an
	// already-present (keyword, fid) pair is a no-op that returns a
	// valid proof and the unchanged root digest.
	Add(keyword, fid string) (proof []byte, rootDigest []byte, err error)

	// Query returns the fid list recorded for keyword, in insertion
	// order, alongside a proof. An unknown keyword returns an empty
	// fid list and an empty proof, not an error.
	Query(keyword string) (fids []string, proof []byte, err error)

	// Delete removes fid from keyword. It is a no-op, returning a valid
	// proof and the unchanged root digest, if keyword or fid is absent.
	Delete(keyword, fid string) (proof []byte, rootDigest []byte, err error)
}

// Kind names which concrete ADS a storage node instantiates.
type Kind string

const (
	KindAccumulator Kind = "accumulator"
	KindMPT         Kind = "mpt"
)

// New constructs an empty, purely in-memory ADS instance of the given
// kind.
func New(kind Kind) (ADS, error) {
	switch kind {
	case KindAccumulator:
		return NewAccumulatorADS(), nil
	case KindMPT:
		return NewMPTADS(), nil
	default:
		return nil, ErrorInternal.Error()
	}
}

// NewWithStore constructs an ADS instance of the given kind that persists
// keyword's fid list to store after every mutation and restores it from
// store at construction time, so a storage node's state for keyword
// survives a process restart. store may be nil, in which case this
// behaves exactly like New.
func NewWithStore(kind Kind, store kv.DB, keyword string) (ADS, error) {
	if store == nil {
		return New(kind)
	}
	switch kind {
	case KindAccumulator:
		return NewAccumulatorADSWithStore(store, keyword)
	case KindMPT:
		return NewMPTADSWithStore(store, keyword)
	default:
		return nil, ErrorInternal.Error()
	}
}
