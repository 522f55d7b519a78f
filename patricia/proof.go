package patricia

import (
	"bytes"

	"github.com/kazmiller0/distributed-storage-system/crypto"
	"github.com/kazmiller0/distributed-storage-system/utils"
)

// ProofNode is the leaf reached by a lookup: either a keyword entry or an
// empty leaf. Which one it is is given by IsEmpty.
type ProofNode struct {
	Level      uint32
	Index      []byte
	Value      []byte
	IsEmpty    bool
	Commitment *crypto.Commit
}

func (n *ProofNode) hash(trieNonce []byte) []byte {
	if n.IsEmpty {
		return crypto.Digest(
			[]byte{EmptyBranchIdentifier},
			trieNonce,
			n.Index,
			utils.UInt32ToBytes(n.Level),
		)
	}
	return crypto.Digest(
		[]byte{EntryIdentifier},
		trieNonce,
		n.Index,
		utils.UInt32ToBytes(n.Level),
		n.Commitment.Value,
	)
}

// ProofType distinguishes a proof of inclusion from a proof of absence.
type ProofType int

const (
	undeterminedProof ProofType = iota
	ProofOfAbsence
	ProofOfInclusion
)

// AuthenticationPath is the pruned sibling-hash path between a leaf and
// the trie root: a proof of inclusion (when the leaf's index equals the
// lookup index) or of absence otherwise.
type AuthenticationPath struct {
	TrieNonce   []byte
	PrunedTrie  [][crypto.HashSizeByte]byte
	LookupIndex []byte
	Leaf        *ProofNode
	proofType   ProofType
}

func (ap *AuthenticationPath) authPathHash() []byte {
	hash := ap.Leaf.hash(ap.TrieNonce)
	indexBits := utils.ToBits(ap.Leaf.Index)
	depth := ap.Leaf.Level
	for depth > 0 {
		depth--
		if indexBits[depth] {
			hash = crypto.Digest(ap.PrunedTrie[depth][:], hash)
		} else {
			hash = crypto.Digest(hash, ap.PrunedTrie[depth][:])
		}
	}
	return hash
}

func (ap *AuthenticationPath) verifyBinding(keyword string, value []byte) bool {
	return bytes.Equal(ap.Leaf.Value, value) &&
		ap.Leaf.Commitment.Verify([]byte(keyword), value)
}

// Verify recomputes the trie root from the authentication path and
// compares it against rootHash.
func (ap *AuthenticationPath) Verify(keyword string, value, rootHash []byte) bool {
	if ap.ProofType() == ProofOfAbsence {
		indexBits := utils.ToBits(ap.Leaf.Index)
		lookupIndexBits := utils.ToBits(ap.LookupIndex)
		for i := 0; i < int(ap.Leaf.Level); i++ {
			if indexBits[i] != lookupIndexBits[i] {
				return false
			}
		}
	} else {
		if !ap.verifyBinding(keyword, value) {
			return false
		}
	}
	return bytes.Equal(rootHash, ap.authPathHash())
}

// ProofType reports whether ap is a proof of inclusion or absence.
func (ap *AuthenticationPath) ProofType() ProofType {
	if ap.proofType == undeterminedProof {
		if bytes.Equal(ap.LookupIndex, ap.Leaf.Index) {
			ap.proofType = ProofOfInclusion
		} else {
			ap.proofType = ProofOfAbsence
		}
	}
	return ap.proofType
}
