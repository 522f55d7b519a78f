// Package patricia implements the Merkle-Patricia authenticated index:
// a binary, bit-indexed prefix trie mapping a keyword to its encoded
// fid-list value, with a 32-byte root digest that changes whenever any
// keyword's entry changes.
package patricia

import (
	"bytes"
	"encoding/gob"
	"errors"
	"io"

	"github.com/kazmiller0/distributed-storage-system/crypto"
	"github.com/kazmiller0/distributed-storage-system/utils"
)

var (
	// ErrInvalidTrie indicates a panic due to a malformed operation on the trie.
	ErrInvalidTrie = errors.New("[patricia] invalid trie")
)

const (
	// EmptyBranchIdentifier is the domain separation prefix for empty node hashes.
	EmptyBranchIdentifier = 'E'

	// EntryIdentifier is the domain separation prefix for keyword entry node hashes.
	EntryIdentifier = 'K'
)

// Trie is the Merkle-Patricia trie holding one storage node's keyword set
// for a single ADS instance. It includes the root node, its hash, and a
// random trie-specific nonce.
type Trie struct {
	nonce []byte
	root  *interiorNode
	hash  []byte
}

// NewTrie returns an empty trie with a secure random nonce. The trie
// root is an interior node whose children are two empty leaves.
func NewTrie() (*Trie, error) {
	root := newInteriorNode(nil, 0, []bool{})
	nonce, err := crypto.MakeRand()
	if err != nil {
		return nil, err
	}
	t := &Trie{
		nonce: nonce,
		root:  root,
	}
	return t, nil
}

// RootHash returns the trie's current root digest. Get/Insert/Delete do
// not recompute the hash eagerly; call Recompute first if the hash must
// reflect the latest mutation.
func (t *Trie) RootHash() []byte {
	return append([]byte{}, t.hash...)
}

// Recompute recomputes and caches the trie's root hash.
func (t *Trie) Recompute() {
	t.hash = t.root.hash(t)
}

// Get returns an AuthenticationPath proving inclusion or absence of the
// given lookupIndex (the keyword's digest).
func (t *Trie) Get(lookupIndex []byte) *AuthenticationPath {
	lookupIndexBits := utils.ToBits(lookupIndex)
	depth := 0
	var nodePointer trieNode
	nodePointer = t.root

	authPath := &AuthenticationPath{
		TrieNonce:   t.nonce,
		LookupIndex: lookupIndex,
	}

	for {
		if _, ok := nodePointer.(*entryNode); ok {
			break
		}
		if _, ok := nodePointer.(*emptyNode); ok {
			break
		}
		direction := lookupIndexBits[depth]
		var hashArr [crypto.HashSizeByte]byte
		if direction {
			copy(hashArr[:], nodePointer.(*interiorNode).LeftHash)
			nodePointer = nodePointer.(*interiorNode).rightChild
		} else {
			copy(hashArr[:], nodePointer.(*interiorNode).RightHash)
			nodePointer = nodePointer.(*interiorNode).leftChild
		}
		authPath.PrunedTrie = append(authPath.PrunedTrie, hashArr)
		depth++
	}

	if nodePointer == nil {
		panic(ErrInvalidTrie)
	}
	switch n := nodePointer.(type) {
	case *entryNode:
		authPath.Leaf = &ProofNode{
			Level:      n.Level,
			Index:      n.Index,
			Value:      n.Value,
			IsEmpty:    false,
			Commitment: &crypto.Commit{Salt: n.Commitment.Salt, Value: n.Commitment.Value},
		}
		if bytes.Equal(n.Index, lookupIndex) {
			return authPath
		}
		// reached a different leaf sharing a prefix: strip its value/salt
		authPath.Leaf.Value = nil
		authPath.Leaf.Commitment.Salt = nil
		return authPath
	case *emptyNode:
		authPath.Leaf = &ProofNode{
			Level:      n.Level,
			Index:      n.Index,
			Value:      nil,
			IsEmpty:    true,
			Commitment: nil,
		}
		return authPath
	}
	panic(ErrInvalidTrie)
}

// Insert adds or replaces the keyword's encoded fid-list value at index
// (the keyword's digest). On update, a fresh commitment is generated.
func (t *Trie) Insert(index []byte, keyword string, value []byte) error {
	commitment, err := crypto.NewCommit([]byte(keyword), value)
	if err != nil {
		return err
	}
	toAdd := entryNode{
		Keyword:    keyword,
		Value:      append([]byte{}, value...),
		Index:      index,
		Commitment: commitment,
	}
	t.insertNode(index, &toAdd)
	return nil
}

// Delete removes the keyword's entry at index, if present, replacing
// its leaf with an empty leaf indexed by the leaf's path prefix, as a
// freshly split empty leaf is. It is a no-op if the index is absent.
func (t *Trie) Delete(index []byte) {
	indexBits := utils.ToBits(index)
	depth := uint32(0)
	var nodePointer trieNode
	nodePointer = t.root

	for {
		switch n := nodePointer.(type) {
		case *entryNode:
			if !bytes.Equal(n.Index, index) {
				return
			}
			parent := n.parent.(*interiorNode)
			empty := &emptyNode{
				node:  node{parent: parent},
				Level: n.Level,
				Index: utils.ToBytes(indexBits[:n.Level]),
			}
			if parent.leftChild == nodePointer {
				parent.leftChild = empty
				parent.LeftHash = nil
			} else {
				parent.rightChild = empty
				parent.RightHash = nil
			}
			return
		case *emptyNode:
			return
		case *interiorNode:
			direction := indexBits[depth]
			if direction {
				n.RightHash = nil
				nodePointer = n.rightChild
			} else {
				n.LeftHash = nil
				nodePointer = n.leftChild
			}
			depth++
		default:
			panic(ErrInvalidTrie)
		}
	}
}

func (t *Trie) insertNode(index []byte, toAdd *entryNode) {
	indexBits := utils.ToBits(index)
	var depth uint32
	var nodePointer trieNode
	nodePointer = t.root

insertLoop:
	for {
		switch n := nodePointer.(type) {
		case *entryNode:
			if n.parent == nil {
				panic(ErrInvalidTrie)
			}

			if bytes.Equal(n.Index, toAdd.Index) {
				toAdd.parent = n.parent
				toAdd.Level = n.Level
				*n = *toAdd
				return
			}

			newInterior := newInteriorNode(n.parent, depth, indexBits[:depth])

			direction := utils.GetNthBit(n.Index, depth)
			if direction {
				newInterior.rightChild = n
			} else {
				newInterior.leftChild = n
			}
			n.Level = depth + 1
			n.parent = newInterior
			if newInterior.parent.(*interiorNode).leftChild == nodePointer {
				newInterior.parent.(*interiorNode).leftChild = newInterior
			} else {
				newInterior.parent.(*interiorNode).rightChild = newInterior
			}
			nodePointer = newInterior
		case *interiorNode:
			direction := indexBits[depth]
			if direction {
				n.RightHash = nil
				if n.rightChild.isEmpty() {
					n.rightChild = toAdd
					toAdd.Level = depth + 1
					toAdd.parent = n
					break insertLoop
				}
				nodePointer = n.rightChild
			} else {
				n.LeftHash = nil
				if n.leftChild.isEmpty() {
					n.leftChild = toAdd
					toAdd.Level = depth + 1
					toAdd.parent = n
					break insertLoop
				}
				nodePointer = n.leftChild
			}
			depth++
		default:
			panic(ErrInvalidTrie)
		}
	}
}

// Clone returns a copy of the trie. Later changes to the original do not
// affect the clone, and vice versa.
func (t *Trie) Clone() *Trie {
	return &Trie{
		nonce: t.nonce,
		root:  t.root.clone(nil).(*interiorNode),
		hash:  append([]byte{}, t.hash...),
	}
}

// EncodeTo writes the trie's nonce and node tree to buff.
func EncodeTo(buff io.Writer, t *Trie) error {
	enc := gob.NewEncoder(buff)
	if err := enc.Encode(t.nonce); err != nil {
		return err
	}
	return encodeNode(enc, t.root)
}

// DecodeFrom reconstructs a trie from a buffer written by EncodeTo.
func DecodeFrom(buff io.Reader) (*Trie, error) {
	t := new(Trie)
	dec := gob.NewDecoder(buff)
	if err := dec.Decode(&t.nonce); err != nil {
		return nil, err
	}
	root, err := reconstructTrie(dec, nil)
	if err != nil {
		return nil, err
	}
	t.root = root.(*interiorNode)
	t.hash = t.root.hash(t)
	return t, nil
}

func reconstructTrie(dec *gob.Decoder, parent trieNode) (trieNode, error) {
	n, err := decodeNode(dec)
	if err != nil {
		return nil, err
	}

	switch v := n.(type) {
	case *emptyNode:
		v.parent = parent
		return v, nil
	case *entryNode:
		v.parent = parent
		return v, nil
	case *interiorNode:
		v.parent = parent
		v.leftChild, err = reconstructTrie(dec, v)
		if err != nil {
			return nil, err
		}
		v.rightChild, err = reconstructTrie(dec, v)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	panic(ErrInvalidTrie)
}
