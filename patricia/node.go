package patricia

import (
	"encoding/gob"

	"github.com/kazmiller0/distributed-storage-system/crypto"
	"github.com/kazmiller0/distributed-storage-system/utils"
)

type node struct {
	parent trieNode
}

type interiorNode struct {
	node
	Level      uint32
	leftChild  trieNode
	rightChild trieNode
	LeftHash   []byte
	RightHash  []byte
}

// entryNode is a leaf holding one keyword's encoded fid-list value.
type entryNode struct {
	node
	Level      uint32
	Keyword    string
	Value      []byte
	Index      []byte
	Commitment *crypto.Commit
}

type emptyNode struct {
	node
	Level uint32
	Index []byte
}

func newInteriorNode(parent trieNode, level uint32, prefixBits []bool) *interiorNode {
	prefixLeft := append([]bool(nil), prefixBits...)
	prefixLeft = append(prefixLeft, false)
	prefixRight := append([]bool(nil), prefixBits...)
	prefixRight = append(prefixRight, true)
	leftBranch := &emptyNode{
		Level: level + 1,
		Index: utils.ToBytes(prefixLeft),
	}

	rightBranch := &emptyNode{
		Level: level + 1,
		Index: utils.ToBytes(prefixRight),
	}
	newNode := &interiorNode{
		node: node{
			parent: parent,
		},
		Level:      level,
		leftChild:  leftBranch,
		rightChild: rightBranch,
		LeftHash:   nil,
		RightHash:  nil,
	}
	leftBranch.parent = newNode
	rightBranch.parent = newNode

	return newNode
}

// trieNode is implemented by interiorNode, entryNode, and emptyNode.
type trieNode interface {
	isEmpty() bool
	hash(*Trie) []byte
	clone(*interiorNode) trieNode
}

var _ trieNode = (*entryNode)(nil)
var _ trieNode = (*interiorNode)(nil)
var _ trieNode = (*emptyNode)(nil)

func (n *interiorNode) hash(m *Trie) []byte {
	if n.LeftHash == nil {
		n.LeftHash = n.leftChild.hash(m)
	}
	if n.RightHash == nil {
		n.RightHash = n.rightChild.hash(m)
	}
	return crypto.Digest(n.LeftHash, n.RightHash)
}

func (n *entryNode) hash(m *Trie) []byte {
	return crypto.Digest(
		[]byte{EntryIdentifier},
		m.nonce,
		n.Index,
		utils.UInt32ToBytes(n.Level),
		n.Commitment.Value,
	)
}

func (n *emptyNode) hash(m *Trie) []byte {
	return crypto.Digest(
		[]byte{EmptyBranchIdentifier},
		m.nonce,
		n.Index,
		utils.UInt32ToBytes(n.Level),
	)
}

func (n *interiorNode) clone(parent *interiorNode) trieNode {
	newNode := &interiorNode{
		node: node{
			parent: parent,
		},
		Level:     n.Level,
		LeftHash:  append([]byte{}, n.LeftHash...),
		RightHash: append([]byte{}, n.RightHash...),
	}
	if n.leftChild == nil ||
		n.rightChild == nil {
		panic(ErrInvalidTrie)
	}
	newNode.leftChild = n.leftChild.clone(newNode)
	newNode.rightChild = n.rightChild.clone(newNode)
	return newNode
}

func (n *entryNode) clone(parent *interiorNode) trieNode {
	return &entryNode{
		node: node{
			parent: parent,
		},
		Level:      n.Level,
		Keyword:    n.Keyword,
		Value:      n.Value,
		Index:      append([]byte{}, n.Index...),
		Commitment: n.Commitment,
	}
}

func (n *emptyNode) clone(parent *interiorNode) trieNode {
	return &emptyNode{
		node: node{
			parent: parent,
		},
		Level: n.Level,
		Index: append([]byte{}, n.Index...),
	}
}

func (n *entryNode) isEmpty() bool    { return false }
func (n *interiorNode) isEmpty() bool { return false }
func (n *emptyNode) isEmpty() bool    { return true }

func init() {
	gob.Register(&interiorNode{})
	gob.Register(&entryNode{})
	gob.Register(&emptyNode{})
}

// encodeNode encodes a trieNode n using the gob.Encoder enc.
// If n is an interior node, this also encodes n's children recursively.
func encodeNode(enc *gob.Encoder, n trieNode) error {
	if err := enc.Encode(&n); err != nil {
		return err
	}
	if in, ok := n.(*interiorNode); ok {
		if err := encodeNode(enc, in.leftChild); err != nil {
			return err
		}
		if err := encodeNode(enc, in.rightChild); err != nil {
			return err
		}
	}
	return nil
}

// decodeNode returns a trieNode from the decoder.
func decodeNode(dec *gob.Decoder) (trieNode, error) {
	var get trieNode
	if err := dec.Decode(&get); err != nil {
		return nil, err
	}
	return get, nil
}
