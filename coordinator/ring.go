package coordinator

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// DefaultVirtualNodes is the number of ring positions a physical storage
// node gets when no explicit count is requested.
const DefaultVirtualNodes = 150

// Ring is a consistent-hash ring over a fixed set of storage-node
// addresses. It is built once from the ordered address list and never
// mutated afterward: adding or removing a node requires rebuilding the
// ring, which this system only does at coordinator startup.
type Ring struct {
	points  []uint64
	byPoint map[uint64]string
	vnodes  map[string]int
	addrs   []string
}

// NewRing builds a ring over addrs, giving each address virtualNodes
// positions. addrs order is preserved only for AllNodes; routing
// depends solely on hash values.
func NewRing(addrs []string, virtualNodes int) *Ring {
	if virtualNodes <= 0 {
		virtualNodes = DefaultVirtualNodes
	}
	r := &Ring{
		byPoint: make(map[uint64]string),
		vnodes:  make(map[string]int),
		addrs:   append([]string{}, addrs...),
	}
	for _, addr := range addrs {
		r.addNode(addr, virtualNodes)
	}
	return r
}

func (r *Ring) addNode(addr string, virtualNodes int) {
	r.vnodes[addr] = virtualNodes
	for i := 0; i < virtualNodes; i++ {
		h := hashKey(fmt.Sprintf("%s#vnode%d", addr, i))
		r.byPoint[h] = addr
		r.points = append(r.points, h)
	}
	sort.Slice(r.points, func(i, j int) bool { return r.points[i] < r.points[j] })
}

// hashKey is the ring's stable, non-cryptographic 64-bit hash. It need not
// agree with the accumulator's element hash.
func hashKey(s string) uint64 {
	return xxhash.Sum64String(s)
}

// Successor returns the address owning key, walking the ring clockwise
// from hash(key) and wrapping around at the end. It reports false if the
// ring holds no nodes.
func (r *Ring) Successor(key string) (string, bool) {
	if len(r.points) == 0 {
		return "", false
	}
	h := hashKey(key)
	i := sort.Search(len(r.points), func(i int) bool { return r.points[i] >= h })
	if i == len(r.points) {
		i = 0
	}
	return r.byPoint[r.points[i]], true
}

// AllNodes returns the physical addresses the ring was constructed with,
// in construction order.
func (r *Ring) AllNodes() []string {
	return append([]string{}, r.addrs...)
}

// NodeCount reports the number of physical addresses in the ring.
func (r *Ring) NodeCount() int {
	return len(r.addrs)
}
