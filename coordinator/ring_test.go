package coordinator

import (
	"fmt"
	"testing"
)

func TestRingConsistentMapping(t *testing.T) {
	r := NewRing([]string{"node1", "node2", "node3"}, 150)
	a, ok := r.Successor("test_key")
	if !ok {
		t.Fatal("expected a successor")
	}
	b, _ := r.Successor("test_key")
	if a != b {
		t.Errorf("same key mapped to different nodes: %s vs %s", a, b)
	}
}

func TestRingEmpty(t *testing.T) {
	r := NewRing(nil, 150)
	if _, ok := r.Successor("anything"); ok {
		t.Error("expected no successor on an empty ring")
	}
}

func TestRingDistribution(t *testing.T) {
	r := NewRing([]string{"node1", "node2", "node3"}, 150)
	counts := map[string]int{}
	for i := 0; i < 3000; i++ {
		node, _ := r.Successor(fmt.Sprintf("key%d", i))
		counts[node]++
	}
	if len(counts) != 3 {
		t.Fatalf("expected all 3 nodes to receive keys, got %v", counts)
	}
	for node, c := range counts {
		if c < 500 || c > 1500 {
			t.Errorf("node %s got unbalanced share: %d", node, c)
		}
	}
}

func TestRingNodeCount(t *testing.T) {
	r := NewRing([]string{"a", "b"}, 100)
	if r.NodeCount() != 2 {
		t.Errorf("got %d", r.NodeCount())
	}
	if len(r.AllNodes()) != 2 {
		t.Errorf("got %v", r.AllNodes())
	}
}
