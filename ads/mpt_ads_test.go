package ads

import (
	"bytes"
	"reflect"
	"testing"
)

func TestMPTADSAddQuery(t *testing.T) {
	m := NewMPTADS()
	root1, _, err := m.Add("rust", "file1")
	if err != nil {
		t.Fatal(err)
	}
	if len(root1) != 32 {
		t.Fatalf("expected 32-byte root digest, got %d bytes", len(root1))
	}
	fids, proof, err := m.Query("rust")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fids, []string{"file1"}) {
		t.Errorf("got %v", fids)
	}
	if !bytes.Equal(proof, root1) {
		t.Error("mpt proof must equal the post-add root digest")
	}
}

func TestMPTADSInsertionOrder(t *testing.T) {
	m := NewMPTADS()
	if _, _, err := m.Add("rust", "file1"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := m.Add("rust", "file2"); err != nil {
		t.Fatal(err)
	}
	fids, _, err := m.Query("rust")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fids, []string{"file1", "file2"}) {
		t.Errorf("got %v, want insertion order", fids)
	}
}

func TestMPTADSDuplicateAddIsNoOp(t *testing.T) {
	m := NewMPTADS()
	_, root1, err := m.Add("rust", "file1")
	if err != nil {
		t.Fatal(err)
	}
	_, root2, err := m.Add("rust", "file1")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(root1, root2) {
		t.Error("duplicate add must not change the root digest")
	}
	fids, _, err := m.Query("rust")
	if err != nil {
		t.Fatal(err)
	}
	if len(fids) != 1 {
		t.Errorf("duplicate add must not duplicate the fid, got %v", fids)
	}
}

func TestMPTADSDeleteLastFidClearsKeyword(t *testing.T) {
	m := NewMPTADS()
	emptyRoot, _, err := m.Add("rust", "placeholder")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := m.Delete("rust", "placeholder"); err != nil {
		t.Fatal(err)
	}
	fids, proof, err := m.Query("rust")
	if err != nil {
		t.Fatal(err)
	}
	if len(fids) != 0 || proof != nil {
		t.Errorf("expected empty result after deleting last fid, got fids=%v proof=%v", fids, proof)
	}
	_ = emptyRoot
}

func TestMPTADSDeleteAbsentIsNoOp(t *testing.T) {
	m := NewMPTADS()
	_, root1, err := m.Add("rust", "file1")
	if err != nil {
		t.Fatal(err)
	}
	_, root2, err := m.Delete("rust", "file-never-added")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(root1, root2) {
		t.Error("deleting an absent fid must not change the root digest")
	}
}

func TestMPTADSQueryUnknownKeyword(t *testing.T) {
	m := NewMPTADS()
	fids, proof, err := m.Query("never-indexed")
	if err != nil {
		t.Fatal(err)
	}
	if len(fids) != 0 || proof != nil {
		t.Errorf("expected empty result for unknown keyword, got fids=%v proof=%v", fids, proof)
	}
}

func TestMPTADSAddDeleteQuery(t *testing.T) {
	m := NewMPTADS()
	if _, _, err := m.Add("rust", "file1"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := m.Add("rust", "file2"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := m.Delete("rust", "file1"); err != nil {
		t.Fatal(err)
	}
	fids, _, err := m.Query("rust")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fids, []string{"file2"}) {
		t.Errorf("got %v", fids)
	}
}
