package ads

import (
	"reflect"
	"testing"
)

func TestEncodeDecodeFidsRoundTrip(t *testing.T) {
	fids := []string{"file1", "file2", "a long fid with spaces and :colons:"}
	buf := EncodeFids(fids)
	decoded, err := DecodeFids(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fids, decoded) {
		t.Errorf("got %v want %v", decoded, fids)
	}
}

func TestDecodeFidsEmpty(t *testing.T) {
	decoded, err := DecodeFids(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 0 {
		t.Errorf("expected empty slice, got %v", decoded)
	}
}

func TestAppendFidDuplicate(t *testing.T) {
	fids := []string{"a", "b"}
	_, ok := appendFid(fids, "a")
	if ok {
		t.Error("expected duplicate append to report ok=false")
	}
	result, ok := appendFid(fids, "c")
	if !ok {
		t.Fatal("expected fresh append to report ok=true")
	}
	if !reflect.DeepEqual(result, []string{"a", "b", "c"}) {
		t.Errorf("unexpected result %v", result)
	}
}

func TestRemoveFid(t *testing.T) {
	fids := []string{"a", "b", "c"}
	_, ok := removeFid(fids, "z")
	if ok {
		t.Error("expected removal of absent fid to report ok=false")
	}
	result, ok := removeFid(fids, "b")
	if !ok {
		t.Fatal("expected removal of present fid to report ok=true")
	}
	if !reflect.DeepEqual(result, []string{"a", "c"}) {
		t.Errorf("unexpected result %v", result)
	}
}
