package wire

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestWriteReadJSONRoundTrip(t *testing.T) {
	req, err := NewRequest(MethodStorageAdd, StorageAddRequest{Keyword: "rust", Fid: "file1"})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, req); err != nil {
		t.Fatal(err)
	}

	var decoded Request
	if err := ReadJSON(&buf, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Method != MethodStorageAdd {
		t.Errorf("got method %q", decoded.Method)
	}

	var body StorageAddRequest
	if err := json.Unmarshal(decoded.Body, &body); err != nil {
		t.Fatal(err)
	}
	if body.Keyword != "rust" || body.Fid != "file1" {
		t.Errorf("got %+v", body)
	}
}

func TestReadJSONRejectsOversizedFrame(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	var v struct{}
	if err := ReadJSON(&buf, &v); err == nil {
		t.Error("expected error for oversized frame")
	}
}
