// Package wire implements the request/response framing storage nodes and
// the coordinator speak over plain TCP: a gRPC-style call/response
// exchange realized as length-prefixed JSON rather than Protocol Buffers,
// since nothing in this system's dependency stack pulls in grpc-go.
package wire

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// maxMessageSize bounds a single frame so a corrupt or hostile length
// prefix can't make a reader allocate unbounded memory.
const maxMessageSize = 64 << 20

// WriteJSON marshals v and writes it to w as a 4-byte big-endian length
// prefix followed by the JSON body.
func WriteJSON(w io.Writer, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(body)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err = w.Write(body)
	return err
}

// ReadJSON reads one length-prefixed JSON frame from r and decodes it
// into v.
func ReadJSON(r io.Reader, v interface{}) error {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	if n > maxMessageSize {
		return fmt.Errorf("wire: frame of %d bytes exceeds maximum of %d", n, maxMessageSize)
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}
