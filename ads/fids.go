package ads

import "encoding/binary"

// EncodeFids packs an ordered fid list into the canonical wire encoding:
// each fid as a 4-byte big-endian length prefix followed by its UTF-8
// bytes, concatenated in order. This is used as the value an authenticated
// data structure stores for a keyword, so insertion order survives a
// round trip even though individual fids may contain any byte sequence a
// comma-joined encoding could not distinguish.
func EncodeFids(fids []string) []byte {
	var size int
	for _, f := range fids {
		size += 4 + len(f)
	}
	buf := make([]byte, 0, size)
	var lenBuf [4]byte
	for _, f := range fids {
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(f)))
		buf = append(buf, lenBuf[:]...)
		buf = append(buf, f...)
	}
	return buf
}

// DecodeFids reverses EncodeFids. A nil or empty buf decodes to an empty,
// non-nil slice.
func DecodeFids(buf []byte) ([]string, error) {
	fids := make([]string, 0)
	for len(buf) > 0 {
		if len(buf) < 4 {
			return nil, ErrorInternal.Error()
		}
		n := binary.BigEndian.Uint32(buf[:4])
		buf = buf[4:]
		if uint32(len(buf)) < n {
			return nil, ErrorInternal.Error()
		}
		fids = append(fids, string(buf[:n]))
		buf = buf[n:]
	}
	return fids, nil
}

// appendFid returns fids with fid appended, unless fid is already present,
// in which case it returns fids unchanged and ok=false.
func appendFid(fids []string, fid string) (result []string, ok bool) {
	for _, f := range fids {
		if f == fid {
			return fids, false
		}
	}
	return append(append([]string{}, fids...), fid), true
}

// removeFid returns fids with fid removed, unless fid is absent, in which
// case it returns fids unchanged and ok=false.
func removeFid(fids []string, fid string) (result []string, ok bool) {
	for i, f := range fids {
		if f == fid {
			out := make([]string, 0, len(fids)-1)
			out = append(out, fids[:i]...)
			out = append(out, fids[i+1:]...)
			return out, true
		}
	}
	return fids, false
}
