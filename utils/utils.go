package utils

import "encoding/binary"

// GetNthBit finds the bit in the byte array bs
// at offset offset, and determines whether it is 1 or 0.
// return true if the nth bit is 1, false otherwise.
// from MSB to LSB order
func GetNthBit(bs []byte, offset uint32) bool {
	arrayOffset := offset / 8
	bitOfByte := offset % 8

	masked := int(bs[arrayOffset] & (1 << uint(7-bitOfByte)))
	return masked != 0
}

// UInt32ToBytes converts an uint32 variable to byte array
// in little endian format
func UInt32ToBytes(num uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, num)
	return buf
}

// ToBits unpacks bs into a slice of bools, one per bit, MSB to LSB order,
// matching the bit order GetNthBit reads in.
func ToBits(bs []byte) []bool {
	bits := make([]bool, len(bs)*8)
	for i := range bits {
		bits[i] = GetNthBit(bs, uint32(i))
	}
	return bits
}

// ToBytes packs bits into a byte slice, one bit per bool, MSB to LSB order.
// This is the inverse of ToBits.
func ToBytes(bits []bool) []byte {
	bs := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b {
			bs[i/8] |= 1 << uint(7-i%8)
		}
	}
	return bs
}
