package tokabi

import (
	"bytes"
	"math/big"
)

// DecodeString extracts a single ABI-encoded dynamic string: a 32-byte
// offset, then at that offset a 32-byte length followed by that many content
// bytes. Returns false when data does not fit that layout, in which case the
// caller should fall back to ScanNullTerminated.
func DecodeString(data []byte) ([]byte, bool) {
	if len(data) < 64 { // Minimum size for offset (32 bytes) + length (32 bytes)
		return nil, false
	}

	offset := new(big.Int).SetBytes(data[:32])
	if !offset.IsUint64() || offset.Uint64() > uint64(len(data)-32) {
		return nil, false
	}
	o := int(offset.Uint64())

	length := new(big.Int).SetBytes(data[o : o+32])
	if !length.IsUint64() || length.Uint64() > uint64(len(data)-o-32) {
		return nil, false
	}
	n := int(length.Uint64())

	// copy with a trailing NUL sentinel, kept outside the returned slice
	buf := make([]byte, n+1)
	copy(buf, data[o+32:o+32+n])
	return buf[:n], true
}

// ScanNullTerminated treats data as a raw byte string and returns everything
// before the first zero byte, or all of data if it contains none. Many
// contracts return a fixed bytes32 padded with NULs instead of a proper ABI
// string; this recovers the readable part.
func ScanNullTerminated(data []byte) []byte {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		return data[:i]
	}
	return data
}

// DecodeUint256 reads the first 32 bytes of data as a big-endian unsigned
// integer. Returns zero when data is shorter than 32 bytes.
func DecodeUint256(data []byte) *big.Int {
	if len(data) < 32 {
		return new(big.Int)
	}
	return new(big.Int).SetBytes(data[:32])
}
