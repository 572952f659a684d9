// Package tokmeta reads token metadata (name, symbol, decimals, total
// supply) from contracts on a best effort basis: malformed, truncated or
// missing responses never produce an error, only the fallback value (empty
// string or zero). Callers that need to distinguish "zero" from "could not
// be read" have no signal to do so; metadata display is non-critical and
// this trade-off is deliberate.
package tokmeta

import (
	"context"
	"math/big"

	"github.com/EllipX/libtoken/tokabi"
	"github.com/EllipX/libtoken/tokcall"
)

// maxReturnSize caps how much of a call response gets captured. Metadata
// values are tiny; anything larger is an endpoint misbehaving.
const maxReturnSize = 4096

// Name returns the token name of target, or "" if it cannot be read.
func Name(ctx context.Context, c tokcall.Caller, target string) string {
	return ReadString(ctx, c, target, tokabi.SelName)
}

// Symbol returns the token symbol of target, or "" if it cannot be read.
func Symbol(ctx context.Context, c tokcall.Caller, target string) string {
	return ReadString(ctx, c, target, tokabi.SelSymbol)
}

// Decimals returns the token decimals of target truncated to 8 bits, or 0 if
// it cannot be read.
func Decimals(ctx context.Context, c tokcall.Caller, target string) uint8 {
	v := ReadUint(ctx, c, target, tokabi.SelDecimals)
	b := v.Bytes()
	if len(b) == 0 {
		return 0
	}
	return b[len(b)-1]
}

// TotalSupply returns the token total supply of target, or zero if it cannot
// be read.
func TotalSupply(ctx context.Context, c tokcall.Caller, target string) *big.Int {
	return ReadUint(ctx, c, target, tokabi.SelTotalSupply)
}

// ReadString performs a read-only call with the given payload and decodes
// the response as a string: first as an ABI dynamic string, then as raw
// null-terminated bytes. A failed call or empty response yields "".
func ReadString(ctx context.Context, c tokcall.Caller, target string, payload []byte) string {
	buf, ok := c.Call(ctx, target, payload, maxReturnSize).Bytes()
	if !ok || len(buf) == 0 {
		return ""
	}
	if s, ok := tokabi.DecodeString(buf); ok {
		return string(s)
	}
	return string(tokabi.ScanNullTerminated(buf))
}

// ReadUint performs a read-only call with the given payload and decodes the
// first 32 bytes of the response as a big-endian unsigned integer. A failed
// call or a response shorter than 32 bytes yields zero.
func ReadUint(ctx context.Context, c tokcall.Caller, target string, payload []byte) *big.Int {
	buf, ok := c.Call(ctx, target, payload, maxReturnSize).Bytes()
	if !ok {
		return new(big.Int)
	}
	return tokabi.DecodeUint256(buf)
}
