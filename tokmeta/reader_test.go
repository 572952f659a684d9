package tokmeta

import (
	"bytes"
	"context"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/EllipX/libtoken/tokabi"
	"github.com/EllipX/libtoken/toktest"
)

const usdtAddress = "0xdAC17F958D2ee523a2206206994597C13D831ec7"

func encodeString(s string) []byte {
	buf := make([]byte, 64+(len(s)+31)/32*32)
	buf[31] = 32
	big.NewInt(int64(len(s))).FillBytes(buf[32:64])
	copy(buf[64:], s)
	return buf
}

func encodeUint(v int64) []byte {
	buf := make([]byte, 32)
	big.NewInt(v).FillBytes(buf)
	return buf
}

func sel(s []byte) string {
	return hex.EncodeToString(s)
}

func TestReadStringFallback(t *testing.T) {
	ctx := context.Background()

	// failed call
	c := &toktest.MockCaller{}
	if res := Name(ctx, c, usdtAddress); res != "" {
		t.Errorf("Name = %q on failed call, expected empty", res)
	}

	// empty response
	c = &toktest.MockCaller{Responses: map[string][]byte{sel(tokabi.SelName): {}}}
	if res := Name(ctx, c, usdtAddress); res != "" {
		t.Errorf("Name = %q on empty response, expected empty", res)
	}
}

func TestReadStringStrict(t *testing.T) {
	c := &toktest.MockCaller{Responses: map[string][]byte{
		sel(tokabi.SelName):   encodeString("Tether USD"),
		sel(tokabi.SelSymbol): encodeString("USDT"),
	}}

	if res := Name(context.Background(), c, usdtAddress); res != "Tether USD" {
		t.Errorf("Name = %q, expected %q", res, "Tether USD")
	}
	if res := Symbol(context.Background(), c, usdtAddress); res != "USDT" {
		t.Errorf("Symbol = %q, expected %q", res, "USDT")
	}
}

func TestReadStringRawScan(t *testing.T) {
	// some contracts return a NUL padded bytes32 instead of an ABI string
	raw := make([]byte, 32)
	copy(raw, "MKR")
	c := &toktest.MockCaller{Responses: map[string][]byte{sel(tokabi.SelSymbol): raw}}
	if res := Symbol(context.Background(), c, usdtAddress); res != "MKR" {
		t.Errorf("Symbol = %q, expected %q", res, "MKR")
	}

	// 63 bytes of non-zero data stays on the scan path even though the
	// first word parses as a plausible offset
	raw = bytes.Repeat([]byte{0x41}, 63)
	raw[31] = 32
	c = &toktest.MockCaller{Responses: map[string][]byte{sel(tokabi.SelName): raw}}
	if res := Name(context.Background(), c, usdtAddress); res != string(raw) {
		t.Errorf("Name = %q, expected the raw 63 bytes", res)
	}
}

func TestReadUint(t *testing.T) {
	ctx := context.Background()

	c := &toktest.MockCaller{Responses: map[string][]byte{sel(tokabi.SelTotalSupply): encodeUint(12345)}}
	if v := TotalSupply(ctx, c, usdtAddress); v.Int64() != 12345 {
		t.Errorf("TotalSupply = %s, expected 12345", v)
	}

	// short response
	c = &toktest.MockCaller{Responses: map[string][]byte{sel(tokabi.SelTotalSupply): make([]byte, 16)}}
	if v := TotalSupply(ctx, c, usdtAddress); v.Sign() != 0 {
		t.Errorf("TotalSupply = %s on short response, expected 0", v)
	}

	// failed call
	c = &toktest.MockCaller{}
	if v := TotalSupply(ctx, c, usdtAddress); v.Sign() != 0 {
		t.Errorf("TotalSupply = %s on failed call, expected 0", v)
	}
}

func TestDecimals(t *testing.T) {
	ctx := context.Background()

	c := &toktest.MockCaller{Responses: map[string][]byte{sel(tokabi.SelDecimals): encodeUint(6)}}
	if v := Decimals(ctx, c, usdtAddress); v != 6 {
		t.Errorf("Decimals = %d, expected 6", v)
	}

	// values above 255 are truncated to their low 8 bits
	c = &toktest.MockCaller{Responses: map[string][]byte{sel(tokabi.SelDecimals): encodeUint(300)}}
	if v := Decimals(ctx, c, usdtAddress); v != 44 {
		t.Errorf("Decimals = %d, expected 44", v)
	}

	c = &toktest.MockCaller{}
	if v := Decimals(ctx, c, usdtAddress); v != 0 {
		t.Errorf("Decimals = %d on failed call, expected 0", v)
	}
}

func TestDiscover(t *testing.T) {
	c := &toktest.MockCaller{Responses: map[string][]byte{
		sel(tokabi.SelName):        encodeString("Tether USD"),
		sel(tokabi.SelSymbol):      encodeString("USDT"),
		sel(tokabi.SelDecimals):    encodeUint(6),
		sel(tokabi.SelTotalSupply): encodeUint(1000000),
	}}

	m, err := Discover(context.Background(), c, usdtAddress)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if m.Name != "Tether USD" || m.Symbol != "USDT" || m.Decimals != 6 {
		t.Errorf("unexpected metadata: %+v", m)
	}
	if m.TotalSupply.Int64() != 1000000 {
		t.Errorf("TotalSupply = %s, expected 1000000", m.TotalSupply)
	}
	if m.Supply == nil {
		t.Error("Supply not set")
	}

	if _, err := Discover(context.Background(), c, "not an address"); err == nil {
		t.Error("Discover accepted an invalid address")
	}
}
