package tokmeta

import (
	"context"
	"fmt"
	"math/big"

	"github.com/EllipX/ellipxobj"
	"github.com/EllipX/libtoken/tokcall"
	"github.com/ModChain/outscript"
)

// Metadata holds the readable metadata of a token contract.
type Metadata struct {
	Address     string            `json:"address"`
	Name        string            `json:"name"`
	Symbol      string            `json:"symbol"`
	Decimals    uint8             `json:"decimals"`
	TotalSupply *big.Int          `json:"totalSupply"`
	Supply      *ellipxobj.Amount `json:"supply"` // TotalSupply scaled by Decimals
}

// Discover reads name, symbol, decimals and total supply from the contract
// at address. Each field is read on a best effort basis; a field that cannot
// be read keeps its zero value. The only error condition is an invalid
// address.
func Discover(ctx context.Context, c tokcall.Caller, address string) (*Metadata, error) {
	addr, err := outscript.ParseEvmAddress(address)
	if err != nil {
		return nil, fmt.Errorf("failed to parse address: %w", err)
	}
	address, err = addr.Address() // re-output address to guarantee proper formatting
	if err != nil {
		return nil, err
	}

	m := &Metadata{Address: address}
	m.Name = Name(ctx, c, address)
	m.Symbol = Symbol(ctx, c, address)
	m.Decimals = Decimals(ctx, c, address)
	m.TotalSupply = TotalSupply(ctx, c, address)
	m.Supply = ellipxobj.NewAmountRaw(m.TotalSupply, int(m.Decimals))
	return m, nil
}
