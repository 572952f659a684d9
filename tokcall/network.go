package tokcall

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/ModChain/ethrpc"
	"github.com/ModChain/outscript"
)

// Network is a Caller backed by an EVM JSON-RPC endpoint.
type Network struct {
	ChainId  string         // chain id from chainlist
	Name     string         // name, informational only
	RPC      string         // rpc url, or multiple space-separated urls
	validRPC ethrpc.Handler // valid RPC servers
}

func NewNetwork(chainId, rpcURL string) *Network {
	return &Network{ChainId: chainId, RPC: rpcURL}
}

func (n *Network) String() string {
	if n.Name != "" {
		return n.Name
	}
	return "evm." + n.ChainId
}

func (n *Network) getRPC() (ethrpc.Handler, error) {
	if n.validRPC != nil {
		return n.validRPC, nil
	}

	list := strings.Fields(n.RPC)
	switch len(list) {
	case 0:
		return nil, errors.New("no RPC endpoint configured")
	case 1:
		n.validRPC = ethrpc.New(list[0])
		return n.validRPC, nil
	}

	// multiple RPC servers given, select the best one
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	h, err := ethrpc.Evaluate(ctx, list...)
	if err != nil {
		return nil, err
	}
	n.validRPC = h
	return h, nil
}

func (n *Network) DoRPC(ctx context.Context, method string, args ...any) (json.RawMessage, error) {
	h, err := n.getRPC()
	if err != nil {
		return nil, err
	}
	return h.DoCtx(ctx, method, args...)
}

// Call performs a read-only eth_call against to with the given input data.
// Any RPC failure, invalid address or malformed response maps to Failure().
func (n *Network) Call(ctx context.Context, to string, data []byte, max int) Result {
	addr, err := outscript.ParseEvmAddress(to)
	if err != nil {
		return Failure()
	}
	to, err = addr.Address() // re-output address to guarantee proper formatting
	if err != nil {
		return Failure()
	}

	param := map[string]string{
		"to":   to,
		"data": "0x" + hex.EncodeToString(data),
	}
	hexStr, err := ethrpc.ReadString(n.DoRPC(ctx, "eth_call", param, "latest"))
	if err != nil {
		log.Printf("eth_call %s failed: %s", to, err)
		return Failure()
	}
	hexStr = strings.TrimPrefix(hexStr, "0x")

	buf, err := hex.DecodeString(hexStr)
	if err != nil {
		return Failure()
	}
	if max > 0 && len(buf) > max {
		buf = buf[:max]
	}
	return Success(buf)
}
