package toktest

import (
	"context"
	"encoding/hex"

	"github.com/EllipX/libtoken/tokcall"
)

func getTestNetwork() *tokcall.Network {
	return &tokcall.Network{
		ChainId: "1",
		Name:    "Ethereum Mainnet",
		RPC:     "https://ethereum.publicnode.com",
	}
}

// MockCaller replays canned responses keyed by the hex form of the call
// payload. Payloads with no scripted response behave as a failed call.
type MockCaller struct {
	Responses map[string][]byte
}

func (m *MockCaller) Call(ctx context.Context, to string, data []byte, max int) tokcall.Result {
	buf, ok := m.Responses[hex.EncodeToString(data)]
	if !ok {
		return tokcall.Failure()
	}
	if max > 0 && len(buf) > max {
		buf = buf[:max]
	}
	return tokcall.Success(buf)
}
