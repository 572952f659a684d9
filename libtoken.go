package libtoken

import (
	"context"

	"github.com/EllipX/libtoken/tokcall"
	"github.com/EllipX/libtoken/tokmeta"
)

// One-shot helpers for applications that don't need to keep a Network or a
// Store around.

// Discover connects to the given RPC endpoint and reads the metadata of the
// token contract at address.
func Discover(rpcURL, address string) (*tokmeta.Metadata, error) {
	n := tokcall.NewNetwork("", rpcURL)
	return tokmeta.Discover(context.Background(), n, address)
}
