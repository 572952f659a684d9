package tokcall

import "context"

// Caller performs a read-only remote invocation of the contract at to with
// the given input data. Implementations must not mutate any state on the
// target and must return Failure() rather than partial data when the call
// errors. When max > 0 the captured response is truncated to max bytes.
type Caller interface {
	Call(ctx context.Context, to string, data []byte, max int) Result
}
