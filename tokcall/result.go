package tokcall

// Result is the outcome of a read-only remote call: either captured response
// bytes or an explicit failure. Decode pipelines inspect it via Bytes rather
// than handling an error value; a failed call and an empty response both end
// up as a fallback value downstream.
type Result struct {
	data []byte
	ok   bool
}

// Success wraps captured response bytes. An empty (or nil) slice is a valid
// successful result.
func Success(data []byte) Result {
	return Result{data: data, ok: true}
}

// Failure reports a call that produced no usable response.
func Failure() Result {
	return Result{}
}

// Bytes returns the captured response and whether the call succeeded.
func (r Result) Bytes() ([]byte, bool) {
	return r.data, r.ok
}
