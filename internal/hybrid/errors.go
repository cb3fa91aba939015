package hybrid

import "fmt"

// HybridError tags an error from one branch without transforming it:
// the textual rendering delegates verbatim to the inner error and
// Unwrap exposes it to errors.Is and errors.As. Streaming-body
// failures keep their branch identity this way, unlike the top-level
// per-request error where the branch is erased.
type HybridError struct {
	branch Branch
	err    error
}

func newHybridError(branch Branch, err error) *HybridError {
	return &HybridError{branch: branch, err: err}
}

// WebError wraps a web-branch error.
func WebError(err error) *HybridError {
	return newHybridError(BranchWeb, err)
}

// RpcError wraps an rpc-branch error.
func RpcError(err error) *HybridError {
	return newHybridError(BranchRpc, err)
}

func (e *HybridError) Branch() Branch {
	return e.branch
}

func (e *HybridError) Error() string {
	return e.err.Error()
}

func (e *HybridError) Unwrap() error {
	return e.err
}

// GoString mirrors the inner error's debug rendering.
func (e *HybridError) GoString() string {
	return fmt.Sprintf("%#v", e.err)
}
