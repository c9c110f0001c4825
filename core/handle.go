package core

import "sync/atomic"

// Handle is a stable body identity used as the key of index side tables
// Zero is never issued
type Handle uint64

var lastHandle atomic.Uint64

// NewHandle returns a process-unique non-zero handle
func NewHandle() Handle {
	return Handle(lastHandle.Add(1))
}
