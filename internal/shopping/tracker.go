package shopping

import "sync/atomic"

// RequestTracker hands out increasing request ids so that a caller can drop the result of a
// build that finished after a newer one was started. The zero value is ready to use.
type RequestTracker struct {
	latest atomic.Uint64
}

// Next issues a new request id and makes it the latest.
func (t *RequestTracker) Next() uint64 {
	return t.latest.Add(1)
}

// IsLatest reports whether id is still the most recently issued request id.
func (t *RequestTracker) IsLatest(id uint64) bool {
	return id != 0 && t.latest.Load() == id
}

// Latest returns the most recently issued id, 0 if none.
func (t *RequestTracker) Latest() uint64 {
	return t.latest.Load()
}
