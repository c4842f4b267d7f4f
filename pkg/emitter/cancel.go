package emitter

import "sync"

// CancelToken is the cooperative cancellation signal shared between the
// session manager (which flips it) and the emitter (which checks it before
// calling the runtime and between retry attempts). Unlike a context it does
// not tear down an in-flight runtime call; the run winds down at the next
// checkpoint.
type CancelToken struct {
	once sync.Once
	ch   chan struct{}
}

// NewCancelToken creates an unset token.
func NewCancelToken() *CancelToken {
	return &CancelToken{ch: make(chan struct{})}
}

// Cancel sets the token. Idempotent and safe for concurrent use.
func (t *CancelToken) Cancel() {
	t.once.Do(func() { close(t.ch) })
}

// Cancelled reports whether Cancel has been called.
func (t *CancelToken) Cancelled() bool {
	select {
	case <-t.ch:
		return true
	default:
		return false
	}
}

// Done exposes the token as a channel for select loops.
func (t *CancelToken) Done() <-chan struct{} {
	return t.ch
}
