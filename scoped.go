package eventp

// ScopedReactor is the pin-preserving handle passed to a Subscriber's Handle
// method. It exposes exactly Add/Modify/Delete — no Run* method — so
// a handler can mutate the registration table but can never re-enter
// dispatch or otherwise move the reactor it is being called from.
type ScopedReactor struct {
	r *Reactor
}

// Add registers sub with the underlying reactor. Calling it for an fd
// numerically equal to the fd currently being dispatched fails with
// ErrSelfReplacement.
func (s ScopedReactor) Add(sub ThinSubscriber) error { return s.r.Add(sub) }

// Modify applies a new Interest to fd's registration, effective at the next
// epoll_wait — including fd's own, in the middle of its own Handle call.
func (s ScopedReactor) Modify(fd int, interest Interest) error { return s.r.Modify(fd, interest) }

// Delete removes fd's registration. It may target any fd, including the one
// currently being dispatched; table removal is deferred until the current
// batch finishes.
func (s ScopedReactor) Delete(fd int) error { return s.r.Delete(fd) }
