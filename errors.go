package eventp

import "errors"

// ErrNotFound is returned by Modify (and internal lookups) when the given
// file descriptor is not registered with the reactor.
var ErrNotFound = errors.New("eventp: fd not registered")

// ErrSelfReplacement is returned by Add when a handler, while it is being
// invoked for fd, attempts to register a new subscriber whose file
// descriptor is numerically equal to fd. Accepting it would replace the
// subscriber currently being dispatched out from under itself.
var ErrSelfReplacement = errors.New("eventp: cannot replace the subscriber of itself at running")

// ErrInterrupted wraps an EINTR returned from epoll_wait by RunOnce and
// RunOnceWithTimeout (the single-shot calls). RunForever retries EINTR transparently instead of
// returning it.
var ErrInterrupted = errors.New("eventp: interrupted")

// ErrExclusiveOnModify is returned by Modify when the given Interest has
// EXCLUSIVE set. The kernel only accepts EPOLLEXCLUSIVE on initial
// registration (EPOLL_CTL_ADD); Modify rejects it before issuing
// EPOLL_CTL_MOD rather than relying on the kernel to report EINVAL.
var ErrExclusiveOnModify = errors.New("eventp: EXCLUSIVE interest is not valid on modify")
