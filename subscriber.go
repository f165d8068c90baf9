package eventp

// Subscriber is the contract a value must satisfy to be registered with a
// Reactor. Implementations borrow a file descriptor for their lifetime,
// expose a single mutable Interest cell that the reactor writes to on a
// successful Modify, and handle delivered events.
//
// Handle is invoked by the reactor exactly once per delivered event. It may
// freely call ScopedReactor.Add/Modify/Delete, including against its own
// file descriptor, with the exceptions documented on ScopedReactor.
type Subscriber interface {
	// BorrowFD returns the file descriptor this subscriber watches. It must
	// remain stable and valid for the subscriber's lifetime.
	BorrowFD() int

	// InterestCell returns a pointer to the subscriber's own Interest
	// storage. Only the reactor's Modify writes through this pointer.
	InterestCell() *Interest

	// Handle is called with the readiness event and a scoped handle usable
	// to mutate the reactor's registration table.
	Handle(ev Event, scope ScopedReactor)
}

// Detacher is an optional extension a Subscriber may implement. If present,
// OnDetached is invoked once, off the reactor's dispatch goroutine, after
// Delete has removed the subscriber from the registration table (including
// after a deferred removal completes), routed through a bounded worker pool
// instead of an unbounded goroutine spawn per descriptor (see
// WithDetachPool). Subscribers replaced by Add or discarded by Reactor.Close
// are closed without an OnDetached call.
type Detacher interface {
	OnDetached()
}

// FuncSubscriber is the ordinary, thin way to assemble a Subscriber out of
// a bare file descriptor, an initial Interest, and a handler function. It
// is not a DSL — just enough glue that callers rarely need to define their
// own Subscriber type for simple cases.
type FuncSubscriber struct {
	fd       int
	interest Interest
	onEvent  func(ev Event, scope ScopedReactor)
}

// NewFuncSubscriber builds a FuncSubscriber watching fd with the given
// initial interest, dispatching every delivered event to onEvent.
func NewFuncSubscriber(fd int, interest Interest, onEvent func(ev Event, scope ScopedReactor)) *FuncSubscriber {
	return &FuncSubscriber{fd: fd, interest: interest, onEvent: onEvent}
}

// BorrowFD implements Subscriber.
func (f *FuncSubscriber) BorrowFD() int { return f.fd }

// InterestCell implements Subscriber.
func (f *FuncSubscriber) InterestCell() *Interest { return &f.interest }

// Handle implements Subscriber.
func (f *FuncSubscriber) Handle(ev Event, scope ScopedReactor) { f.onEvent(ev, scope) }
