package eventp

// Registrar is the one operation a caller needs to register a subscriber,
// whether it holds a *Reactor or a ScopedReactor handed to it inside a
// handler. Both types satisfy it already via their own Add methods.
type Registrar interface {
	Add(sub ThinSubscriber) error
}

// Register wraps value in a ThinSubscriber and adds it to dst. S's pointer
// type PS must implement Subscriber, the same constraint NewThin enforces;
// this is the ordinary way application code registers a subscriber without
// naming ThinSubscriber or NewThin directly.
func Register[S any, PS ptrSubscriber[S]](dst Registrar, value S) error {
	return dst.Add(NewThin[S, PS](value))
}
