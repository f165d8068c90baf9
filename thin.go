package eventp

import (
	"io"
	"unsafe"
)

// Platforms with pointer width other than 64 bits cannot carry a
// ThinSubscriber's address inside the kernel's 64-bit per-event cookie
// without truncation, so this package refuses to initialize on them.
func init() {
	if unsafe.Sizeof(uintptr(0)) != 8 {
		panic("eventp: only 64-bit pointer-width platforms are supported")
	}
}

// thinHeader is the fixed-size preamble that precedes every ThinSubscriber
// value in memory: the cached raw file descriptor (readable without
// dereferencing through the vtable) and the dispatch vtable for the value
// that follows. Its size is exactly two machine words on a 64-bit target,
// which is what makes the -2w/-1w offsets below correct.
type thinHeader struct {
	rawFD  int32
	vtable *subscriberVTable
}

var thinHeaderSize = unsafe.Sizeof(thinHeader{})

// subscriberVTable is the dispatch table co-allocated beside a ThinSubscriber's
// value, reconstructed from the value's address plus this pointer rather
// than from a Go interface's fat pointer (which would not fit in the
// kernel's 64-bit cookie).
type subscriberVTable struct {
	interestCell func(value unsafe.Pointer) *Interest
	handle       func(value unsafe.Pointer, ev Event, scope ScopedReactor)
	closeValue   func(value unsafe.Pointer) error
	notifyDetach func(value unsafe.Pointer)
}

// thinBlock is the single allocation backing a ThinSubscriber: header
// immediately followed by the inline subscriber value. ThinSubscriber
// itself only ever holds a pointer at &block.value; -1 word reaches
// vtable, -2 words reaches rawFD.
type thinBlock[S any] struct {
	thinHeader
	value S
}

// ptrSubscriber constrains PS to be a pointer-to-S type that itself
// satisfies Subscriber, the standard pattern for writing code generic over
// a value type S whose methods are defined on *S.
type ptrSubscriber[S any] interface {
	*S
	Subscriber
}

// ThinSubscriber is a one-machine-word owning handle to a subscriber value
// of any concrete type, living inside a single heap allocation alongside
// its cached raw fd and dispatch vtable. See NewThin.
type ThinSubscriber struct {
	ptr unsafe.Pointer
}

// NewThin allocates a ThinSubscriber wrapping value. S must be a non-zero-sized
// type whose pointer type PS implements Subscriber (i.e. value's methods
// are defined with pointer receivers, the ordinary Go idiom).
func NewThin[S any, PS ptrSubscriber[S]](value S) ThinSubscriber {
	if unsafe.Sizeof(value) == 0 {
		panic("eventp: zero-sized subscriber value is not supported")
	}

	block := &thinBlock[S]{value: value}
	if unsafe.Offsetof(block.value) != thinHeaderSize {
		// Only reachable for a subscriber value whose required alignment
		// exceeds a machine word, which no supported subscriber needs.
		panic("eventp: subscriber alignment incompatible with thin layout")
	}

	sp := PS(&block.value)
	block.rawFD = int32(sp.BorrowFD())
	block.vtable = vtableFor[S, PS]()

	return ThinSubscriber{ptr: unsafe.Pointer(&block.value)}
}

func vtableFor[S any, PS ptrSubscriber[S]]() *subscriberVTable {
	return &subscriberVTable{
		interestCell: func(v unsafe.Pointer) *Interest {
			return PS((*S)(v)).InterestCell()
		},
		handle: func(v unsafe.Pointer, ev Event, scope ScopedReactor) {
			PS((*S)(v)).Handle(ev, scope)
		},
		closeValue: func(v unsafe.Pointer) error {
			if c, ok := any(PS((*S)(v))).(io.Closer); ok {
				return c.Close()
			}
			return nil
		},
		notifyDetach: func(v unsafe.Pointer) {
			if d, ok := any(PS((*S)(v))).(Detacher); ok {
				d.OnDetached()
			}
		},
	}
}

func (t ThinSubscriber) header() *thinHeader {
	return (*thinHeader)(unsafe.Pointer(uintptr(t.ptr) - thinHeaderSize))
}

// RawFD reads the cached file descriptor directly from the header, with no
// dereference through the vtable and no allocation.
func (t ThinSubscriber) RawFD() int {
	return int(t.header().rawFD)
}

// Interest returns the pointer to the subscriber's own Interest cell.
func (t ThinSubscriber) Interest() *Interest {
	return t.header().vtable.interestCell(t.ptr)
}

// Handle dispatches a readiness event to the wrapped subscriber's Handle method.
func (t ThinSubscriber) Handle(ev Event, scope ScopedReactor) {
	t.header().vtable.handle(t.ptr, ev, scope)
}

// Close runs the wrapped value's Close method if it implements io.Closer,
// running the cleanup a subscriber needs on removal (e.g. closing a file
// descriptor it owns). It is a no-op otherwise.
func (t ThinSubscriber) Close() error {
	return t.header().vtable.closeValue(t.ptr)
}

// notifyDetached invokes OnDetached if the wrapped value implements
// Detacher. Called by the reactor after the value has been fully removed
// from the registration table.
func (t ThinSubscriber) notifyDetached() {
	t.header().vtable.notifyDetach(t.ptr)
}

// cookie is the 64-bit value handed to the kernel's epoll_ctl data field:
// the numeric address of the wrapped value.
func (t ThinSubscriber) cookie() uint64 {
	return uint64(uintptr(t.ptr))
}

// thinFromCookie reconstructs a non-owning, temporary view of a
// ThinSubscriber from a kernel-reported cookie. Callers must never drop
// ownership semantics onto this view: the registration table still owns
// the real handle.
func thinFromCookie(cookie uint64) ThinSubscriber {
	return ThinSubscriber{ptr: unsafe.Pointer(uintptr(cookie))}
}

func (t ThinSubscriber) isZero() bool { return t.ptr == nil }
