//go:build linux
// +build linux

package eventp

import (
	"time"

	"github.com/panjf2000/ants/v2"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/go-eventp/eventp/internal/epollevent"
	"github.com/go-eventp/eventp/log"
	"github.com/go-eventp/eventp/metrics"
)

// handlingState exists only while a dispatch batch is in progress. Its
// presence is itself the re-entrancy guard: Add rejects self-replacement by
// comparing against currentFD, and Delete defers table mutation to after the
// batch by checking whether this is non-nil at all.
type handlingState struct {
	currentFD      int
	deferredRemove []int
}

// Reactor is the epoll-backed dispatch engine. It owns the epoll
// instance, the fd-keyed registration table, a reusable event buffer, and
// the re-entrancy state present during dispatch. A Reactor must not be used
// from more than one goroutine concurrently; cross-thread interaction goes
// through an external collaborator such as the remote package.
type Reactor struct {
	epollFD    int
	registered map[int]ThinSubscriber
	events     []epollevent.EpollEvent
	handling   *handlingState
	detachPool *ants.PoolWithFunc
}

// New constructs a Reactor. It allocates the epoll instance and the
// detach-notification pool; both are released by Close.
func New(opts ...Option) (*Reactor, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	epfd, err := epollCreate1(o.createFlags)
	if err != nil {
		return nil, err
	}
	pool, err := newDetachPool(o.detachPoolSize)
	if err != nil {
		_ = unix.Close(epfd)
		return nil, pkgerrors.Wrap(err, "eventp: failed to start detach pool")
	}

	return &Reactor{
		epollFD:    epfd,
		registered: make(map[int]ThinSubscriber),
		events:     make([]epollevent.EpollEvent, o.bufferCapacity),
		detachPool: pool,
	}, nil
}

func wrapSyscallErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return pkgerrors.Wrap(err, op)
}

// Add registers sub with the reactor, arming the kernel with its current
// interest. If the table already holds a subscriber for the same fd and the
// kernel accepts the registration (the earlier descriptor having left the
// epoll set, e.g. closed and its number reused), the prior owner is closed
// and the table entry overwritten. If the fd is still in the epoll set, the
// kernel reports EEXIST, Add returns that error, and the existing entry is
// kept.
func (r *Reactor) Add(sub ThinSubscriber) error {
	fd := sub.RawFD()
	if r.handling != nil && r.handling.currentFD == fd {
		metrics.Add(metrics.SelfReplacementRejected, 1)
		return ErrSelfReplacement
	}

	var ev epollevent.EpollEvent
	ev.Events = sub.Interest().Bits()
	setCookie(&ev, sub.cookie())

	if err := epollCtl(r.epollFD, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return wrapSyscallErr("epoll_ctl add", err)
	}
	metrics.Add(metrics.EpollCtlAdd, 1)

	if prev, ok := r.registered[fd]; ok {
		if cerr := prev.Close(); cerr != nil {
			log.Warnf("eventp: closing replaced subscriber for fd %d: %v", fd, cerr)
		}
	}
	r.registered[fd] = sub
	return nil
}

// Modify applies a new Interest to the subscriber registered for fd,
// updating both the kernel registration and the subscriber's own interest
// cell. The cell is left untouched if the kernel call fails. EXCLUSIVE may
// only be supplied on initial registration, never here; it is rejected
// before the kernel ever sees it.
func (r *Reactor) Modify(fd int, interest Interest) error {
	if interest.isExclusive() {
		return ErrExclusiveOnModify
	}
	sub, ok := r.registered[fd]
	if !ok {
		return ErrNotFound
	}

	var ev epollevent.EpollEvent
	ev.Events = interest.Bits()
	setCookie(&ev, sub.cookie())

	if err := epollCtl(r.epollFD, unix.EPOLL_CTL_MOD, fd, &ev); err != nil {
		return wrapSyscallErr("epoll_ctl mod", err)
	}
	metrics.Add(metrics.EpollCtlMod, 1)
	*sub.Interest() = interest
	return nil
}

// Delete removes fd from the kernel epoll set unconditionally. If called
// while a dispatch batch is in progress, the table entry's removal is
// deferred until the batch completes, so every handler still invoked for
// events already reported in this batch observes a consistent table; the
// entry is erased immediately otherwise.
func (r *Reactor) Delete(fd int) error {
	if err := epollCtl(r.epollFD, unix.EPOLL_CTL_DEL, fd, nil); err != nil {
		return wrapSyscallErr("epoll_ctl del", err)
	}
	metrics.Add(metrics.EpollCtlDel, 1)

	if r.handling != nil {
		r.handling.deferredRemove = append(r.handling.deferredRemove, fd)
		metrics.Add(metrics.DeferredRemovals, 1)
		return nil
	}
	r.removeFromTable(fd)
	return nil
}

// removeFromTable erases fd's entry, running the subscriber's destructor
// (Close) and, if it implements Detacher, assigning OnDetached to the
// bounded detach pool.
func (r *Reactor) removeFromTable(fd int) {
	sub, ok := r.registered[fd]
	if !ok {
		return
	}
	delete(r.registered, fd)
	if err := sub.Close(); err != nil {
		log.Warnf("eventp: closing removed subscriber for fd %d: %v", fd, err)
	}
	if err := r.detachPool.Invoke(sub); err != nil {
		log.Errorf("eventp: assigning detach notification for fd %d: %v", fd, err)
	}
}

// durationToMsec converts a Run timeout to the millisecond form epoll_wait
// expects. A negative duration means block indefinitely (epoll_wait's -1).
func durationToMsec(d time.Duration) int {
	if d < 0 {
		return -1
	}
	return int(d.Milliseconds())
}

// RunOnceWithTimeout drains one batch of events, blocking up to timeout (a
// negative timeout blocks indefinitely). It panics if called re-entrantly
// from within a handler — nested dispatch is a programmer error, not a
// recoverable condition.
func (r *Reactor) RunOnceWithTimeout(timeout time.Duration) error {
	if r.handling != nil {
		panic("eventp: recursive Run* call from within a handler")
	}

	n, err := epollWait(r.epollFD, r.events, durationToMsec(timeout))
	if err != nil {
		if err == unix.EINTR {
			return ErrInterrupted
		}
		return wrapSyscallErr("epoll_wait", err)
	}

	r.handling = &handlingState{currentFD: -1}
	for i := 0; i < n; i++ {
		ev := r.events[i]
		sub := thinFromCookie(cookieOf(&ev))
		r.handling.currentFD = sub.RawFD()
		sub.Handle(eventFromFlags(ev.Events), ScopedReactor{r: r})
	}
	deferred := r.handling.deferredRemove
	r.handling = nil

	for _, fd := range deferred {
		r.removeFromTable(fd)
	}
	return nil
}

// RunOnce blocks until at least one event is ready and dispatches the batch.
// EINTR is surfaced to the caller as ErrInterrupted.
func (r *Reactor) RunOnce() error {
	return r.RunOnceWithTimeout(-1)
}

// RunForever drains batches indefinitely, retrying EINTR transparently. It
// only returns on a non-EINTR error.
func (r *Reactor) RunForever() error {
	for {
		err := r.RunOnceWithTimeout(-1)
		if err == nil || err == ErrInterrupted {
			continue
		}
		return err
	}
}

// Close tears the reactor down: every registered subscriber is taken out of
// the table and closed before the epoll fd itself, so each subscriber's
// Close runs while the epoll instance still exists. OnDetached is not
// invoked for subscribers discarded here.
func (r *Reactor) Close() error {
	for fd, sub := range r.registered {
		delete(r.registered, fd)
		if err := sub.Close(); err != nil {
			log.Warnf("eventp: closing subscriber for fd %d during Close: %v", fd, err)
		}
	}
	r.detachPool.Release()
	return wrapSyscallErr("close", unix.Close(r.epollFD))
}
