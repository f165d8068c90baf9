// Package remote implements a cross-thread call channel as an external
// collaborator: an eventfd-backed Subscriber paired with a
// cheaply-copyable Endpoint that other goroutines use to run closures on
// the reactor's own goroutine. It depends only on eventp's public
// Subscriber/ScopedReactor/Registry surface, never the other way around.
//
// The job queue is a buffered Go channel rather than an external queue
// library, since channels are already natively multi-producer/
// single-consumer safe.
package remote

import (
	"errors"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/sys/unix"

	"github.com/go-eventp/eventp"
	"github.com/go-eventp/eventp/log"
)

// ErrEndpointClosed is returned by a Call* function when the Subscriber
// side has already been removed from its reactor.
var ErrEndpointClosed = errors.New("remote: subscriber dropped")

// ErrReactorGone is delivered to a pending call's result if the Subscriber
// is closed before the reactor got to run the queued closure.
var ErrReactorGone = errors.New("remote: reactor thread gone")

// ErrCallTimeout is returned by CallBlockingWithTimeout when the timeout
// elapses before the closure runs.
var ErrCallTimeout = errors.New("remote: call timed out")

const defaultQueueCapacity = 128

// Result is the outcome of a closure run by one of Endpoint's Call*
// functions.
type Result[T any] struct {
	Value T
	Err   error
}

type job struct {
	run   func(eventp.ScopedReactor)
	abort func()
}

type state struct {
	fd     int
	jobs   chan job
	closed atomic.Bool
}

func (s *state) notify() error {
	buf := [8]byte{1}
	for {
		_, err := unix.Write(s.fd, buf[:])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return os.NewSyscallError("write", err)
		}
		return nil
	}
}

// send enqueues j, recovering from the rare race where Close closes the
// channel concurrently with a send already past the closed check.
func (s *state) send(j job) (err error) {
	if s.closed.Load() {
		return ErrEndpointClosed
	}
	defer func() {
		if r := recover(); r != nil {
			err = ErrEndpointClosed
		}
	}()
	s.jobs <- j
	return nil
}

// Subscriber is the reactor-side half of a pair created by NewPair. It owns
// a nonblocking, close-on-exec eventfd and the receiving end of the job
// queue; register it with a reactor with read interest.
type Subscriber struct {
	state    *state
	interest eventp.Interest
}

// NewPair builds a Subscriber/Endpoint pair sharing one eventfd and one job
// queue. The Subscriber is meant to be registered with a reactor (directly
// via eventp.Register, or through eventp.NewThin); the Endpoint can be
// copied and handed to any number of other goroutines.
func NewPair() (*Subscriber, *Endpoint, error) {
	fd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	if err != nil {
		return nil, nil, os.NewSyscallError("eventfd", err)
	}
	st := &state{fd: fd, jobs: make(chan job, defaultQueueCapacity)}
	sub := &Subscriber{state: st, interest: eventp.NewInterest().Read()}
	return sub, &Endpoint{state: st}, nil
}

// BorrowFD implements eventp.Subscriber.
func (s *Subscriber) BorrowFD() int { return s.state.fd }

// InterestCell implements eventp.Subscriber.
func (s *Subscriber) InterestCell() *eventp.Interest { return &s.interest }

// Handle implements eventp.Subscriber: it drains the eventfd counter, then
// runs every closure currently queued, in order, on the reactor's own
// goroutine.
func (s *Subscriber) Handle(_ eventp.Event, scope eventp.ScopedReactor) {
	var buf [8]byte
	if _, err := unix.Read(s.state.fd, buf[:]); err != nil && err != unix.EAGAIN {
		log.Warnf("remote: reading eventfd: %v", err)
	}
	for {
		select {
		case j := <-s.state.jobs:
			j.run(scope)
		default:
			return
		}
	}
}

// Close implements io.Closer, invoked by the reactor when the Subscriber is
// removed. Any closures still queued at that point are aborted with
// ErrReactorGone rather than left to strand their caller forever.
func (s *Subscriber) Close() error {
	s.state.closed.Store(true)
	close(s.state.jobs)
	for j := range s.state.jobs {
		j.abort()
	}
	return os.NewSyscallError("close", unix.Close(s.state.fd))
}

// Endpoint is a remote control for the reactor the paired Subscriber is
// registered with. It is a thin wrapper around a shared pointer, so it is
// cheap to copy and safe to use concurrently from any number of goroutines.
type Endpoint struct {
	state *state
}

func dispatch[T any](e *Endpoint, resultCh chan Result[T], f func(eventp.ScopedReactor) (T, error)) error {
	j := job{
		run: func(scope eventp.ScopedReactor) {
			v, err := f(scope)
			resultCh <- Result[T]{Value: v, Err: err}
		},
		abort: func() {
			var zero T
			resultCh <- Result[T]{Value: zero, Err: ErrReactorGone}
		},
	}
	if err := e.state.send(j); err != nil {
		return err
	}
	if err := e.state.notify(); err != nil {
		log.Errorf("remote: notifying reactor after queuing call: %v", err)
	}
	return nil
}

// CallBlocking queues f to run on the reactor's goroutine and blocks until
// it returns a result.
func CallBlocking[T any](e *Endpoint, f func(eventp.ScopedReactor) (T, error)) (T, error) {
	resultCh := make(chan Result[T], 1)
	if err := dispatch(e, resultCh, f); err != nil {
		var zero T
		return zero, err
	}
	res := <-resultCh
	return res.Value, res.Err
}

// CallBlockingAsync queues f and returns immediately with a receive-only
// channel that yields its result once the reactor runs it.
func CallBlockingAsync[T any](e *Endpoint, f func(eventp.ScopedReactor) (T, error)) <-chan Result[T] {
	resultCh := make(chan Result[T], 1)
	if err := dispatch(e, resultCh, f); err != nil {
		resultCh <- Result[T]{Err: err}
	}
	return resultCh
}

// CallBlockingWithTimeout behaves like CallBlocking but gives up and returns
// ErrCallTimeout if the closure has not completed within timeout. The
// closure may still run later; its result is simply discarded.
func CallBlockingWithTimeout[T any](
	e *Endpoint, f func(eventp.ScopedReactor) (T, error), timeout time.Duration,
) (T, error) {
	resultCh := make(chan Result[T], 1)
	if err := dispatch(e, resultCh, f); err != nil {
		var zero T
		return zero, err
	}
	select {
	case res := <-resultCh:
		return res.Value, res.Err
	case <-time.After(timeout):
		var zero T
		return zero, ErrCallTimeout
	}
}

// CallNonblocking queues f to run on the reactor's goroutine and returns
// immediately, without a way to observe its result ("fire and forget").
func CallNonblocking(e *Endpoint, f func(eventp.ScopedReactor)) error {
	j := job{
		run:   f,
		abort: func() {},
	}
	if err := e.state.send(j); err != nil {
		return err
	}
	if err := e.state.notify(); err != nil {
		log.Errorf("remote: notifying reactor after queuing call: %v", err)
	}
	return nil
}
