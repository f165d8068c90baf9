//go:build linux
// +build linux

package eventp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func newTestEventFD(t *testing.T) int {
	t.Helper()
	fd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	require.NoError(t, err)
	t.Cleanup(func() { _ = unix.Close(fd) })
	return fd
}

func signal(t *testing.T, fd int) {
	t.Helper()
	buf := []byte{1, 0, 0, 0, 0, 0, 0, 0}
	_, err := unix.Write(fd, buf)
	require.NoError(t, err)
}

func drain(fd int) {
	buf := make([]byte, 8)
	_, _ = unix.Read(fd, buf)
}

func TestReactorRegistrationIdentity(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	fd := newTestEventFD(t)
	sub := NewFuncSubscriber(fd, NewInterest().Read(), func(Event, ScopedReactor) {})
	th := NewThin[FuncSubscriber, *FuncSubscriber](*sub)
	require.NoError(t, r.Add(th))

	stored, ok := r.registered[fd]
	require.True(t, ok)
	assert.Equal(t, fd, stored.RawFD())
	assert.Equal(t, th.cookie(), stored.cookie())
}

func TestReactorModifyIdempotence(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	fd := newTestEventFD(t)
	th := NewThin[FuncSubscriber, *FuncSubscriber](*NewFuncSubscriber(fd, NewInterest().Read(), func(Event, ScopedReactor) {}))
	require.NoError(t, r.Add(th))

	require.NoError(t, r.Modify(fd, NewInterest().Write()))
	assert.Equal(t, NewInterest().Write().Bits(), r.registered[fd].Interest().Bits())

	require.NoError(t, r.Modify(fd, NewInterest().Write()))
	assert.Equal(t, NewInterest().Write().Bits(), r.registered[fd].Interest().Bits())
}

func TestReactorModifyNotFound(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	assert.ErrorIs(t, r.Modify(999999, NewInterest().Read()), ErrNotFound)
}

func TestReactorDeleteDuringDispatchSafety(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	fd := newTestEventFD(t)
	handled := make(chan struct{}, 1)
	sub := NewFuncSubscriber(fd, NewInterest().Read(), func(ev Event, scope ScopedReactor) {
		drain(fd)
		require.NoError(t, scope.Delete(fd))
		handled <- struct{}{}
	})
	th := NewThin[FuncSubscriber, *FuncSubscriber](*sub)
	require.NoError(t, r.Add(th))

	signal(t, fd)
	require.NoError(t, r.RunOnceWithTimeout(time.Second))
	<-handled

	_, ok := r.registered[fd]
	assert.False(t, ok)
}

func TestReactorAddSelfDuringDispatchRejection(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	fd := newTestEventFD(t)
	var rejectErr error
	sub := NewFuncSubscriber(fd, NewInterest().Read(), func(ev Event, scope ScopedReactor) {
		drain(fd)
		replacement := NewThin[FuncSubscriber, *FuncSubscriber](
			*NewFuncSubscriber(fd, NewInterest().Read(), func(Event, ScopedReactor) {}))
		rejectErr = scope.Add(replacement)
	})
	th := NewThin[FuncSubscriber, *FuncSubscriber](*sub)
	require.NoError(t, r.Add(th))

	signal(t, fd)
	require.NoError(t, r.RunOnceWithTimeout(time.Second))
	assert.ErrorIs(t, rejectErr, ErrSelfReplacement)
}

func TestReactorNestedRunPanics(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	fd := newTestEventFD(t)
	sub := NewFuncSubscriber(fd, NewInterest().Read(), func(Event, ScopedReactor) {
		drain(fd)
		assert.Panics(t, func() { _ = r.RunOnce() })
	})
	th := NewThin[FuncSubscriber, *FuncSubscriber](*sub)
	require.NoError(t, r.Add(th))

	signal(t, fd)
	require.NoError(t, r.RunOnceWithTimeout(time.Second))
}

func TestReactorSelfModify(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	fd := newTestEventFD(t)
	sub := NewFuncSubscriber(fd, NewInterest().Read(), func(ev Event, scope ScopedReactor) {
		drain(fd)
		require.NoError(t, scope.Modify(fd, NewInterest().Write()))
	})
	th := NewThin[FuncSubscriber, *FuncSubscriber](*sub)
	require.NoError(t, r.Add(th))

	signal(t, fd)
	require.NoError(t, r.RunOnceWithTimeout(time.Second))
	assert.Equal(t, NewInterest().Write().Bits(), r.registered[fd].Interest().Bits())
}

func TestReactorModifyRejectsExclusive(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	fd := newTestEventFD(t)
	th := NewThin[FuncSubscriber, *FuncSubscriber](*NewFuncSubscriber(fd, NewInterest().Read(), func(Event, ScopedReactor) {}))
	require.NoError(t, r.Add(th))

	err = r.Modify(fd, NewInterest().Read().Exclusive())
	assert.ErrorIs(t, err, ErrExclusiveOnModify)
	assert.Equal(t, NewInterest().Read().Bits(), r.registered[fd].Interest().Bits())
}

func TestReactorBatchDeferral(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	fdA := newTestEventFD(t)
	fdB := newTestEventFD(t)
	bHandled := make(chan struct{}, 1)

	subB := NewFuncSubscriber(fdB, NewInterest().Read(), func(Event, ScopedReactor) {
		bHandled <- struct{}{}
	})
	thB := NewThin[FuncSubscriber, *FuncSubscriber](*subB)
	require.NoError(t, r.Add(thB))

	subA := NewFuncSubscriber(fdA, NewInterest().Read(), func(ev Event, scope ScopedReactor) {
		drain(fdA)
		require.NoError(t, scope.Delete(fdB))
	})
	thA := NewThin[FuncSubscriber, *FuncSubscriber](*subA)
	require.NoError(t, r.Add(thA))

	signal(t, fdA)
	signal(t, fdB)
	require.NoError(t, r.RunOnceWithTimeout(time.Second))
	<-bHandled

	_, ok := r.registered[fdB]
	assert.False(t, ok)
}

func TestDurationToMsec(t *testing.T) {
	assert.Equal(t, -1, durationToMsec(-1))
	assert.Equal(t, 0, durationToMsec(0))
	assert.Equal(t, 5, durationToMsec(5*time.Millisecond))
}

func TestReactorRunOnceTimeoutNoEvents(t *testing.T) {
	r, err := New()
	require.NoError(t, err)
	defer r.Close()

	start := time.Now()
	require.NoError(t, r.RunOnceWithTimeout(20*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}
