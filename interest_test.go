//go:build linux
// +build linux

package eventp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestInterestBuilderAlgebra(t *testing.T) {
	i := NewInterest().Read().Write().RDHUP().Priority().EdgeTriggered().Oneshot()
	want := uint32(unix.EPOLLIN | unix.EPOLLOUT | unix.EPOLLRDHUP | unix.EPOLLPRI | unix.EPOLLET | unix.EPOLLONESHOT)
	assert.Equal(t, want, i.Bits())

	assert.Equal(t, NewInterest().Read().Write().Bits(), NewInterest().ReadWrite().Bits())

	i = i.RemoveRead().RemoveWrite().RemoveRDHUP().RemovePriority().RemoveEdgeTriggered().RemoveOneshot()
	assert.Equal(t, uint32(0), i.Bits())
}

func TestInterestExclusive(t *testing.T) {
	i := NewInterest().Read().Exclusive()
	assert.True(t, i.isExclusive())
	i = i.RemoveExclusive()
	assert.False(t, i.isExclusive())
}

func TestInterestWakeup(t *testing.T) {
	i := NewInterest().Read().Wakeup()
	assert.NotZero(t, i.Bits()&unix.EPOLLWAKEUP)
	i = i.RemoveWakeup()
	assert.Zero(t, i.Bits()&unix.EPOLLWAKEUP)
}
