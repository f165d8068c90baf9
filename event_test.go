//go:build linux
// +build linux

package eventp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sys/unix"
)

func TestEventPredicates(t *testing.T) {
	ev := eventFromFlags(unix.EPOLLIN | unix.EPOLLPRI)
	assert.True(t, ev.IsReadable())
	assert.True(t, ev.IsPriority())
	assert.False(t, ev.IsWritable())
	assert.False(t, ev.IsError())
	assert.False(t, ev.IsHangup())
	assert.False(t, ev.IsReadClosed())

	ev = eventFromFlags(unix.EPOLLHUP | unix.EPOLLERR | unix.EPOLLRDHUP)
	assert.True(t, ev.IsHangup())
	assert.True(t, ev.IsError())
	assert.True(t, ev.IsReadClosed())
	assert.False(t, ev.IsReadable())
}
