//go:build linux
// +build linux

package eventp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFuncSubscriber(t *testing.T) {
	var gotEvent Event
	sub := NewFuncSubscriber(5, NewInterest().Read(), func(ev Event, _ ScopedReactor) {
		gotEvent = ev
	})
	assert.Equal(t, 5, sub.BorrowFD())
	assert.Equal(t, NewInterest().Read().Bits(), sub.InterestCell().Bits())

	sub.Handle(eventFromFlags(7), ScopedReactor{})
	assert.Equal(t, uint32(7), gotEvent.Bits())
}
