package pool

import (
	"sync/atomic"

	"github.com/go-eventp/eventp"
)

// RoundRobin is the name of the load balance strategy registered below.
const RoundRobin string = "RoundRobinLB"

func init() {
	RegisterBalanceBuilder(RoundRobin, func() LoadBalance { return &roundRobinLB{} })
}

type roundRobinLB struct {
	reactors []*eventp.Reactor
	accepted uintptr
}

// Name implements LoadBalance.
func (r *roundRobinLB) Name() string { return RoundRobin }

// Register implements LoadBalance.
func (r *roundRobinLB) Register(reactor *eventp.Reactor) {
	r.reactors = append(r.reactors, reactor)
}

// Pick implements LoadBalance.
func (r *roundRobinLB) Pick() *eventp.Reactor {
	idx := int(atomic.AddUintptr(&r.accepted, 1)) % len(r.reactors)
	return r.reactors[idx]
}

// Len implements LoadBalance.
func (r *roundRobinLB) Len() int { return len(r.reactors) }

// Iterate implements LoadBalance.
func (r *roundRobinLB) Iterate(f func(int, *eventp.Reactor) bool) {
	for i, reactor := range r.reactors {
		if !f(i, reactor) {
			break
		}
	}
}
