// Package pool supplies horizontal scaling across independent Reactor
// instances: each reactor keeps its own single-threaded dispatch loop, and
// the pool only picks which one a new subscriber lands on.
package pool

import (
	"reflect"
	"sync"

	"github.com/go-eventp/eventp"
)

var (
	lbs    = make(map[string]BalanceBuilder)
	lbsMux sync.RWMutex
)

// BalanceBuilder constructs a fresh LoadBalance instance.
type BalanceBuilder func() LoadBalance

// LoadBalance picks a reactor out of the pool to register a new subscriber
// with.
type LoadBalance interface {
	// Name returns the load balance strategy's registered name.
	Name() string
	// Register adds a reactor to the pool the strategy picks from.
	Register(*eventp.Reactor)
	// Pick selects one of the registered reactors.
	Pick() *eventp.Reactor
	// Iterate visits every registered reactor; it stops early if f returns false.
	Iterate(func(int, *eventp.Reactor) bool)
	// Len returns how many reactors are registered.
	Len() int
}

// GetBalanceBuilder looks up a previously registered BalanceBuilder by name.
func GetBalanceBuilder(name string) BalanceBuilder {
	lbsMux.RLock()
	defer lbsMux.RUnlock()
	return lbs[name]
}

// RegisterBalanceBuilder registers a BalanceBuilder under name, callable
// from an init() the way RoundRobin registers itself in
// loadbalance_roundrobin.go.
func RegisterBalanceBuilder(name string, builder BalanceBuilder) {
	lbv := reflect.ValueOf(builder)
	if builder == nil || (lbv.Kind() == reflect.Ptr && lbv.IsNil()) {
		panic("pool: register nil loadbalance builder")
	}
	if name == "" {
		panic("pool: register loadbalance with empty name")
	}
	lbsMux.Lock()
	defer lbsMux.Unlock()
	lbs[name] = builder
}
