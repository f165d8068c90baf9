package eventp

import (
	"github.com/panjf2000/ants/v2"

	"github.com/go-eventp/eventp/metrics"
)

// newDetachPool builds the bounded worker pool that runs Detacher.OnDetached
// notifications after a subscriber is removed from the table, rather than
// spawning an unbounded goroutine per removed descriptor.
func newDetachPool(size int) (*ants.PoolWithFunc, error) {
	if size <= 0 {
		size = ants.DefaultAntsPoolSize
	}
	return ants.NewPoolWithFunc(size, func(v any) {
		sub, ok := v.(ThinSubscriber)
		if !ok || sub.isZero() {
			return
		}
		metrics.Add(metrics.DetachTasksAssigned, 1)
		sub.notifyDetached()
	})
}
