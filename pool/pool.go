package pool

import (
	"fmt"
	"net"

	goreuseport "github.com/kavu/go_reuseport"

	"github.com/go-eventp/eventp"
	"github.com/go-eventp/eventp/log"
)

// Pool owns N independently pinned *eventp.Reactor instances, each running
// its own single-threaded dispatch loop on its own goroutine, and a
// pluggable LoadBalance used to pick one at registration time. It is the
// horizontal-scaling counterpart to a single Reactor: the pool never shares
// one reactor across goroutines, it only runs several.
type Pool struct {
	lb       LoadBalance
	reactors []*eventp.Reactor
}

// New builds a Pool of n reactors, each constructed with opts, picked from
// by the named load balance strategy (RoundRobin is registered by default).
func New(balance string, n int, opts ...eventp.Option) (*Pool, error) {
	if n < 1 {
		return nil, fmt.Errorf("pool: reactor count must be at least 1, got %d", n)
	}
	builder := GetBalanceBuilder(balance)
	if builder == nil {
		return nil, fmt.Errorf("pool: loadbalance %q is not registered", balance)
	}

	p := &Pool{lb: builder()}
	for i := 0; i < n; i++ {
		r, err := eventp.New(opts...)
		if err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("pool: starting reactor %d: %w", i, err)
		}
		p.reactors = append(p.reactors, r)
		p.lb.Register(r)
		go func() {
			if err := r.RunForever(); err != nil {
				log.Errorf("pool: reactor stopped: %v", err)
			}
		}()
	}
	return p, nil
}

// Pick selects one of the pool's reactors per the configured LoadBalance.
func (p *Pool) Pick() *eventp.Reactor { return p.lb.Pick() }

// NumReactors returns how many reactors the pool owns.
func (p *Pool) NumReactors() int { return p.lb.Len() }

// Close closes every reactor the pool owns. Closing a reactor whose
// RunForever goroutine is still blocked in epoll_wait does not itself
// unblock it; callers that need a clean shutdown should drain connections
// and have each reactor's subscribers delete themselves first.
func (p *Pool) Close() error {
	var firstErr error
	for _, r := range p.reactors {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ListenTCP returns one net.Listener per pooled reactor, each bound to addr
// with SO_REUSEPORT via go_reuseport, so that multiple independent reactors
// can each accept connections on the same address without contending on a
// single accept socket. Callers are expected to pair listener i with
// reactor i (e.g. Reactors()[i]) and run their own accept loop per listener,
// registering accepted connections with that listener's reactor.
func (p *Pool) ListenTCP(addr string) ([]net.Listener, error) {
	lns := make([]net.Listener, 0, len(p.reactors))
	for i := range p.reactors {
		ln, err := goreuseport.Listen("tcp", addr)
		if err != nil {
			for _, opened := range lns {
				_ = opened.Close()
			}
			return nil, fmt.Errorf("pool: reuseport listen for reactor %d: %w", i, err)
		}
		lns = append(lns, ln)
	}
	return lns, nil
}

// Reactors returns the pool's reactors in registration order, positionally
// aligned with ListenTCP's returned listeners.
func (p *Pool) Reactors() []*eventp.Reactor {
	out := make([]*eventp.Reactor, len(p.reactors))
	copy(out, p.reactors)
	return out
}
