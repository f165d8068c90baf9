package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-eventp/eventp"
	"github.com/go-eventp/eventp/pool"
)

const fakeLoadbalance string = "FakeLB"

type fakeLB struct{}

func (r *fakeLB) Name() string                              { return fakeLoadbalance }
func (r *fakeLB) Register(*eventp.Reactor)                  {}
func (r *fakeLB) Pick() *eventp.Reactor                      { return nil }
func (r *fakeLB) Len() int                                   { return 0 }
func (r *fakeLB) Iterate(f func(int, *eventp.Reactor) bool) {}

func TestRegisterLoadbalance(t *testing.T) {
	pool.RegisterBalanceBuilder(fakeLoadbalance, func() pool.LoadBalance {
		return &fakeLB{}
	})
	build := pool.GetBalanceBuilder(fakeLoadbalance)
	assert.NotNil(t, build)
}

func TestRegisterLoadbalancePanicsOnEmptyName(t *testing.T) {
	assert.Panics(t, func() {
		pool.RegisterBalanceBuilder("", func() pool.LoadBalance { return &fakeLB{} })
	})
}

func TestRegisterLoadbalancePanicsOnNilBuilder(t *testing.T) {
	assert.Panics(t, func() {
		pool.RegisterBalanceBuilder("nil-builder", nil)
	})
}
