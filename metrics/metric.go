// Package metrics provides eventp runtime monitoring data, such as
// epoll_wait batching efficiency, which is useful for performance tuning.
package metrics

import (
	"fmt"
	"time"

	"go.uber.org/atomic"
)

// All metrics definitions.
const (
	// EpollWait counts epoll_wait/epoll_pwait returns with a non-zero timeout.
	EpollWait = iota
	// EpollNoWait counts epoll_wait/epoll_pwait calls made with a zero timeout
	// (the RawSyscall6 fast path).
	EpollNoWait
	// EpollEvents counts the total number of ready events returned across all
	// epoll_wait calls.
	EpollEvents
	// EpollCtlAdd counts successful Add registrations.
	EpollCtlAdd
	// EpollCtlMod counts successful Modify calls.
	EpollCtlMod
	// EpollCtlDel counts successful Delete calls.
	EpollCtlDel
	// SelfReplacementRejected counts Add calls rejected because they would
	// have replaced the subscriber currently being dispatched.
	SelfReplacementRejected
	// DeferredRemovals counts Delete calls made while a dispatch batch was in
	// progress, whose table removal was deferred until the batch finished.
	DeferredRemovals
	// DetachTasksAssigned counts OnDetached notifications handed to the
	// bounded detach pool.
	DetachTasksAssigned
	Max
)

var metricValues [Max]atomic.Uint64

// Add adds delta to the named counter.
func Add(name int, delta uint64) {
	if name >= Max {
		return
	}
	metricValues[name].Add(delta)
}

// Get returns one metric counter's current value.
func Get(name int) uint64 {
	if name >= Max {
		return 0
	}
	return metricValues[name].Load()
}

// GetAll returns all metric counters.
func GetAll() [Max]uint64 {
	var m [Max]uint64
	for i := range metricValues {
		m[i] = metricValues[i].Load()
	}
	return m
}

// ShowMetricsOfPeriod blocks for d and then prints the counters delta
// observed over that period.
func ShowMetricsOfPeriod(d time.Duration) {
	old := GetAll()
	<-time.After(d)
	cur := GetAll()
	var m [Max]uint64
	for i := range metricValues {
		m[i] = cur[i] - old[i]
	}
	showAll(m)
}

// ShowMetrics prints the current counters to stdout.
func ShowMetrics() {
	showAll(GetAll())
}

func showAll(m [Max]uint64) {
	fmt.Println("######### eventp metrics (", time.Now().Format("2006-01-02 15:04:05"), ") ###########")
	fmt.Printf("%-59s: %d\n", "# EPOLL - number of epoll_wait returns with timeout", m[EpollWait])
	fmt.Printf("%-59s: %d\n", "# EPOLL - number of epoll_wait calls with zero timeout", m[EpollNoWait])
	fmt.Printf("%-59s: %d\n", "# EPOLL - number of total events delivered", m[EpollEvents])
	if m[EpollWait] > 0 {
		fmt.Printf("%-59s: %.2f\n", "# EPOLL - average events per epoll_wait",
			float32(m[EpollEvents])/float32(m[EpollWait]))
	}
	fmt.Printf("%-59s: %d\n", "# REACTOR - number of Add calls", m[EpollCtlAdd])
	fmt.Printf("%-59s: %d\n", "# REACTOR - number of Modify calls", m[EpollCtlMod])
	fmt.Printf("%-59s: %d\n", "# REACTOR - number of Delete calls", m[EpollCtlDel])
	fmt.Printf("%-59s: %d\n", "# REACTOR - number of self-replacement rejections", m[SelfReplacementRejected])
	fmt.Printf("%-59s: %d\n", "# REACTOR - number of deferred removals applied", m[DeferredRemovals])
	fmt.Printf("%-59s: %d\n", "# REACTOR - number of OnDetached tasks assigned", m[DetachTasksAssigned])
	fmt.Printf("\n")
}
