//go:build linux
// +build linux

package eventp

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/go-eventp/eventp/internal/epollevent"
	"github.com/go-eventp/eventp/metrics"
)

func epollCreate1(flags int) (int, error) {
	fd, err := unix.EpollCreate1(flags)
	if err != nil {
		return -1, os.NewSyscallError("epoll_create1", err)
	}
	return fd, nil
}

// epollCtl issues a raw epoll_ctl, bypassing unix.EpollCtl so the event
// argument can be a *epollevent.EpollEvent with the architecture-correct
// kernel layout instead of golang.org/x/sys/unix's own (amd64-only) one.
func epollCtl(epfd, op, fd int, ev *epollevent.EpollEvent) error {
	_, _, errno := unix.RawSyscall6(
		unix.SYS_EPOLL_CTL,
		uintptr(epfd), uintptr(op), uintptr(fd), uintptr(unsafe.Pointer(ev)), 0, 0)
	if errno != 0 {
		return errno
	}
	return nil
}

// epollWait issues epoll_pwait, taking the RawSyscall6 fast path when msec
// is zero to avoid the signal-mask save/restore overhead of Syscall6 on the
// common non-blocking poll.
func epollWait(epfd int, events []epollevent.EpollEvent, msec int) (int, error) {
	p := unsafe.Pointer(&events[0])
	var r0 uintptr
	var errno unix.Errno
	if msec == 0 {
		r0, _, errno = unix.RawSyscall6(unix.SYS_EPOLL_PWAIT,
			uintptr(epfd), uintptr(p), uintptr(len(events)), 0, 0, 0)
		metrics.Add(metrics.EpollNoWait, 1)
	} else {
		r0, _, errno = unix.Syscall6(unix.SYS_EPOLL_PWAIT,
			uintptr(epfd), uintptr(p), uintptr(len(events)), uintptr(msec), 0, 0)
		metrics.Add(metrics.EpollWait, 1)
	}
	if errno != 0 {
		return int(r0), errno
	}
	metrics.Add(metrics.EpollEvents, uint64(r0))
	return int(r0), nil
}

func cookieOf(ev *epollevent.EpollEvent) uint64 {
	return *(*uint64)(unsafe.Pointer(&ev.Data))
}

func setCookie(ev *epollevent.EpollEvent, cookie uint64) {
	*(*uint64)(unsafe.Pointer(&ev.Data)) = cookie
}
