//go:build linux && (riscv64 || ppc64 || ppc64le || s390x || mips64 || mips64le)

package epollevent

// EpollEvent mirrors struct epoll_event as laid out by the kernel on
// the remaining supported 64-bit architectures, which all use the
// natural-alignment (non-packed) layout, same as arm64 and loong64.
type EpollEvent struct {
	Events uint32
	_pad   [4]byte
	Data   [8]byte
}
