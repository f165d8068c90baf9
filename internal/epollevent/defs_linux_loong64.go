package epollevent

// EpollEvent mirrors struct epoll_event as laid out by the kernel on
// loong64: same natural-alignment shape as arm64.
type EpollEvent struct {
	Events uint32
	_pad   [4]byte
	Data   [8]byte // starts at offset 8, after the padding
}
