// Package epollevent defines the raw kernel epoll_event layout per
// architecture, since the data union must be wide enough to carry a
// 64-bit ThinSubscriber cookie rather than just a file descriptor.
package epollevent

// EpollEvent mirrors struct epoll_event as laid out by the kernel on
// arm64: events is followed by 4 bytes of alignment padding before the
// 8-byte data union, unlike the packed layout used on amd64.
type EpollEvent struct {
	Events uint32
	_pad   uint32
	Data   [8]byte // to match amd64's union width
}
