package epollevent

// EpollEvent mirrors struct epoll_event as laid out by the kernel on
// amd64: the struct is packed for 32-bit compat, so the 8-byte data
// union starts immediately after events with no alignment padding.
// Using a byte array (alignment 1) for Data, instead of a wider
// integer type, is what keeps Go from inserting padding here.
type EpollEvent struct {
	Events uint32
	Data   [8]byte
}
