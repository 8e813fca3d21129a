package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"syscall"
)

// DefaultSearchWidth is how many ports above the requested one are tried
// before falling back to an OS-assigned port.
const DefaultSearchWidth = 20

// ErrExhausted is returned when the requested port, every fallback candidate
// and the OS-assigned port all failed to bind.
var ErrExhausted = errors.New("no port available: requested port, fallback range and OS-assigned port all failed")

// BindRequest describes the listening address to acquire.
type BindRequest struct {
	// Host is the interface to bind to.
	Host string
	// Port is the preferred port. Port 0 asks the OS for an ephemeral one.
	Port int
	// SearchWidth is how many ports above Port are tried when Port is taken.
	SearchWidth int
}

// BindResult is a successfully acquired listening socket. The caller owns
// the listener and must close it on every exit path, including interrupt.
type BindResult struct {
	Listener net.Listener
	// Port is the port actually bound, which may differ from the requested
	// one when the fallback search or the OS-assigned fallback kicked in.
	Port int
}

type listenFunc func(ctx context.Context, network, address string) (net.Listener, error)

// Binder acquires a listening socket for the HTTP server, searching nearby
// ports when the requested one is occupied.
type Binder struct {
	listen listenFunc
}

// NewBinder creates a Binder whose sockets have SO_REUSEADDR enabled, so a
// quick restart of the server is not blocked by a lingering socket from the
// previous run.
func NewBinder() *Binder {
	lc := &net.ListenConfig{
		Control: func(network, address string, conn syscall.RawConn) error {
			var sockErr error
			if err := conn.Control(func(fd uintptr) {
				sockErr = syscall.SetsockoptInt(int(fd), syscall.SOL_SOCKET, syscall.SO_REUSEADDR, 1)
			}); err != nil {
				return err
			}
			return sockErr
		},
	}
	return &Binder{listen: lc.Listen}
}

// Bind acquires a listener for the request. Candidates are tried in a fixed
// order: the requested port first, then the next SearchWidth ports ascending,
// then port 0 (OS-assigned). The first success wins and no port is tried
// twice. An "address already in use" failure moves on to the next candidate;
// any other failure (permission denied, invalid host) aborts the search
// immediately since retrying elsewhere cannot fix a configuration error.
func (b *Binder) Bind(ctx context.Context, req BindRequest) (*BindResult, error) {
	if req.Port < 0 || req.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", req.Port)
	}
	if req.SearchWidth < 0 {
		return nil, fmt.Errorf("invalid search width %d", req.SearchWidth)
	}

	ln, err := b.listen(ctx, "tcp", net.JoinHostPort(req.Host, strconv.Itoa(req.Port)))
	if err == nil {
		return bound(ln), nil
	}
	if !isAddrInUse(err) {
		return nil, fmt.Errorf("bind %s:%d: %w", req.Host, req.Port, err)
	}

	for p := req.Port + 1; p <= req.Port+req.SearchWidth; p++ {
		if p > 65535 {
			break
		}
		ln, err = b.listen(ctx, "tcp", net.JoinHostPort(req.Host, strconv.Itoa(p)))
		if err == nil {
			return bound(ln), nil
		}
		if !isAddrInUse(err) {
			return nil, fmt.Errorf("bind %s:%d: %w", req.Host, p, err)
		}
	}

	// Everything in the range is taken; let the OS pick a free port.
	ln, err = b.listen(ctx, "tcp", net.JoinHostPort(req.Host, "0"))
	if err == nil {
		return bound(ln), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrExhausted, err)
}

func bound(ln net.Listener) *BindResult {
	return &BindResult{
		Listener: ln,
		Port:     ln.Addr().(*net.TCPAddr).Port,
	}
}

// isAddrInUse recognizes the address-in-use condition both by the platform
// error code (EADDRINUSE, which differs between Linux and the BSDs) and by
// message as a fallback for wrapped errors that lost the syscall errno.
func isAddrInUse(err error) bool {
	if errors.Is(err, syscall.EADDRINUSE) {
		return true
	}
	return strings.Contains(err.Error(), "address already in use")
}
