package preflight

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"hbcheckup/internal/peers"
)

const peerCheckTimeout = 5 * time.Second

// CheckActivityLog verifies the HandBrake activity log exists and is readable.
func CheckActivityLog(path string) Result {
	const name = "Activity log"

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist; has HandBrake run yet?)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable, %d bytes)", path, info.Size())}
}

// CheckStateDir verifies the lock directory is writable. A missing directory
// passes when its nearest existing parent is writable, since serve creates it.
func CheckStateDir(path string) Result {
	const name = "State directory"

	info, err := os.Stat(path)
	switch {
	case err == nil && !info.IsDir():
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	case err == nil:
		if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
		}
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
	case !errors.Is(err, fs.ErrNotExist):
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}

	parent := filepath.Dir(path)
	for {
		if _, err := os.Stat(parent); err == nil {
			break
		}
		next := filepath.Dir(parent)
		if next == parent {
			break
		}
		parent = next
	}
	if err := unix.Access(parent, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, parent, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (created on first serve)", path)}
}

// CheckPort verifies nothing else is listening on the server address.
func CheckPort(addr string) Result {
	const name = "Listen port"

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", addr, err)}
	}
	_ = listener.Close()
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (available)", addr)}
}

// CheckPeer performs a single checkup request against a peer.
func CheckPeer(ctx context.Context, peerURL, token string) Result {
	name := "Peer " + peerURL

	fetcher := peers.NewFetcher(nil,
		peers.WithTimeout(peerCheckTimeout),
		peers.WithRetries(0),
		peers.WithToken(token),
	)
	status, err := fetcher.Fetch(ctx, peerURL)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("unreachable (%v)", err)}
	}
	if !status.Success {
		return Result{Name: name, Detail: fmt.Sprintf("%s answered but cannot read its activity log", status.Hostname)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s: %s", status.Hostname, status.StatusText)}
}
