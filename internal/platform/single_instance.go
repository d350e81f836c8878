package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
	"path/filepath"
)

// ErrAlreadyRunning indicates another timer run already holds the guard.
var ErrAlreadyRunning = errors.New("a timer is already running")

const (
	guardFirstPort = 20000
	guardPortCount = 20000
)

// RunGuard keeps one active timer run per app and config directory. Two
// users on one host have different config directories and so never
// contend for the same guard.
type RunGuard struct {
	listener net.Listener
	scope    string
}

// AcquireRunGuard binds the localhost port owned by appName within scope,
// normally the config directory the run reads from.
func AcquireRunGuard(appName, scope string) (*RunGuard, error) {
	scope = guardScope(scope)
	address := guardAddress(appName, scope)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w for %s (%s)", ErrAlreadyRunning, scope, address)
	}
	return &RunGuard{listener: listener, scope: scope}, nil
}

// Release frees the guard. It is safe on a nil or released guard.
func (guard *RunGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	guard.listener = nil
	return err
}

// Address returns the bound address, or "" once released.
func (guard *RunGuard) Address() string {
	if guard == nil || guard.listener == nil {
		return ""
	}
	return guard.listener.Addr().String()
}

// Scope returns the normalised scope the guard was acquired for.
func (guard *RunGuard) Scope() string {
	if guard == nil {
		return ""
	}
	return guard.scope
}

// guardScope normalises scope so equivalent spellings of one directory
// map to the same port.
func guardScope(scope string) string {
	if scope == "" {
		return ""
	}
	if abs, err := filepath.Abs(scope); err == nil {
		scope = abs
	}
	return filepath.Clean(scope)
}

func guardAddress(appName, scope string) string {
	hash := fnv.New64a()
	_, _ = hash.Write([]byte(appName))
	_, _ = hash.Write([]byte{0})
	_, _ = hash.Write([]byte(scope))
	port := guardFirstPort + int(hash.Sum64()%guardPortCount)
	return net.JoinHostPort("127.0.0.1", fmt.Sprint(port))
}
