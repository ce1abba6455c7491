package platform

import (
	"errors"
	"hash/fnv"
	"net"
	"strconv"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard is an advisory single-instance lock backed by a loopback
// listener. The OS reclaims the port if the process dies, so a crashed
// instance never blocks the next launch.
type InstanceGuard struct {
	listener net.Listener
}

// AcquireSingleInstance binds the loopback port derived from appName.
// A bind failure is treated as another instance holding the lock.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := net.JoinHostPort("127.0.0.1", strconv.Itoa(instancePort(appName)))
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return &InstanceGuard{listener: listener}, nil
}

// Release frees the lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	return guard.listener.Close()
}

// Address returns the bound loopback address.
func (guard *InstanceGuard) Address() string {
	if guard == nil || guard.listener == nil {
		return ""
	}
	return guard.listener.Addr().String()
}

// instancePort hashes the app name into the dynamic port range so
// different apps using the same scheme do not collide.
func instancePort(appName string) int {
	const (
		portBase  = 49152
		portRange = 16384
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	return portBase + int(hash.Sum32()%uint32(portRange))
}
