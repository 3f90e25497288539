// Package link exposes the link feature of a network interface and picks the
// implementation matching the host operating system.
package link

import (
	"sync"

	"github.com/pkg/errors"
	linkapi "github.com/szmijews/mfd-network-adapter/api/link"
	"github.com/szmijews/mfd-network-adapter/platform"
	"go.uber.org/zap"
)

// ErrFeatureNotImplemented is returned when no link implementation is registered
// for an operating system.
var ErrFeatureNotImplemented = errors.New("link feature not implemented")

// Feature is the set of link operations an interface supports.
type Feature interface {
	// SetAdministrativePrivileges toggles the administrative link privilege.
	SetAdministrativePrivileges(state linkapi.State) error

	// GetAdministrativePrivileges returns the administrative link privilege.
	GetAdministrativePrivileges() (linkapi.State, error)
}

// Owner is the network interface a Feature operates on.
type Owner interface {
	Name() string
}

// Constructor builds a Feature bound to owner and conn.
type Constructor func(owner Owner, conn platform.Connection, logger *zap.Logger) Feature

var (
	registryMu sync.RWMutex
	registry   = map[platform.OSName]Constructor{}
)

// Register makes ctor the link implementation for osName, replacing any previous one.
func Register(osName platform.OSName, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[osName] = ctor
}

// New builds the link feature registered for osName.
func New(osName platform.OSName, owner Owner, conn platform.Connection, logger *zap.Logger) (Feature, error) {
	registryMu.RLock()
	ctor, ok := registry[osName]
	registryMu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrFeatureNotImplemented, "os %s", osName)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return ctor(owner, conn, logger), nil
}
