// Package vlan exposes the VLAN feature of a network interface and picks the
// implementation matching the host operating system.
package vlan

import (
	"sync"

	"github.com/pkg/errors"
	vlanapi "github.com/szmijews/mfd-network-adapter/api/vlan"
	"github.com/szmijews/mfd-network-adapter/platform"
	"go.uber.org/zap"
)

// ErrFeatureNotImplemented is returned when no VLAN implementation is registered
// for an operating system.
var ErrFeatureNotImplemented = errors.New("VLAN feature not implemented")

// Feature is the set of VLAN operations an interface supports.
type Feature interface {
	// SetVLANTPID sets the TPID used for VLAN tagging by VFs on the interface.
	SetVLANTPID(tpid vlanapi.TPID) error

	// GetVLANTPID returns the TPID used for VLAN tagging by VFs on the interface.
	GetVLANTPID() (vlanapi.TPID, error)
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

// Register makes ctor the VLAN implementation for osName, replacing any previous one.
func Register(osName platform.OSName, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[osName] = ctor
}

// New builds the VLAN feature registered for osName.
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
