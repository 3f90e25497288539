// Package networkinterface models a network interface on a host reached
// through a platform.Connection.
package networkinterface

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/szmijews/mfd-network-adapter/networkinterface/feature/link"
	"github.com/szmijews/mfd-network-adapter/networkinterface/feature/vlan"
	"github.com/szmijews/mfd-network-adapter/platform"
	"go.uber.org/zap"
)

// ErrEmptyInterfaceName is returned when an interface is created without a name.
var ErrEmptyInterfaceName = errors.New("interface name must not be empty")

// InterfaceInfo identifies an interface on its host.
type InterfaceInfo struct {
	Name       string
	PCIAddress string
}

// NetworkInterface is one interface of a host, with its features resolved
// for the host operating system.
type NetworkInterface struct {
	conn   platform.Connection
	osName platform.OSName
	info   InterfaceInfo
	logger *zap.Logger

	vlanOnce    sync.Once
	vlanFeature vlan.Feature
	vlanErr     error

	linkOnce    sync.Once
	linkFeature link.Feature
	linkErr     error
}

// NewNetworkInterface binds info to conn. The connection stays owned by the caller.
func NewNetworkInterface(conn platform.Connection, osName platform.OSName, info InterfaceInfo, logger *zap.Logger) (*NetworkInterface, error) {
	if info.Name == "" {
		return nil, ErrEmptyInterfaceName
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &NetworkInterface{
		conn:   conn,
		osName: osName,
		info:   info,
		logger: logger.With(zap.String("interface", info.Name), zap.String("os", string(osName))),
	}, nil
}

func (n *NetworkInterface) Name() string {
	return n.info.Name
}

func (n *NetworkInterface) Info() InterfaceInfo {
	return n.info
}

func (n *NetworkInterface) OSName() platform.OSName {
	return n.osName
}

// VLAN returns the VLAN feature for the host operating system. It is built on
// first use and reused afterwards.
func (n *NetworkInterface) VLAN() (vlan.Feature, error) {
	n.vlanOnce.Do(func() {
		n.vlanFeature, n.vlanErr = vlan.New(n.osName, n, n.conn, n.logger)
	})
	return n.vlanFeature, n.vlanErr
}

// Link returns the link feature for the host operating system.
func (n *NetworkInterface) Link() (link.Feature, error) {
	n.linkOnce.Do(func() {
		n.linkFeature, n.linkErr = link.New(n.osName, n, n.conn, n.logger)
	})
	return n.linkFeature, n.linkErr
}
