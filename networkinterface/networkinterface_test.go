package networkinterface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	linkapi "github.com/szmijews/mfd-network-adapter/api/link"
	"github.com/szmijews/mfd-network-adapter/networkinterface/feature/link"
	vlanapi "github.com/szmijews/mfd-network-adapter/api/vlan"
	"github.com/szmijews/mfd-network-adapter/networkinterface/feature/vlan"
	"github.com/szmijews/mfd-network-adapter/platform"
)

func newESXiInterface(t *testing.T, conn platform.Connection) *NetworkInterface {
	t.Helper()
	iface, err := NewNetworkInterface(conn, platform.OSNameESXi, InterfaceInfo{Name: "vmnic1", PCIAddress: "0000:00:00.0"}, nil)
	require.NoError(t, err)
	return iface
}

func TestNewNetworkInterfaceEmptyName(t *testing.T) {
	_, err := NewNetworkInterface(platform.NewMockExecClient(false), platform.OSNameESXi, InterfaceInfo{}, nil)
	require.ErrorIs(t, err, ErrEmptyInterfaceName)
}

func TestVLANSetVLANTPID(t *testing.T) {
	conn := platform.NewMockExecClientWithOutput("")
	iface := newESXiInterface(t, conn)

	feature, err := iface.VLAN()
	require.NoError(t, err)
	require.NoError(t, feature.SetVLANTPID(vlanapi.TPID8021Q))

	require.Len(t, conn.Calls(), 1)
	assert.Equal(t, "esxcli intnet qinq tpid set -s 0x8100 -n vmnic1", conn.Calls()[0].Command)
}

func TestVLANGetVLANTPID(t *testing.T) {
	conn := platform.NewMockExecClientWithOutput("\n0x8100\n")
	iface := newESXiInterface(t, conn)

	feature, err := iface.VLAN()
	require.NoError(t, err)
	tpid, err := feature.GetVLANTPID()
	require.NoError(t, err)
	assert.Equal(t, vlanapi.TPID8021Q, tpid)

	require.Len(t, conn.Calls(), 1)
	assert.Equal(t, "esxcli intnet qinq tpid get -n vmnic1", conn.Calls()[0].Command)
}

func TestVLANIsBuiltOnce(t *testing.T) {
	iface := newESXiInterface(t, platform.NewMockExecClient(false))

	first, err := iface.VLAN()
	require.NoError(t, err)
	second, err := iface.VLAN()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestVLANNotImplementedForOS(t *testing.T) {
	iface, err := NewNetworkInterface(platform.NewMockExecClient(false), platform.OSNameWindows, InterfaceInfo{Name: "Ethernet 3"}, nil)
	require.NoError(t, err)

	_, err = iface.VLAN()
	require.ErrorIs(t, err, vlan.ErrFeatureNotImplemented)
}

func TestLinkGetAdministrativePrivileges(t *testing.T) {
	conn := platform.NewMockExecClientWithOutput("Link privilege enabled for vmnic1")
	iface := newESXiInterface(t, conn)

	feature, err := iface.Link()
	require.NoError(t, err)
	state, err := feature.GetAdministrativePrivileges()
	require.NoError(t, err)
	assert.Equal(t, linkapi.StateEnabled, state)

	calls := conn.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "esxcli software vib get -n intnetcli", calls[0].Command)
	assert.Equal(t, "esxcli intnet admin link get -n vmnic1", calls[1].Command)
}

func TestLinkNotImplementedForOS(t *testing.T) {
	iface, err := NewNetworkInterface(platform.NewMockExecClient(false), platform.OSNameLinux, InterfaceInfo{Name: "eth0"}, nil)
	require.NoError(t, err)

	_, err = iface.Link()
	require.ErrorIs(t, err, link.ErrFeatureNotImplemented)
}
