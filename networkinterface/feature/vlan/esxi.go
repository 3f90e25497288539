package vlan

import (
	vlanapi "github.com/szmijews/mfd-network-adapter/api/vlan"
	"github.com/szmijews/mfd-network-adapter/platform"
	"go.uber.org/zap"
)

func init() {
	Register(platform.OSNameESXi, NewESXiVLAN)
}

// ESXiVLAN implements Feature with esxcli intnet.
type ESXiVLAN struct {
	owner  Owner
	conn   platform.Connection
	logger *zap.Logger
}

// NewESXiVLAN returns the ESXi VLAN feature of owner.
func NewESXiVLAN(owner Owner, conn platform.Connection, logger *zap.Logger) Feature {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ESXiVLAN{
		owner:  owner,
		conn:   conn,
		logger: logger,
	}
}

func (v *ESXiVLAN) SetVLANTPID(tpid vlanapi.TPID) error {
	v.logger.Debug("Setting VLAN TPID", zap.String("interface", v.owner.Name()), zap.Stringer("tpid", tpid))
	return vlanapi.SetVLANTPID(v.conn, tpid, v.owner.Name())
}

func (v *ESXiVLAN) GetVLANTPID() (vlanapi.TPID, error) {
	v.logger.Debug("Getting VLAN TPID", zap.String("interface", v.owner.Name()))
	return vlanapi.GetVLANTPID(v.conn, v.owner.Name())
}
