package link

import (
	linkapi "github.com/szmijews/mfd-network-adapter/api/link"
	"github.com/szmijews/mfd-network-adapter/platform"
	"go.uber.org/zap"
)

func init() {
	Register(platform.OSNameESXi, NewESXiLink)
}

// ESXiLink implements Feature with esxcli intnet.
type ESXiLink struct {
	owner  Owner
	conn   platform.Connection
	logger *zap.Logger
}

// NewESXiLink returns the ESXi link feature of owner.
func NewESXiLink(owner Owner, conn platform.Connection, logger *zap.Logger) Feature {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ESXiLink{
		owner:  owner,
		conn:   conn,
		logger: logger,
	}
}

func (l *ESXiLink) SetAdministrativePrivileges(state linkapi.State) error {
	l.logger.Debug("Setting administrative link privilege", zap.String("interface", l.owner.Name()), zap.Stringer("state", state))
	return linkapi.SetAdministrativePrivileges(l.conn, state, l.owner.Name())
}

func (l *ESXiLink) GetAdministrativePrivileges() (linkapi.State, error) {
	l.logger.Debug("Getting administrative link privilege", zap.String("interface", l.owner.Name()))
	return linkapi.GetAdministrativePrivileges(l.conn, l.owner.Name())
}
