// Package link builds and runs the esxcli commands managing link settings of
// an ESXi network interface.
package link

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/szmijews/mfd-network-adapter/platform"
)

var (
	// ErrIntnetCLINotInstalled is returned when no intnetcli VIB is present on the host.
	ErrIntnetCLINotInstalled = errors.New("intnetcli is not installed")
	// ErrUnknownPrivilege is returned when esxcli output reports no privilege state.
	ErrUnknownPrivilege = errors.New("unknown link privilege")
)

// intnetCLIVIBs are the VIB names the intnetcli esxcli plugin ships under.
var intnetCLIVIBs = []string{"intnetcli", "int-esx-intnetcli"}

// IsVIBInstalled reports whether a VIB with the given name is installed.
func IsVIBInstalled(conn platform.Connection, name string) (bool, error) {
	result, err := conn.ExecuteCommand(fmt.Sprintf("esxcli software vib get -n %s", name), platform.ExecOptions{StderrToStdout: true})
	if err != nil {
		return false, err
	}
	return result.ReturnCode == 0 && !strings.Contains(result.Stdout, "NoMatchError"), nil
}

func checkIntnetCLIInstalled(conn platform.Connection) error {
	for _, vib := range intnetCLIVIBs {
		installed, err := IsVIBInstalled(conn, vib)
		if err != nil {
			return err
		}
		if installed {
			return nil
		}
	}
	return errors.Wrapf(ErrIntnetCLINotInstalled, "none of %v found", intnetCLIVIBs)
}

func privilegeFlag(state State) (string, error) {
	switch state {
	case StateEnabled:
		return "enable", nil
	case StateDisabled:
		return "disable", nil
	}
	return "", errors.Wrapf(ErrInvalidState, "%q", state)
}

// SetAdministrativePrivileges enables or disables the administrative link
// privilege of a VF owner on the given interface.
func SetAdministrativePrivileges(conn platform.Connection, state State, interfaceName string) error {
	flag, err := privilegeFlag(state)
	if err != nil {
		return err
	}
	if err := checkIntnetCLIInstalled(conn); err != nil {
		return err
	}

	cmd := fmt.Sprintf("esxcli intnet admin link set -p %s -n %s", flag, interfaceName)
	_, err = conn.ExecuteCommand(cmd, platform.ExecOptions{ExpectedReturnCodes: []int{0}})
	return err
}

// GetAdministrativePrivileges reads the administrative link privilege from
// output like "Link privilege enabled for vmnic1".
func GetAdministrativePrivileges(conn platform.Connection, interfaceName string) (State, error) {
	if err := checkIntnetCLIInstalled(conn); err != nil {
		return "", err
	}

	cmd := fmt.Sprintf("esxcli intnet admin link get -n %s", interfaceName)
	result, err := conn.ExecuteCommand(cmd, platform.ExecOptions{ExpectedReturnCodes: []int{0}})
	if err != nil {
		return "", err
	}

	out := lower(result.Stdout)
	switch {
	case strings.Contains(out, "privilege enabled"):
		return StateEnabled, nil
	case strings.Contains(out, "privilege disabled"):
		return StateDisabled, nil
	}
	return "", errors.Wrapf(ErrUnknownPrivilege, "output %q", strings.TrimSpace(result.Stdout))
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
