// Package vlan builds and runs the esxcli commands managing VLAN settings of
// an ESXi network interface.
package vlan

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/szmijews/mfd-network-adapter/platform"
)

var (
	// ErrInvalidTPID is returned when a TPID outside SupportedTPIDs is requested.
	ErrInvalidTPID = errors.New("invalid argument")
	// ErrUnsupported is returned when the NIC does not support the TPID feature.
	ErrUnsupported = errors.New("unsupported operation")
	// ErrOperationFailed is returned when esxcli reports an error or failure.
	ErrOperationFailed = errors.New("operation failed")
)

var esxcliExecOptions = platform.ExecOptions{
	ExpectedReturnCodes: []int{0},
	StderrToStdout:      true,
}

// SetVLANTPID sets the TPID used for VLAN tagging by VFs on the given interface.
func SetVLANTPID(conn platform.Connection, tpid TPID, interfaceName string) error {
	if !tpid.IsSupported() {
		return errors.Wrapf(ErrInvalidTPID, "TPID %s is not supported. Supported TPIDs: %v", tpid, SupportedTPIDs())
	}

	cmd := fmt.Sprintf("esxcli intnet qinq tpid set -s %s -n %s", tpid, interfaceName)
	result, err := conn.ExecuteCommand(cmd, esxcliExecOptions)
	if err != nil {
		return err
	}

	return classifyOutput(result.Stdout, "Setting TPID", fmt.Sprintf("Setting TPID %s", tpid))
}

// GetVLANTPID returns the TPID used for VLAN tagging by VFs on the given interface.
// The reported value is returned as-is and is not checked against SupportedTPIDs.
func GetVLANTPID(conn platform.Connection, interfaceName string) (TPID, error) {
	cmd := fmt.Sprintf("esxcli intnet qinq tpid get -n %s", interfaceName)
	result, err := conn.ExecuteCommand(cmd, esxcliExecOptions)
	if err != nil {
		return "", err
	}

	if err := classifyOutput(result.Stdout, "Getting TPID", "Getting TPID"); err != nil {
		return "", err
	}
	return TPID(strings.TrimSpace(result.Stdout)), nil
}

// classifyOutput maps esxcli text to an error. "unsupported" is matched
// case-sensitively and wins over the case-insensitive "error"/"failure" markers.
func classifyOutput(stdout, action, failedAction string) error {
	if strings.Contains(stdout, "unsupported") {
		return errors.Wrapf(ErrUnsupported, "%s is not supported on this NIC", action)
	}

	lower := strings.ToLower(stdout)
	for _, marker := range []string{"error", "failure"} {
		if strings.Contains(lower, marker) {
			return errors.Wrapf(ErrOperationFailed, "%s failed", failedAction)
		}
	}
	return nil
}
