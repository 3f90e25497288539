package platform

import (
	"strings"

	"github.com/pkg/errors"
)

// OSName identifies the operating system family of a host.
type OSName string

const (
	OSNameESXi    OSName = "ESXi"
	OSNameLinux   OSName = "Linux"
	OSNameWindows OSName = "Windows"
	OSNameFreeBSD OSName = "FreeBSD"
)

// ErrUnknownOSName is returned when an OS string cannot be mapped to an OSName.
var ErrUnknownOSName = errors.New("unknown os name")

// ParseOSName maps `uname -s` style output to an OSName.
func ParseOSName(s string) (OSName, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vmkernel", "esxi":
		return OSNameESXi, nil
	case "linux":
		return OSNameLinux, nil
	case "windows", "windows_nt":
		return OSNameWindows, nil
	case "freebsd":
		return OSNameFreeBSD, nil
	}
	return "", errors.Wrapf(ErrUnknownOSName, "%q", s)
}

// DetectOSName asks the host behind conn for its kernel name.
func DetectOSName(conn Connection) (OSName, error) {
	result, err := conn.ExecuteCommand("uname -s", ExecOptions{ExpectedReturnCodes: []int{0}})
	if err != nil {
		return "", err
	}
	return ParseOSName(result.Stdout)
}
