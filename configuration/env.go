package configuration

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
)

const (
	// EnvHost is the ESXi host the CLI connects to.
	EnvHost = "ESXI_HOST"
	// EnvPort overrides the ssh port.
	EnvPort     = "ESXI_PORT"
	EnvUser     = "ESXI_USER"
	EnvPassword = "ESXI_PASSWORD"
	EnvKeyFile  = "ESXI_KEY_FILE"

	defaultUser = "root"
)

// ErrHostUnset indicates the $EnvHost variable is unset in the environment.
var ErrHostUnset = errors.Errorf("must declare %s environment variable", EnvHost)

// ErrInvalidPort indicates $EnvPort is not a valid port number.
var ErrInvalidPort = errors.Errorf("%s must be a port number", EnvPort)

// Host checks the environment variables for ESXI_HOST and returns it or an error if unset.
func Host() (string, error) {
	host := os.Getenv(EnvHost)
	if host == "" {
		return "", ErrHostUnset
	}
	return host, nil
}

// Port returns ESXI_PORT, or 0 if unset.
func Port() (int, error) {
	raw := os.Getenv(EnvPort)
	if raw == "" {
		return 0, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 || port > 65535 {
		return 0, errors.Wrapf(ErrInvalidPort, "got %q", raw)
	}
	return port, nil
}

// User returns ESXI_USER, defaulting to root.
func User() string {
	if user := os.Getenv(EnvUser); user != "" {
		return user
	}
	return defaultUser
}

func Password() string {
	return os.Getenv(EnvPassword)
}

func KeyFile() string {
	return os.Getenv(EnvKeyFile)
}
