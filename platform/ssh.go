package platform

import (
	"bytes"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

const (
	defaultSSHPort    = 22
	defaultSSHTimeout = 30 * time.Second
)

// ErrNoSSHAuth is returned when neither a password nor a key file is configured.
var ErrNoSSHAuth = errors.New("no ssh authentication method configured")

// SSHConfig describes how to reach a remote host.
type SSHConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	KeyFile  string
	// KnownHostsFile enables host key verification. Empty disables it.
	KnownHostsFile string
	Timeout        time.Duration
}

// SSHClient is a Connection running every command in a fresh session of one
// ssh client connection.
type SSHClient struct {
	client *ssh.Client
	host   string
	logger *zap.Logger
}

// NewSSHClient dials the host described by cfg.
func NewSSHClient(cfg SSHConfig, logger *zap.Logger) (*SSHClient, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientConfig, err := sshClientConfig(cfg, logger)
	if err != nil {
		return nil, err
	}

	addr := sshAddress(cfg)
	logger.Info("Dialing ssh host", zap.String("addr", addr), zap.String("user", cfg.User))
	client, err := ssh.Dial("tcp", addr, clientConfig)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial %s", addr)
	}

	return &SSHClient{
		client: client,
		host:   cfg.Host,
		logger: logger.With(zap.String("host", cfg.Host)),
	}, nil
}

func sshAddress(cfg SSHConfig) string {
	port := cfg.Port
	if port == 0 {
		port = defaultSSHPort
	}
	return net.JoinHostPort(cfg.Host, strconv.Itoa(port))
}

func sshClientConfig(cfg SSHConfig, logger *zap.Logger) (*ssh.ClientConfig, error) {
	auth, err := sshAuthMethods(cfg)
	if err != nil {
		return nil, err
	}

	hostKeyCallback := ssh.InsecureIgnoreHostKey() //nolint:gosec // opt-in verification through KnownHostsFile
	if cfg.KnownHostsFile != "" {
		hostKeyCallback, err = knownhosts.New(cfg.KnownHostsFile)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load known hosts from %s", cfg.KnownHostsFile)
		}
	} else {
		logger.Warn("Host key verification disabled", zap.String("host", cfg.Host))
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultSSHTimeout
	}

	return &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            auth,
		HostKeyCallback: hostKeyCallback,
		Timeout:         timeout,
	}, nil
}

func sshAuthMethods(cfg SSHConfig) ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod

	if cfg.KeyFile != "" {
		key, err := os.ReadFile(cfg.KeyFile)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read key file %s", cfg.KeyFile)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse key file %s", cfg.KeyFile)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}

	if cfg.Password != "" {
		password := cfg.Password
		// ESXi hosts usually only offer keyboard-interactive for passwords.
		methods = append(methods,
			ssh.Password(password),
			ssh.KeyboardInteractive(func(_, _ string, questions []string, _ []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range answers {
					answers[i] = password
				}
				return answers, nil
			}),
		)
	}

	if len(methods) == 0 {
		return nil, ErrNoSSHAuth
	}
	return methods, nil
}

func (c *SSHClient) ExecuteCommand(command string, opts ExecOptions) (*ExecResult, error) {
	c.logger.Info("[mfd-platform]", zap.String("ExecuteCommand", command))

	session, err := c.client.NewSession()
	if err != nil {
		commandsTotal.WithLabelValues(resultError).Inc()
		return nil, errors.Wrapf(err, "failed to open ssh session to %s", c.host)
	}
	defer session.Close()

	// session copies stdout and stderr from separate goroutines
	var stdout, stderr syncBuffer
	session.Stdout = &stdout
	if opts.StderrToStdout {
		session.Stderr = &stdout
	} else {
		session.Stderr = &stderr
	}

	returnCode := 0
	if err := session.Run(command); err != nil {
		var xErr *ssh.ExitError
		if !errors.As(err, &xErr) {
			commandsTotal.WithLabelValues(resultError).Inc()
			return nil, errors.Wrapf(err, "ExecuteCommand failed on %s. command: %q", c.host, command)
		}
		returnCode = xErr.ExitStatus()
	}

	result := &ExecResult{
		Command:    command,
		ReturnCode: returnCode,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
	}
	if err := verifyReturnCode(result, opts); err != nil {
		c.logger.Error("Unexpected return code", zap.String("command", command), zap.Int("returnCode", returnCode))
		return result, err
	}
	return result, nil
}

// Close closes the underlying ssh connection.
func (c *SSHClient) Close() error {
	return errors.Wrap(c.client.Close(), "failed to close ssh client")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
