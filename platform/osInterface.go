package platform

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	defaultExecTimeout = 10
	// execWaitDelay bounds how long Run waits for output pipes held open by
	// children of a killed shell.
	execWaitDelay = 500 * time.Millisecond
)

//go:generate mockgen -destination=mocks/connection.go -package=mocks github.com/szmijews/mfd-network-adapter/platform Connection

// Connection runs a shell command on a host and reports its outcome.
type Connection interface {
	ExecuteCommand(command string, opts ExecOptions) (*ExecResult, error)
}

// ExecOptions controls how a command result is validated.
type ExecOptions struct {
	// ExpectedReturnCodes lists the exit codes treated as success.
	// Empty means any exit code is accepted.
	ExpectedReturnCodes []int
	// StderrToStdout merges standard error into Stdout.
	StderrToStdout bool
}

// ExecResult is the outcome of a single command.
type ExecResult struct {
	Command    string
	ReturnCode int
	Stdout     string
	Stderr     string
}

type execClient struct {
	Timeout time.Duration
	logger  *zap.Logger
}

// NewExecClient returns a Connection running commands on the local host.
func NewExecClient(logger *zap.Logger) Connection {
	return NewExecClientTimeout(defaultExecTimeout*time.Second, logger)
}

// NewExecClientTimeout is NewExecClient with a custom per-command timeout.
func NewExecClientTimeout(timeout time.Duration, logger *zap.Logger) Connection {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &execClient{
		Timeout: timeout,
		logger:  logger,
	}
}

func (p *execClient) ExecuteCommand(command string, opts ExecOptions) (*ExecResult, error) {
	p.logger.Info("[mfd-platform]", zap.String("ExecuteCommand", command))

	ctx, cancel := context.WithTimeout(context.Background(), p.Timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := shellCommand(ctx, command)
	cmd.WaitDelay = execWaitDelay
	cmd.Stdout = &stdout
	if opts.StderrToStdout {
		cmd.Stderr = &stdout
	} else {
		cmd.Stderr = &stderr
	}

	returnCode := 0
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			commandsTotal.WithLabelValues(resultError).Inc()
			p.logger.Error("Command timed out", zap.String("command", command), zap.Duration("timeout", p.Timeout))
			return nil, errors.Wrapf(ctxErr, "ExecuteCommand timed out after %s. command: %q", p.Timeout, command)
		}
		var xErr *exec.ExitError
		if !errors.As(err, &xErr) {
			commandsTotal.WithLabelValues(resultError).Inc()
			return nil, errors.Wrapf(err, "ExecuteCommand failed. command: %q", command)
		}
		returnCode = xErr.ExitCode()
	}

	result := &ExecResult{
		Command:    command,
		ReturnCode: returnCode,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
	}
	if err := verifyReturnCode(result, opts); err != nil {
		p.logger.Error("Unexpected return code", zap.String("command", command), zap.Int("returnCode", returnCode))
		return result, err
	}
	return result, nil
}
