package platform

import (
	"fmt"
	"slices"
)

// UnexpectedReturnCodeError is returned when a command exits with a code
// outside ExecOptions.ExpectedReturnCodes.
type UnexpectedReturnCodeError struct {
	Command    string
	ReturnCode int
	Expected   []int
	Stdout     string
	Stderr     string
}

func (e *UnexpectedReturnCodeError) Error() string {
	return fmt.Sprintf("command %q returned unexpected code %d (expected %v). stdout: %q, stderr: %q",
		e.Command, e.ReturnCode, e.Expected, e.Stdout, e.Stderr)
}

func verifyReturnCode(result *ExecResult, opts ExecOptions) error {
	if len(opts.ExpectedReturnCodes) == 0 || slices.Contains(opts.ExpectedReturnCodes, result.ReturnCode) {
		commandsTotal.WithLabelValues(resultOK).Inc()
		return nil
	}

	commandsTotal.WithLabelValues(resultUnexpectedReturnCode).Inc()
	return &UnexpectedReturnCodeError{
		Command:    result.Command,
		ReturnCode: result.ReturnCode,
		Expected:   opts.ExpectedReturnCodes,
		Stdout:     result.Stdout,
		Stderr:     result.Stderr,
	}
}
