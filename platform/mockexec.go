package platform

import "errors"

type MockExecClient struct {
	returnError    bool
	setExecCommand execCommandValidator
	calls          []MockExecCall
}

// MockExecCall is one recorded ExecuteCommand invocation.
type MockExecCall struct {
	Command string
	Options ExecOptions
}

type execCommandValidator func(string, ExecOptions) (*ExecResult, error)

// ErrMockExec - mock exec error
var ErrMockExec = errors.New("mock exec error")

func NewMockExecClient(returnErr bool) *MockExecClient {
	return &MockExecClient{
		returnError: returnErr,
	}
}

// NewMockExecClientWithOutput returns a mock answering every command with
// return code 0 and the given stdout.
func NewMockExecClientWithOutput(stdout string) *MockExecClient {
	m := &MockExecClient{}
	m.SetExecCommand(func(cmd string, _ ExecOptions) (*ExecResult, error) {
		return &ExecResult{Command: cmd, Stdout: stdout}, nil
	})
	return m
}

func (e *MockExecClient) ExecuteCommand(cmd string, opts ExecOptions) (*ExecResult, error) {
	e.calls = append(e.calls, MockExecCall{Command: cmd, Options: opts})

	if e.setExecCommand != nil {
		return e.setExecCommand(cmd, opts)
	}

	if e.returnError {
		return nil, ErrMockExec
	}

	return &ExecResult{Command: cmd}, nil
}

func (e *MockExecClient) SetExecCommand(fn execCommandValidator) {
	e.setExecCommand = fn
}

// Calls returns the recorded invocations in order.
func (e *MockExecClient) Calls() []MockExecCall {
	return e.calls
}
