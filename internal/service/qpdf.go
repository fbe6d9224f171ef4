package service

import (
	"bytes"
	"errors"
	"os/exec"
)

// ExecResult captures a finished subprocess invocation. Callers classify
// failures on these structured fields instead of a duck-typed error.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ToolRunner invokes the external password-protection tool. A non-nil error
// means the tool could not be started at all; a tool that ran and failed is
// reported through ExecResult.ExitCode.
type ToolRunner interface {
	Run(args ...string) (ExecResult, error)
}

// QPDFRunner runs the qpdf binary.
type QPDFRunner struct {
	binary string
}

// NewQPDFRunner creates a runner for the given qpdf binary path.
func NewQPDFRunner(binary string) *QPDFRunner {
	return &QPDFRunner{binary: binary}
}

// Run executes qpdf with the given arguments and captures its output.
func (q *QPDFRunner) Run(args ...string) (ExecResult, error) {
	cmd := exec.Command(q.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := ExecResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		// Binary missing or not executable.
		return res, err
	}
	return res, nil
}
