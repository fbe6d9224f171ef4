package service

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"pdf-toolbox/internal/domain"
	apperrors "pdf-toolbox/pkg/errors"
)

// ProtectService applies and removes PDF password protection by delegating
// to the external qpdf tool. Implements domain.Protector.
type ProtectService struct {
	store  domain.ArtifactStore
	runner ToolRunner
	logger domain.Logger
}

// NewProtectService creates a new protection service instance
func NewProtectService(store domain.ArtifactStore, runner ToolRunner, logger domain.Logger) *ProtectService {
	return &ProtectService{
		store:  store,
		runner: runner,
		logger: logger,
	}
}

// Protect encrypts the PDF at path with the given password using AES-256.
// Permissions: full printing allowed; modify, extract and annotate disallowed.
// All-or-nothing: any tool failure aborts the request.
func (s *ProtectService) Protect(path, password string) (*domain.ProtectOutput, error) {
	name := fmt.Sprintf("protected-%d.pdf", time.Now().UnixMilli())
	outPath := filepath.Join(s.store.Root(), name)

	res, err := s.runner.Run(
		"--encrypt", password, password, "256",
		"--print=full",
		"--modify=none",
		"--extract=n",
		"--annotate=n",
		"--",
		path, outPath,
	)
	if err := s.checkToolResult(res, err, name); err != nil {
		return nil, err
	}

	s.logger.Info("Protected PDF", "output", name)
	return &domain.ProtectOutput{
		Name: name,
		Path: outPath,
		URL:  "/uploads/" + name,
	}, nil
}

// Unprotect decrypts the PDF at path with the given password. A tool failure
// whose diagnostics indicate a password problem is reported as an
// authentication error; anything else as a generic tool failure.
func (s *ProtectService) Unprotect(path, password string) (*domain.ProtectOutput, error) {
	name := fmt.Sprintf("unprotected-%d.pdf", time.Now().UnixMilli())
	outPath := filepath.Join(s.store.Root(), name)

	res, err := s.runner.Run(
		"--password="+password,
		"--decrypt",
		"--",
		path, outPath,
	)
	if err := s.checkToolResult(res, err, name); err != nil {
		return nil, err
	}

	s.logger.Info("Unprotected PDF", "output", name)
	return &domain.ProtectOutput{
		Name: name,
		Path: outPath,
		URL:  "/uploads/" + name,
	}, nil
}

// checkToolResult classifies a finished tool invocation, removing any
// partial output on failure. qpdf exit code 3 means warnings only; the
// output file is still written.
func (s *ProtectService) checkToolResult(res ExecResult, invokeErr error, outName string) error {
	if invokeErr != nil {
		return apperrors.NewToolError("protection tool could not be started", invokeErr)
	}
	switch res.ExitCode {
	case 0:
		return nil
	case 3:
		s.logger.Warn("Protection tool reported warnings", "stderr", res.Stderr)
		return nil
	}

	if delErr := s.store.Delete(outName); delErr != nil {
		s.logger.Warn("Failed to remove partial tool output", "name", outName, "error", delErr)
	}
	s.logger.Error("Protection tool failed", nil, "exit_code", res.ExitCode, "stderr", res.Stderr)

	if isPasswordFailure(res.Stderr) || isPasswordFailure(res.Stdout) {
		return apperrors.NewUnauthorizedError("incorrect password")
	}
	return apperrors.NewToolError(
		fmt.Sprintf("protection tool failed with exit code %d", res.ExitCode), nil)
}

// isPasswordFailure scans tool diagnostics for a password-related signature.
// qpdf does not expose a distinct exit code for bad passwords, so substring
// matching on stderr is the only available classification.
func isPasswordFailure(diag string) bool {
	return strings.Contains(strings.ToLower(diag), "password")
}
