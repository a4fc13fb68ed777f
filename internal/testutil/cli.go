package testutil

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
)

// ExecResult holds the result of a CLI command execution.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunCLI executes the matchspec binary with the given arguments and
// returns the result. The binary must be built first (make build);
// tests that call this are skipped when it is absent. This is for
// end-to-end testing of exit codes and full CLI behavior.
func RunCLI(tb testing.TB, args ...string) ExecResult {
	return RunCLIStdin(tb, "", args...)
}

// RunCLIStdin is RunCLI with the given string fed to stdin.
func RunCLIStdin(tb testing.TB, stdin string, args ...string) ExecResult {
	tb.Helper()

	// Find the binary - first try the project root, then relative to
	// the test directory (two levels up from cmd/matchspec).
	binary := "./matchspec"
	if _, err := os.Stat(binary); os.IsNotExist(err) {
		binary = "../../matchspec"
		if _, err := os.Stat(binary); os.IsNotExist(err) {
			tb.Skip("matchspec binary not found - run 'make build' first")
		}
	}

	cmd := exec.Command(binary, args...)
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	} else if err != nil {
		tb.Fatalf("failed to run matchspec: %v", err)
	}

	return ExecResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}
