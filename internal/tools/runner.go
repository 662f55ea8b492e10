package tools

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"
)

// ToolResult contains the result of a tool execution
type ToolResult struct {
	Stdout   []byte
	Stderr   string
	ExitCode int
}

// Output returns stdout followed by stderr, the way a shell would show both
// streams to a user.
func (r *ToolResult) Output() string {
	if r == nil {
		return ""
	}
	if r.Stderr == "" {
		return string(r.Stdout)
	}
	return string(r.Stdout) + r.Stderr
}

// RunFunc executes a binary. Probes take one so tests can replace the
// operating system.
type RunFunc func(ctx context.Context, binary string, args ...string) (*ToolResult, error)

// RunTool executes a tool binary with the given arguments and returns the result.
// It handles concurrent pipe reading to prevent buffer deadlocks and enforces
// context timeout with proper subprocess cleanup.
//
// A non-nil result is returned whenever the process started, including when
// it exited non-zero; callers that only care about output can ignore the error.
func RunTool(ctx context.Context, binary string, args ...string) (*ToolResult, error) {
	cmd := exec.CommandContext(ctx, binary, args...)

	// Set WaitDelay for subprocess cleanup after context cancellation
	cmd.WaitDelay = 2 * time.Second

	// Stdin is left nil so the child reads from /dev/null; an elevation
	// prompt sees EOF instead of the terminal.

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", binary, err)
	}

	// Read stdout and stderr concurrently to prevent deadlocks
	var stdoutBuf bytes.Buffer
	var stderrBuf bytes.Buffer

	stdoutDone := make(chan error, 1)
	stderrDone := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(stdoutPipe)
		for scanner.Scan() {
			stdoutBuf.Write(scanner.Bytes())
			stdoutBuf.WriteByte('\n')
		}
		stdoutDone <- scanner.Err()
	}()

	go func() {
		_, err := io.Copy(&stderrBuf, stderrPipe)
		stderrDone <- err
	}()

	<-stdoutDone
	<-stderrDone

	err = cmd.Wait()

	result := &ToolResult{
		Stdout:   stdoutBuf.Bytes(),
		Stderr:   stderrBuf.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
	}

	if err != nil {
		if ctx.Err() != nil {
			return result, fmt.Errorf("command cancelled: %w", ctx.Err())
		}
		return result, fmt.Errorf("command failed with exit code %d: %w", result.ExitCode, err)
	}

	return result, nil
}
