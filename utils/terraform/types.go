package terraform

import (
	"fmt"
	"time"
)

// ExecutionResult captures one terraform invocation. It is created by the
// runner and never mutated afterwards. Stdout and stderr are kept separate
// and untruncated for reporting.
type ExecutionResult struct {
	ExitCode    int
	Stdout      string
	Stderr      string
	Duration    time.Duration
	CommandLine string
}

// Succeeded reports whether the invocation exited cleanly.
func (r *ExecutionResult) Succeeded() bool {
	return r.ExitCode == 0
}

// ExecutionError wraps a non-zero terraform exit for callers that want the
// captured stderr alongside the failure.
type ExecutionError struct {
	Result *ExecutionResult
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("terraform command failed with exit code %d", e.Result.ExitCode)
}

// WorkspaceError reports that the select-or-create workspace protocol was
// exhausted: the workspace could not be selected even after creating it.
type WorkspaceError struct {
	Workspace string
	Stderr    string
}

func (e *WorkspaceError) Error() string {
	return fmt.Sprintf("failed to select workspace %q", e.Workspace)
}
