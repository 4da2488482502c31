package terraform

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	log "github.com/charmbracelet/log"
)

// execFunc is the process-execution seam. Production use is execCommand;
// tests substitute a fake so no terraform binary is needed.
type execFunc func(ctx context.Context, args []string, env []string) *ExecutionResult

// Runner executes terraform argument vectors with a resolved environment.
// A non-zero exit is data on the ExecutionResult, not an error; the caller
// decides whether it terminates the run.
type Runner interface {
	Run(ctx context.Context, args []string) *ExecutionResult
	EnsureWorkspace(ctx context.Context, workspace string) error
}

type runner struct {
	workDir string
	env     map[string]string
	exec    execFunc
}

// NewRunner returns a Runner for the given terraform root. env entries are
// exported on top of the current process environment for every invocation.
func NewRunner(workDir string, env map[string]string) Runner {
	return &runner{workDir: workDir, env: env, exec: execCommand}
}

func (r *runner) Run(ctx context.Context, args []string) *ExecutionResult {
	log.Debug("executing terraform", "args", strings.Join(args[1:], " "))
	result := r.exec(ctx, args, r.environ())
	log.Debug("terraform finished", "exit_code", result.ExitCode, "duration", result.Duration)
	return result
}

// EnsureWorkspace selects the workspace before the primary command runs,
// creating it when the select fails because it does not exist. Exactly one
// create-and-retry is attempted; any further failure is a WorkspaceError.
// The default workspace always exists, so the create branch never fires
// for it.
func (r *runner) EnsureWorkspace(ctx context.Context, workspace string) error {
	selectArgs := workspaceArgs(r.workDir, "select", workspace)
	if selected := r.Run(ctx, selectArgs); selected.Succeeded() {
		return nil
	}

	log.Info("workspace not selectable, creating it", "workspace", workspace)
	if created := r.Run(ctx, workspaceArgs(r.workDir, "new", workspace)); !created.Succeeded() {
		return &WorkspaceError{Workspace: workspace, Stderr: created.Stderr}
	}
	if retried := r.Run(ctx, selectArgs); !retried.Succeeded() {
		return &WorkspaceError{Workspace: workspace, Stderr: retried.Stderr}
	}
	return nil
}

// environ layers the resolved auth environment over the process environment.
func (r *runner) environ() []string {
	env := os.Environ()
	for key, value := range r.env {
		env = append(env, key+"="+value)
	}
	return env
}

// execCommand runs the argument vector as a child process, blocking until it
// exits. Directory targeting is carried by the -chdir flag inside args, so
// the child runs from the process working directory.
func execCommand(ctx context.Context, args []string, env []string) *ExecutionResult {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Env = env

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	start := time.Now()
	err := cmd.Run()

	result := &ExecutionResult{
		Stdout:      stdoutBuf.String(),
		Stderr:      stderrBuf.String(),
		Duration:    time.Since(start),
		CommandLine: strings.Join(args, " "),
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			// the process never started
			result.ExitCode = -1
			result.Stderr = err.Error()
		}
	}
	return result
}
