package terraform

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Action-Foundry/AVM-Action/config"
)

type builderFunc func(cfg *config.Config, varFileFlags, varFlags []string) []string

// builders is total over config.Commands; BuildArgs fails loudly on any kind
// not in the map instead of guessing.
var builders = map[config.Command]builderFunc{
	config.CommandInit:     buildInit,
	config.CommandValidate: buildValidate,
	config.CommandPlan:     buildPlan,
	config.CommandApply:    buildApply,
	config.CommandDestroy:  buildDestroy,
}

// BuildArgs constructs the full argument vector for the given command,
// including the terraform binary name and the -chdir prefix.
func BuildArgs(command config.Command, cfg *config.Config, varFileFlags, varFlags []string) ([]string, error) {
	build, ok := builders[command]
	if !ok {
		return nil, fmt.Errorf("unsupported command: %s", command)
	}
	return append(prefix(cfg.TFDirectory), build(cfg, varFileFlags, varFlags)...), nil
}

// prefix returns the shared ["terraform", "-chdir=<dir>"] head. The -chdir
// flag is omitted when the target directory already is the process working
// directory.
func prefix(dir string) []string {
	args := []string{"terraform"}
	if !isCurrentDir(dir) {
		args = append(args, "-chdir="+dir)
	}
	return args
}

func isCurrentDir(dir string) bool {
	if dir == "" || dir == "." {
		return true
	}
	cwd, err := os.Getwd()
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	return abs == cwd
}

func buildInit(cfg *config.Config, _, _ []string) []string {
	args := []string{"init"}
	if cfg.BackendConfigFile != "" {
		args = append(args, "-backend-config="+cfg.BackendConfigFile)
	}
	return args
}

// validate takes no variable or workspace flags; it does not need variable
// values.
func buildValidate(*config.Config, []string, []string) []string {
	return []string{"validate"}
}

func buildPlan(_ *config.Config, varFileFlags, varFlags []string) []string {
	args := []string{"plan"}
	args = append(args, varFileFlags...)
	return append(args, varFlags...)
}

func buildApply(_ *config.Config, varFileFlags, varFlags []string) []string {
	args := []string{"apply", "-auto-approve"}
	args = append(args, varFileFlags...)
	return append(args, varFlags...)
}

func buildDestroy(_ *config.Config, varFileFlags, varFlags []string) []string {
	args := []string{"destroy", "-auto-approve"}
	args = append(args, varFileFlags...)
	return append(args, varFlags...)
}

// workspaceArgs builds the vector for the workspace pre-step; verb is either
// "select" or "new".
func workspaceArgs(dir, verb, workspace string) []string {
	return append(prefix(dir), "workspace", verb, workspace)
}
