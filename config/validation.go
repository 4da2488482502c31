package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Action-Foundry/AVM-Action/utils/file"
)

// Workspace names are passed straight to `terraform workspace select`, so
// they are restricted to characters that cannot smuggle extra arguments.
var workspacePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Validate checks cfg against the per-command input rules and returns every
// violation found. It never stops at the first problem and never fails with
// an error itself; the caller decides whether the run aborts.
func Validate(cfg *Config, fs file.Utils) []string {
	var errs []string

	if cfg.TFDirectory == "" {
		errs = append(errs, "tf_directory cannot be empty")
	} else if ok, err := fs.DirExists(cfg.TFDirectory); err != nil {
		errs = append(errs, fmt.Sprintf("tf_directory not accessible: %v", err))
	} else if !ok {
		errs = append(errs, "tf_directory not found")
	}

	if cfg.Command == "" {
		errs = append(errs, "command cannot be empty")
	} else if !cfg.Command.Known() {
		errs = append(errs, fmt.Sprintf("Invalid command: %s (valid commands: %s)", cfg.Command, commandList()))
	}

	for _, name := range cfg.TFVarsFiles {
		if name == "" {
			errs = append(errs, "tfvars_files entries cannot be empty")
			continue
		}
		if ok, err := fs.FileExists(filepath.Join(cfg.TFDirectory, name)); err != nil {
			errs = append(errs, fmt.Sprintf("tfvars file not accessible: %s (%v)", name, err))
		} else if !ok {
			errs = append(errs, fmt.Sprintf("tfvars file not found: %s", name))
		}
	}

	if cfg.BackendConfigFile != "" {
		if ok, err := fs.FileExists(filepath.Join(cfg.TFDirectory, cfg.BackendConfigFile)); err != nil {
			errs = append(errs, fmt.Sprintf("backend config file not accessible: %s (%v)", cfg.BackendConfigFile, err))
		} else if !ok {
			errs = append(errs, fmt.Sprintf("backend config file not found: %s", cfg.BackendConfigFile))
		}
	}

	if cfg.Workspace != "" && !workspacePattern.MatchString(cfg.Workspace) {
		errs = append(errs, fmt.Sprintf("Invalid workspace name: %s", cfg.Workspace))
	}

	return errs
}

func commandList() string {
	names := make([]string, 0, len(Commands()))
	for _, c := range Commands() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
