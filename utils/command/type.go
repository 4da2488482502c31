package command

import (
	"context"

	"github.com/Action-Foundry/AVM-Action/utils/azure"
	"github.com/Action-Foundry/AVM-Action/utils/file"
	"github.com/Action-Foundry/AVM-Action/utils/terraform"
)

// Utils wires the capabilities a run needs. The terraform runner is created
// per run because it carries the resolved auth environment.
type Utils interface {
	GetContext() context.Context
	GetFileUtils() file.Utils
	GetAuthResolver() *azure.Resolver
	NewTerraformRunner(workDir string, env map[string]string) terraform.Runner
}
