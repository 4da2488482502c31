package command

import (
	"context"

	"github.com/Action-Foundry/AVM-Action/utils/azure"
	"github.com/Action-Foundry/AVM-Action/utils/file"
	"github.com/Action-Foundry/AVM-Action/utils/terraform"
)

type commandUtils struct {
	ctx       context.Context
	fileUtils file.Utils
	resolver  *azure.Resolver
}

// NewUtils creates the production wiring.
func NewUtils() Utils {
	return &commandUtils{
		ctx:       context.Background(),
		fileUtils: file.NewUtils(),
		resolver:  azure.NewResolver(),
	}
}

func (c *commandUtils) GetContext() context.Context {
	return c.ctx
}

func (c *commandUtils) GetFileUtils() file.Utils {
	return c.fileUtils
}

func (c *commandUtils) GetAuthResolver() *azure.Resolver {
	return c.resolver
}

func (c *commandUtils) NewTerraformRunner(workDir string, env map[string]string) terraform.Runner {
	return terraform.NewRunner(workDir, env)
}
