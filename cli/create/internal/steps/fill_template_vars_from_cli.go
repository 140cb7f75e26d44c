package steps

import (
	"github.com/apex/log"

	create_ctx "github.com/ctemplate/ct/cli/create/context"
	"github.com/ctemplate/ct/cli/keyvalue"
)

// FillTemplateVarsFromCli represents a step setting variables passed in command line.
type FillTemplateVarsFromCli struct {
}

// Run collects variables passed using command line args. Definitions without
// "=" are ignored.
func (FillTemplateVarsFromCli) Run(ctx *create_ctx.CreateCtx, templateCtx *TemplateCtx) error {
	vars := keyvalue.Parse(ctx.VarsFromCli)
	for name, value := range vars {
		log.Debugf("Setting var from CLI: %s = %s", name, value)
	}
	templateCtx.Vars.Merge(vars)
	return nil
}
