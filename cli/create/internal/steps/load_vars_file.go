package steps

import (
	create_ctx "github.com/ctemplate/ct/cli/create/context"
	"github.com/ctemplate/ct/cli/keyvalue"
)

// LoadVarsFile represents variables file load step.
type LoadVarsFile struct {
}

// Run loads variables from the file of "key=value" lines.
func (LoadVarsFile) Run(ctx *create_ctx.CreateCtx, templateCtx *TemplateCtx) error {
	if ctx.VarsFile == "" { // Skip if no file specified.
		return nil
	}

	vars, err := keyvalue.ParseFile(ctx.VarsFile)
	if err != nil {
		return err
	}
	templateCtx.Vars.Merge(vars)
	return nil
}
