package steps

import (
	"github.com/apex/log"

	create_ctx "github.com/ctemplate/ct/cli/create/context"
)

// FillTemplateVarsFromInfo represents a step setting template default variables.
type FillTemplateVarsFromInfo struct {
}

// Run sets variables defined in the template info.
func (FillTemplateVarsFromInfo) Run(_ *create_ctx.CreateCtx, templateCtx *TemplateCtx) error {
	for name, value := range templateCtx.Template.Info.Vars {
		log.Debugf("Setting var from template info: %s = %s", name, value)
		templateCtx.Vars[name] = value
	}
	return nil
}
