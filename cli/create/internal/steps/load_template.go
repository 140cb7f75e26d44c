package steps

import (
	"github.com/apex/log"

	create_ctx "github.com/ctemplate/ct/cli/create/context"
	"github.com/ctemplate/ct/cli/templates"
)

// LoadTemplate represents template lookup step.
type LoadTemplate struct {
}

// Run finds the template in the templates directory and loads its info.
func (LoadTemplate) Run(ctx *create_ctx.CreateCtx, templateCtx *TemplateCtx) error {
	repository := templates.NewRepository(ctx.TemplatesDir)
	template, err := repository.Get(ctx.TemplateName)
	if err != nil {
		return err
	}

	if !template.HasInfo {
		log.Debugf("Template %q has no info file", template.Name)
	}
	log.Debugf("Using template from %s", template.Path)
	templateCtx.Template = template
	return nil
}
