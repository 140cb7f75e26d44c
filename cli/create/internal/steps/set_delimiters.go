package steps

import (
	"github.com/apex/log"

	create_ctx "github.com/ctemplate/ct/cli/create/context"
	"github.com/ctemplate/ct/cli/substitute"
)

// SetDelimiters represents a step choosing variable delimiters.
type SetDelimiters struct {
}

// Run takes delimiters from the template info. Delimiters passed in command line
// take precedence.
func (SetDelimiters) Run(ctx *create_ctx.CreateCtx, templateCtx *TemplateCtx) error {
	templateCtx.Prefix = templateCtx.Template.Info.Prefix
	templateCtx.Suffix = templateCtx.Template.Info.Suffix
	if ctx.Prefix != "" {
		templateCtx.Prefix = ctx.Prefix
	}
	if ctx.Suffix != "" {
		templateCtx.Suffix = ctx.Suffix
	}

	if !substitute.Enabled(templateCtx.Prefix, templateCtx.Suffix) {
		log.Debugf("Variable delimiters are not set, files are copied as is")
	}
	return nil
}
