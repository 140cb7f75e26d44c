package steps

import (
	"path/filepath"

	create_ctx "github.com/ctemplate/ct/cli/create/context"
)

const (
	// TemplateNameVar is a predefined variable holding the template name.
	TemplateNameVar = "template_name"
	// ProjectNameVar is a predefined variable holding the destination directory name.
	ProjectNameVar = "project_name"
)

// SetPredefinedVariables represents a step for setting pre-defined variables.
type SetPredefinedVariables struct {
}

// Run sets predefined variables values.
func (SetPredefinedVariables) Run(createCtx *create_ctx.CreateCtx,
	templateCtx *TemplateCtx,
) error {
	templateCtx.Vars[TemplateNameVar] = createCtx.TemplateName
	if createCtx.DestinationDir != "" {
		templateCtx.Vars[ProjectNameVar] = filepath.Base(createCtx.DestinationDir)
	}
	return nil
}
