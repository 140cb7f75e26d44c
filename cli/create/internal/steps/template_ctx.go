package steps

import (
	"github.com/ctemplate/ct/cli/inclusion"
	"github.com/ctemplate/ct/cli/keyvalue"
	"github.com/ctemplate/ct/cli/materialize"
	"github.com/ctemplate/ct/cli/templates"
)

// TemplateCtx contains an information required for template instantiation.
type TemplateCtx struct {
	// Template is the loaded template.
	Template templates.Template
	// Vars is a map of variables to be used for substitution.
	Vars keyvalue.VariableMap
	// Prefix and Suffix are the variable delimiters.
	Prefix string
	Suffix string
	// Paths is a set of template files to copy.
	Paths inclusion.PathSet
	// Result lists the files processed by the copy step.
	Result materialize.Result
}

// NewTemplateContext creates new template context.
func NewTemplateContext() TemplateCtx {
	var ctx TemplateCtx
	ctx.Vars = make(keyvalue.VariableMap)
	return ctx
}
