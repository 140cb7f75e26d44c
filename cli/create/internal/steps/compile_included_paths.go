package steps

import (
	create_ctx "github.com/ctemplate/ct/cli/create/context"
	"github.com/ctemplate/ct/cli/inclusion"
	"github.com/ctemplate/ct/cli/templates"
)

// CompileIncludedPaths represents a step collecting template files to copy.
type CompileIncludedPaths struct {
}

// Run walks the template directory. The template container directory and
// paths excluded in the template info are never copied.
func (CompileIncludedPaths) Run(ctx *create_ctx.CreateCtx, templateCtx *TemplateCtx) error {
	builtinExcludes := inclusion.NewPathSet(templates.ContainerDirName)
	for _, excluded := range templateCtx.Template.Info.Exclude {
		builtinExcludes.Add(excluded)
	}

	paths, err := inclusion.CompileDir(templateCtx.Template.Path, builtinExcludes,
		inclusion.NewPathSet(ctx.Excludes...))
	if err != nil {
		return err
	}
	templateCtx.Paths = paths
	return nil
}
