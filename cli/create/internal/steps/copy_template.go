package steps

import (
	"github.com/apex/log"

	create_ctx "github.com/ctemplate/ct/cli/create/context"
	"github.com/ctemplate/ct/cli/materialize"
)

// CopyTemplate represents template files copy step.
type CopyTemplate struct {
	// IsBinary decides which files are copied without substitution.
	// materialize.IsBinary is used if nil.
	IsBinary materialize.BinaryPredicate
}

// Run copies included template files to the destination directory.
func (copyStep CopyTemplate) Run(ctx *create_ctx.CreateCtx, templateCtx *TemplateCtx) error {
	result, err := materialize.Materialize(materialize.Opts{
		TemplateRoot:    templateCtx.Template.Path,
		DestinationRoot: ctx.DestinationDir,
		Paths:           templateCtx.Paths,
		Vars:            templateCtx.Vars,
		Prefix:          templateCtx.Prefix,
		Suffix:          templateCtx.Suffix,
		Option:          ctx.CopyOption,
		IsBinary:        copyStep.IsBinary,
	})
	templateCtx.Result = result
	if err != nil {
		return err
	}

	log.Debugf("Created: %d, overwritten: %d, skipped: %d", len(result.Created),
		len(result.Overwritten), len(result.Skipped))
	for _, skipped := range result.Skipped {
		log.Infof("Skipped existing file %s", skipped)
	}
	return nil
}
