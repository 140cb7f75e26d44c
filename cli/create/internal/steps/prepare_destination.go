package steps

import (
	"fmt"
	"os"

	"github.com/apex/log"

	create_ctx "github.com/ctemplate/ct/cli/create/context"
	"github.com/ctemplate/ct/cli/materialize"
	"github.com/ctemplate/ct/cli/util"
)

const defaultDirPermissions = os.FileMode(0755)

// PrepareDestination represents destination directory creation step.
type PrepareDestination struct {
}

// Run creates the destination directory. A destination inside the template is
// refused. In force mode existing directory content is removed.
func (PrepareDestination) Run(ctx *create_ctx.CreateCtx, templateCtx *TemplateCtx) error {
	if ctx.DestinationDir == "" {
		return fmt.Errorf("destination directory is not set")
	}

	templatePath := templateCtx.Template.Path
	if templatePath != "" {
		inside, err := util.IsSubPath(templatePath, ctx.DestinationDir)
		if err != nil {
			return err
		}
		if inside {
			return fmt.Errorf("destination %s is inside the template %s",
				ctx.DestinationDir, templatePath)
		}
	}

	if ctx.ForceMode {
		if templatePath != "" {
			contains, err := util.IsSubPath(ctx.DestinationDir, templatePath)
			if err != nil {
				return err
			}
			if contains {
				return fmt.Errorf("refusing to clear %s: it contains the template %s",
					ctx.DestinationDir, templatePath)
			}
		}
		log.Debugf("Clearing %s", ctx.DestinationDir)
		if err := materialize.ClearDestination(ctx.DestinationDir); err != nil {
			return err
		}
	}

	if err := util.CreateDirectory(ctx.DestinationDir, defaultDirPermissions); err != nil {
		return fmt.Errorf("error create destination dir %s: %s", ctx.DestinationDir, err)
	}
	return nil
}
