package cmd

import (
	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/ctemplate/ct/cli/cmdcontext"
	"github.com/ctemplate/ct/cli/templates"
	"github.com/ctemplate/ct/cli/util"
)

var removeListTemplates bool

// NewRemoveCmd creates remove command.
func NewRemoveCmd() *cobra.Command {
	var removeCmd = &cobra.Command{
		Use:               "remove <TEMPLATE_NAME>...",
		Short:             "Remove templates",
		Run:               RunModuleFunc(internalRemoveModule),
		ValidArgsFunction: templateNamesCompletion,
		Example: `
# Remove cpp and go templates.

    $ ct remove cpp go`,
	}

	removeCmd.Flags().BoolVarP(&removeListTemplates, "list", "l", false,
		"List available templates")

	return removeCmd
}

// internalRemoveModule is a default remove module.
func internalRemoveModule(cmdCtx *cmdcontext.CmdCtx, args []string) error {
	if removeListTemplates {
		return listTemplates()
	}
	if len(args) == 0 {
		return util.NewArgError("at least one template name is expected")
	}

	if err := templates.NewRepository(cliOpts.TemplateDirectory).Remove(args...); err != nil {
		return err
	}
	for _, name := range args {
		log.Infof("Template %q has been removed", name)
	}
	return nil
}
