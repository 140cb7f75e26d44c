package cmd

import (
	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/ctemplate/ct/cli/cmdcontext"
	"github.com/ctemplate/ct/cli/templates"
	"github.com/ctemplate/ct/cli/util"
)

var (
	editDescription string
	editNewName     string
)

// NewEditCmd creates a new edit command.
func NewEditCmd() *cobra.Command {
	var editCmd = &cobra.Command{
		Use:               "edit <TEMPLATE_NAME> [flags]",
		Short:             "Edit a template",
		Long:              "Edit a template. Without flags the template is opened in the template editor.",
		Run:               RunModuleFunc(internalEditModule),
		ValidArgsFunction: templateNamesCompletion,
		Example: `
# Open the cpp template in the configured editor.

    $ ct edit cpp

# Change the description and the name of the cpp template.

    $ ct edit cpp -d "Modern C++ project" -r cpp20`,
	}

	editCmd.Flags().StringVarP(&editDescription, "desc", "d", "", "New template description")
	editCmd.Flags().StringVarP(&editNewName, "rename", "r", "", "New template name")

	return editCmd
}

// internalEditModule is a default edit module.
func internalEditModule(cmdCtx *cmdcontext.CmdCtx, args []string) error {
	if len(args) != 1 {
		return util.NewArgError("exactly one template name is expected")
	}
	name := args[0]
	repository := templates.NewRepository(cliOpts.TemplateDirectory)

	if editDescription == "" && editNewName == "" {
		template, err := repository.Get(name)
		if err != nil {
			return err
		}
		return util.OpenInEditor(cliOpts.TemplateEditor, template.Path)
	}

	return editTemplate(repository, name, editDescription, editNewName)
}

// editTemplate sets the description and the name of the template. Both changes
// are checked before any of them is applied.
func editTemplate(repository templates.Repository, name, description, newName string) error {
	if _, err := repository.Get(name); err != nil {
		return err
	}
	if newName != "" {
		if err := repository.CheckRename(name, newName); err != nil {
			return err
		}
	}

	if description != "" {
		if err := repository.SetDescription(name, description); err != nil {
			return err
		}
		log.Infof("Description of %q has been updated", name)
	}
	if newName != "" {
		if err := repository.Rename(name, newName); err != nil {
			return err
		}
		log.Infof("Template %q has been renamed to %q", name, newName)
	}
	return nil
}
