package cmd

import (
	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/ctemplate/ct/cli/cmdcontext"
	"github.com/ctemplate/ct/cli/templates"
	"github.com/ctemplate/ct/cli/util"
)

var (
	addSourcePath  string
	addDescription string
	addExcludes    []string
	addAssumeYes   bool
)

// NewAddCmd creates a new template from a directory.
func NewAddCmd() *cobra.Command {
	var addCmd = &cobra.Command{
		Use:   "add <TEMPLATE_NAME> [flags]",
		Short: "Add a template from a directory",
		Run:   RunModuleFunc(internalAddModule),
		Example: `
# Add the current directory as the cpp template.

    $ ct add cpp -d "C++ project"

# Add ./project as the cpp template replacing the existing one without confirmation.

    $ ct add cpp -p ./project -y`,
	}

	addCmd.Flags().StringVarP(&addSourcePath, "path", "p", ".",
		"Path to the directory to add as a template")
	addCmd.Flags().StringVarP(&addDescription, "desc", "d", "", "Template description")
	addCmd.Flags().StringArrayVar(&addExcludes, "exclude", []string{},
		"Path relative to the source directory not to add")
	addCmd.Flags().BoolVarP(&addAssumeYes, "yes", "y", false,
		"Replace existing template without confirmation")

	return addCmd
}

// internalAddModule is a default add module.
func internalAddModule(cmdCtx *cmdcontext.CmdCtx, args []string) error {
	if len(args) != 1 {
		return util.NewArgError("exactly one template name is expected")
	}

	repository := templates.NewRepository(cliOpts.TemplateDirectory)
	added, err := repository.Add(templates.AddOpts{
		Name:        args[0],
		SourceDir:   addSourcePath,
		Description: addDescription,
		Exclude:     addExcludes,
		Confirm:     confirm(addAssumeYes),
	})
	if err != nil {
		return err
	}
	if added {
		log.Infof("Template %q has been added to %s", args[0], repository.Root)
	}
	return nil
}
