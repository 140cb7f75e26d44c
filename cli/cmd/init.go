package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ctemplate/ct/cli/cmdcontext"
	"github.com/ctemplate/ct/cli/create"
	create_ctx "github.com/ctemplate/ct/cli/create/context"
	"github.com/ctemplate/ct/cli/list"
	"github.com/ctemplate/ct/cli/materialize"
	"github.com/ctemplate/ct/cli/templates"
)

var (
	initDstPath           string
	initSkipExisting      bool
	initOverwriteExisting bool
	initForce             bool
	initListTemplates     bool
	initVarsFromCli       []string
	initVarsFile          string
	initPrefix            string
	initSuffix            string
	initExcludes          []string
)

// NewInitCmd creates a project from a template.
func NewInitCmd() *cobra.Command {
	var initCmd = &cobra.Command{
		Use:               "init <TEMPLATE_NAME> [flags]",
		Short:             "Initialize a project from a template",
		Run:               RunModuleFunc(internalInitModule),
		ValidArgsFunction: templateNamesCompletion,
		Long: `Initialize a project from a template.

Template files are copied to the destination directory. Variable tokens found in
text files are replaced with variable values. Variables are taken from (in order
of increasing precedence): predefined variables template_name and project_name,
the template info file, the variables file, the command line.`,
		Example: `
# Initialize the cpp template in the current directory.

    $ ct init cpp

# Initialize the cpp template in ./hello keeping existing files.

    $ ct init cpp -p ./hello -s

# Clear ./hello before copying the template, set a variable.

    $ ct init cpp -p ./hello -f --var author="John Doe"`,
	}

	initCmd.Flags().StringVarP(&initDstPath, "path", "p", ".",
		"Path to the directory where a project will be created")
	initCmd.Flags().BoolVarP(&initSkipExisting, "skip-existing", "s", false,
		"Keep existing files")
	initCmd.Flags().BoolVarP(&initOverwriteExisting, "overwrite-existing", "o", false,
		"Overwrite existing files")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"Remove destination directory content before copying")
	initCmd.MarkFlagsMutuallyExclusive("skip-existing", "overwrite-existing", "force")
	initCmd.Flags().BoolVarP(&initListTemplates, "list", "l", false,
		"List available templates")
	initCmd.Flags().StringArrayVar(&initVarsFromCli, "var", []string{},
		"Variable definition. Usage: --var var_name=value")
	initCmd.Flags().StringVar(&initVarsFile, "vars-file", "", "Variables definition file path")
	initCmd.Flags().StringVar(&initPrefix, "prefix", "", "Variable token prefix")
	initCmd.Flags().StringVar(&initSuffix, "suffix", "", "Variable token suffix")
	initCmd.Flags().StringArrayVar(&initExcludes, "exclude", []string{},
		"Template-relative path not to copy")

	return initCmd
}

// copyOption returns the copy option selected with flags.
func copyOption() materialize.CopyOption {
	switch {
	case initSkipExisting:
		return materialize.SkipExisting
	case initOverwriteExisting:
		return materialize.OverwriteExisting
	}
	return materialize.None
}

// listTemplates prints templates of the configured templates directory.
func listTemplates() error {
	templatesList, err := templates.NewRepository(cliOpts.TemplateDirectory).List()
	if err != nil {
		return err
	}
	list.ListTemplates(os.Stdout, cliOpts.TemplateDirectory, templatesList)
	return nil
}

// internalInitModule is a default init module.
func internalInitModule(cmdCtx *cmdcontext.CmdCtx, args []string) error {
	if initListTemplates {
		return listTemplates()
	}

	createCtx := create_ctx.CreateCtx{
		VarsFromCli: initVarsFromCli,
		Prefix:      initPrefix,
		Suffix:      initSuffix,
		Excludes:    initExcludes,
		CopyOption:  copyOption(),
		ForceMode:   initForce,
	}

	if err := create.FillCtx(cliOpts, &createCtx, args, initDstPath, initVarsFile); err != nil {
		return err
	}
	return create.Run(&createCtx)
}
