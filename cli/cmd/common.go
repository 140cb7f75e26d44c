package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/ctemplate/ct/cli/cmdcontext"
	"github.com/ctemplate/ct/cli/templates"
	"github.com/ctemplate/ct/cli/util"
)

// internalModule is a command implementation.
type internalModule func(cmdCtx *cmdcontext.CmdCtx, args []string) error

// RunModuleFunc returns a cobra run function for the module.
func RunModuleFunc(module internalModule) func(cmd *cobra.Command, args []string) {
	return func(cmd *cobra.Command, args []string) {
		cmdCtx.CommandName = cmd.Name()
		err := module(&cmdCtx, args)
		util.HandleCmdErr(cmd, err)
	}
}

// confirm asks the user a yes/no question. The question is answered positively
// if assumeYes is set. Without a terminal the question is declined.
func confirm(assumeYes bool) templates.ConfirmFunc {
	return func(question string) (bool, error) {
		if assumeYes {
			return true, nil
		}
		if !util.IsStdinTerminal() {
			log.Warnf("%s: cannot ask for confirmation, stdin is not a terminal. "+
				"Use --yes to confirm", question)
			return false, nil
		}
		return util.AskConfirm(os.Stdin, question)
	}
}

// templateNamesCompletion returns template names for shell completion.
func templateNamesCompletion(_ *cobra.Command, _ []string,
	_ string,
) ([]string, cobra.ShellCompDirective) {
	if cliOpts == nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	templatesList, err := templates.NewRepository(cliOpts.TemplateDirectory).List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := make([]string, 0, len(templatesList))
	for _, template := range templatesList {
		names = append(names, template.Name+"\t"+template.Info.Description)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
