package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ctemplate/ct/cli/cmdcontext"
)

// NewListCmd creates a new list command.
func NewListCmd() *cobra.Command {
	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Args:  cobra.NoArgs,
		Run:   RunModuleFunc(internalListModule),
	}

	return listCmd
}

// internalListModule is a default list module.
func internalListModule(cmdCtx *cmdcontext.CmdCtx, args []string) error {
	return listTemplates()
}
