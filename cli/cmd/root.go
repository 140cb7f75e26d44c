package cmd

import (
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/spf13/cobra"

	"github.com/ctemplate/ct/cli/cmdcontext"
	"github.com/ctemplate/ct/cli/config"
	"github.com/ctemplate/ct/cli/configure"
	"github.com/ctemplate/ct/cli/setup"
)

var (
	cmdCtx  cmdcontext.CmdCtx
	cliOpts *config.CliOpts
	rootCmd *cobra.Command

	setupMode            bool
	setTemplateDirectory string
	setTemplateEditor    string
)

// NewCmdRoot creates a new root command.
func NewCmdRoot() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ct",
		Short: "Project templates CLI",
		Long:  "Utility for creating projects from reusable directory templates",
		Example: `$ ct add cpp -p ./my-cpp-project -d "C++ project"
  $ ct init cpp -p ./new-project --var author=me
  $ ct list
  $ ct --set-template-directory ~/templates`,
		Args: cobra.NoArgs,
		// Subcommand flags are unknown while global flags are parsed in InitRoot.
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if cmdCtx.Cli.Verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
		Run: RunModuleFunc(internalRootModule),
	}

	rootCmd.PersistentFlags().StringVarP(&cmdCtx.Cli.ConfigPath, "cfg", "c",
		"", "Path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&cmdCtx.Cli.Verbose, "verbose", "V",
		false, "Verbose output")

	rootCmd.Flags().BoolVar(&setupMode, "setup", false,
		"Set up configuration interactively")
	rootCmd.Flags().StringVar(&setTemplateDirectory, "set-template-directory", "",
		"Set the directory templates are stored in")
	rootCmd.Flags().StringVar(&setTemplateEditor, "set-template-editor", "",
		"Set the editor used by the edit command")

	rootCmd.AddCommand(
		NewVersionCmd(),
		NewInitCmd(),
		NewAddCmd(),
		NewRemoveCmd(),
		NewListCmd(),
		NewEditCmd(),
	)

	rootCmd.InitDefaultHelpCmd()

	log.SetHandler(cli.Default)

	return rootCmd
}

// internalRootModule handles configuration flags. Help is shown if no flag is set.
func internalRootModule(cmdCtx *cmdcontext.CmdCtx, args []string) error {
	configPath := cmdCtx.Cli.ConfigPath
	if configPath == "" {
		configPath = configure.DefaultConfigPath()
	}

	if setupMode {
		current, err := configure.Load(configPath)
		if err != nil {
			return err
		}
		settings, err := setup.Interactive(current, setup.TerminalPrompt)
		if err != nil {
			return err
		}
		return setup.Apply(configPath, settings)
	}

	var settings []setup.Setting
	if setTemplateDirectory != "" {
		templatesDir, err := filepath.Abs(setTemplateDirectory)
		if err != nil {
			return err
		}
		settings = append(settings, setup.Setting{
			Key:   configure.TemplateDirectoryKey,
			Value: templatesDir,
		})
	}
	if setTemplateEditor != "" {
		settings = append(settings, setup.Setting{
			Key:   configure.TemplateEditorKey,
			Value: setTemplateEditor,
		})
	}
	if len(settings) == 0 {
		return rootCmd.Help()
	}
	return setup.Apply(configPath, settings)
}

// Execute root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err.Error())
	}
}

// InitRoot initializes global flags and configures CLI.
func InitRoot() {
	rootCmd = NewCmdRoot()
	rootCmd.ParseFlags(os.Args)

	// Configure ct.
	if err := configure.Cli(&cmdCtx); err != nil {
		log.Fatalf("Failed to configure ct: %s", err)
	}

	var err error
	cliOpts, err = configure.GetCliOpts(cmdCtx.Cli.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to get ct configuration: %s", err)
	}
}
