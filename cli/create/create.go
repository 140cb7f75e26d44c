package create

import (
	"fmt"
	"os"

	"github.com/apex/log"

	"github.com/ctemplate/ct/cli/config"
	create_ctx "github.com/ctemplate/ct/cli/create/context"
	"github.com/ctemplate/ct/cli/create/internal/steps"
	"github.com/ctemplate/ct/cli/util"
	"github.com/ctemplate/ct/cli/version"
)

// FillCtx fills create context. destination and varsFile are resolved
// against the working directory.
func FillCtx(cliOpts *config.CliOpts, createCtx *create_ctx.CreateCtx, args []string,
	destination string, varsFile string,
) error {
	if len(args) >= 1 {
		createCtx.TemplateName = args[0]
	} else {
		return util.NewArgError("missing template name argument. " +
			"Try `ct init --help` for more information")
	}
	if len(args) > 1 {
		return util.NewArgError("only one template can be initialized")
	}

	createCtx.TemplatesDir = cliOpts.TemplateDirectory

	workingDir, err := os.Getwd()
	if err != nil {
		return err
	}
	createCtx.WorkDir = workingDir

	if createCtx.DestinationDir, err = util.JoinAbspath(workingDir, destination); err != nil {
		return err
	}
	if varsFile != "" {
		if createCtx.VarsFile, err = util.JoinAbspath(workingDir, varsFile); err != nil {
			return err
		}
	}

	return nil
}

// Run creates a project from a template. The first failed step stops the
// chain, files copied before the failure are kept.
func Run(createCtx *create_ctx.CreateCtx) error {
	if err := checkCtx(createCtx); err != nil {
		return util.InternalError("Create context check failed: %s", version.GetVersion, err)
	}

	stepsChain := []steps.Step{
		steps.LoadTemplate{},
		steps.SetPredefinedVariables{},
		steps.FillTemplateVarsFromInfo{},
		steps.LoadVarsFile{},
		steps.FillTemplateVarsFromCli{},
		steps.SetDelimiters{},
		steps.PrepareDestination{},
		steps.CompileIncludedPaths{},
		steps.CopyTemplate{},
	}

	templateCtx := steps.NewTemplateContext()
	for _, step := range stepsChain {
		if err := step.Run(createCtx, &templateCtx); err != nil {
			return err
		}
	}

	log.Infof("Template %q has been initialized in %s", createCtx.TemplateName,
		createCtx.DestinationDir)
	return nil
}

// checkCtx checks create context for validity.
func checkCtx(ctx *create_ctx.CreateCtx) error {
	if ctx.TemplateName == "" {
		return fmt.Errorf("template name is missing")
	}
	if ctx.TemplatesDir == "" {
		return fmt.Errorf("templates directory is not set")
	}

	return nil
}
