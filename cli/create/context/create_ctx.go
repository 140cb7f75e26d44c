package create_ctx

import "github.com/ctemplate/ct/cli/materialize"

// CreateCtx contains information for creating projects from templates.
type CreateCtx struct {
	// TemplateName is a template to use for project creation.
	TemplateName string
	// TemplatesDir is a directory to search template in.
	TemplatesDir string
	// WorkDir is ct launch working directory.
	WorkDir string
	// DestinationDir is the absolute path where a project will be created.
	DestinationDir string
	// VarsFromCli template variables definitions provided in command line.
	VarsFromCli []string
	// VarsFile is a file with variables definitions.
	VarsFile string
	// Prefix and Suffix override the template variable delimiters if not empty.
	Prefix string
	Suffix string
	// Excludes contains template-relative paths not copied to the project.
	Excludes []string
	// CopyOption is the policy for files existing in the destination directory.
	CopyOption materialize.CopyOption
	// ForceMode - if flag is set, destination directory content is removed
	// before the template is copied.
	ForceMode bool
}
