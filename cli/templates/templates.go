// Package templates manages the templates directory: one sub-directory per template.
package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apex/log"

	"github.com/ctemplate/ct/cli/inclusion"
	"github.com/ctemplate/ct/cli/materialize"
	"github.com/ctemplate/ct/cli/util"
)

const defaultDirPermissions = os.FileMode(0755)

var (
	// ErrTemplateNotFound is returned if a template directory does not exist.
	ErrTemplateNotFound = errors.New("template does not exist")
	// ErrTemplateExists is returned if a template with the same name already exists.
	ErrTemplateExists = errors.New("template already exists")
	// ErrInvalidName is returned for empty names or names that are not a single path element.
	ErrInvalidName = errors.New("invalid template name")
)

// builtinAddExcludes are never copied into a new template.
var builtinAddExcludes = []string{".git"}

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(question string) (bool, error)

// Template is a template found in the templates directory.
type Template struct {
	// Name is the template directory base name.
	Name string
	// Path is the template directory path.
	Path string
	// Info is the template metadata.
	Info Info
	// HasInfo is set if the template has an info file.
	HasInfo bool
}

// Repository is a templates directory.
type Repository struct {
	// Root is the templates directory path.
	Root string
}

// NewRepository creates a repository for the templates directory root.
func NewRepository(root string) Repository {
	return Repository{Root: root}
}

// ValidateName checks that name can be used as a template directory name.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Path returns the directory of the template name.
func (r Repository) Path(name string) string {
	return filepath.Join(r.Root, name)
}

// Exists checks whether the template name exists.
func (r Repository) Exists(name string) bool {
	return ValidateName(name) == nil && util.IsDir(r.Path(name))
}

// Get returns the template name with its metadata.
func (r Repository) Get(name string) (Template, error) {
	if err := ValidateName(name); err != nil {
		return Template{}, err
	}
	if !r.Exists(name) {
		return Template{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	templatePath := r.Path(name)
	info, hasInfo, err := LoadInfo(templatePath)
	if err != nil {
		return Template{}, err
	}
	return Template{Name: name, Path: templatePath, Info: info, HasInfo: hasInfo}, nil
}

// List returns all templates sorted by name.
func (r Repository) List() ([]Template, error) {
	entries, err := os.ReadDir(r.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("templates directory doesn't exist: %s", r.Root)
		}
		return nil, fmt.Errorf("failed to read templates directory: %w", err)
	}

	templates := make([]Template, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		template, err := r.Get(entry.Name())
		if err != nil {
			log.Warnf("Skipping template %q: %s", entry.Name(), err)
			continue
		}
		templates = append(templates, template)
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})
	return templates, nil
}

// AddOpts describes a new template.
type AddOpts struct {
	// Name is the new template name.
	Name string
	// SourceDir is the directory copied into the template.
	SourceDir string
	// Description is stored in the template info if not empty.
	Description string
	// Exclude contains source-relative paths not copied into the template.
	Exclude []string
	// Confirm is asked before an existing template is replaced. Replacing is
	// declined if Confirm is nil.
	Confirm ConfirmFunc
}

// Add creates the template opts.Name from the opts.SourceDir content. If the
// template exists, it is replaced only after confirmation. Returns false if the
// replacement was declined.
func (r Repository) Add(opts AddOpts) (bool, error) {
	if err := ValidateName(opts.Name); err != nil {
		return false, err
	}
	if !util.IsDir(opts.SourceDir) {
		return false, fmt.Errorf("source directory %q does not exist", opts.SourceDir)
	}

	info, hasInfo, err := LoadInfo(opts.SourceDir)
	if err != nil {
		return false, err
	}

	templatePath := r.Path(opts.Name)
	if r.Exists(opts.Name) {
		if opts.Confirm == nil {
			return false, nil
		}
		confirmed, err := opts.Confirm(fmt.Sprintf("%q already exists. Would you like to overwrite?",
			opts.Name))
		if err != nil {
			return false, err
		}
		if !confirmed {
			log.Infof("Template %q is not changed", opts.Name)
			return false, nil
		}
	}

	userExcludes := inclusion.NewPathSet(opts.Exclude...)
	// Adding a directory that contains the templates directory must not copy
	// the new template into itself.
	if rel, inside := relativeInside(opts.SourceDir, templatePath); inside {
		userExcludes.Add(rel)
	}

	paths, err := inclusion.CompileDir(opts.SourceDir, inclusion.NewPathSet(builtinAddExcludes...),
		userExcludes)
	if err != nil {
		return false, err
	}

	if _, err := materialize.Materialize(materialize.Opts{
		TemplateRoot:    opts.SourceDir,
		DestinationRoot: templatePath,
		Paths:           paths,
		Option:          materialize.OverwriteAll,
	}); err != nil {
		return false, fmt.Errorf("failed to copy template: %w", err)
	}

	// A copied info file is kept as is unless the description changes.
	infoCopied := hasInfo && paths.Contains(ContainerDirName+"/"+InfoFileName)
	if infoCopied && opts.Description == "" {
		return true, nil
	}
	if !infoCopied {
		info = Info{}
	}
	if opts.Description != "" {
		info.Description = opts.Description
	}
	if err := SaveInfo(templatePath, info); err != nil {
		return false, err
	}

	return true, nil
}

// relativeInside returns the path of target relative to base if target is
// located inside base.
func relativeInside(base, target string) (string, bool) {
	inside, err := util.IsSubPath(base, target)
	if err != nil || !inside {
		return "", false
	}
	absBase, err := filepath.Abs(base)
	if err != nil {
		return "", false
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil || rel == "." {
		return "", false
	}
	return rel, true
}

// Remove removes templates. All names are checked first: if any of them does
// not exist, nothing is removed.
func (r Repository) Remove(names ...string) error {
	if len(names) == 0 {
		return util.NewArgError("no templates to remove")
	}
	for _, name := range names {
		if err := ValidateName(name); err != nil {
			return err
		}
		if !r.Exists(name) {
			return fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
		}
	}

	for _, name := range names {
		templatePath := r.Path(name)
		log.Debugf("Removing %s", templatePath)
		if err := os.RemoveAll(templatePath); err != nil {
			return fmt.Errorf("failed to remove template %q: %w", name, err)
		}
	}
	return nil
}

// CheckRename checks that the template oldName can be renamed to newName.
func (r Repository) CheckRename(oldName, newName string) error {
	if err := ValidateName(newName); err != nil {
		return err
	}
	if _, err := r.Get(oldName); err != nil {
		return err
	}
	if _, err := os.Lstat(r.Path(newName)); err == nil {
		return fmt.Errorf("%w: %q", ErrTemplateExists, newName)
	}
	return nil
}

// Rename renames the template oldName to newName.
func (r Repository) Rename(oldName, newName string) error {
	if err := r.CheckRename(oldName, newName); err != nil {
		return err
	}
	if err := os.Rename(r.Path(oldName), r.Path(newName)); err != nil {
		return fmt.Errorf("failed to rename template %q: %w", oldName, err)
	}
	return nil
}

// SetDescription updates the description of the template name.
func (r Repository) SetDescription(name, description string) error {
	template, err := r.Get(name)
	if err != nil {
		return err
	}
	template.Info.Description = description
	return SaveInfo(template.Path, template.Info)
}
