// Package materialize copies included template files to a destination directory.
package materialize

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/otiai10/copy"

	"github.com/ctemplate/ct/cli/inclusion"
	"github.com/ctemplate/ct/cli/keyvalue"
	"github.com/ctemplate/ct/cli/substitute"
	"github.com/ctemplate/ct/cli/util"
)

const (
	defaultDirPermissions = os.FileMode(0755)
	// binarySniffLen is the number of leading bytes inspected by IsBinary.
	binarySniffLen = 8000
)

// CopyOption is the conflict policy applied to existing destination files.
type CopyOption int

const (
	// None writes every file, replacing existing destination files.
	None CopyOption = iota
	// SkipExisting leaves existing destination files untouched.
	SkipExisting
	// OverwriteExisting replaces existing destination files and creates missing ones.
	OverwriteExisting
	// OverwriteAll removes the whole destination directory before copying.
	OverwriteAll
)

// Force is an alias of OverwriteAll.
const Force = OverwriteAll

// String returns the option name.
func (option CopyOption) String() string {
	switch option {
	case None:
		return "none"
	case SkipExisting:
		return "skip-existing"
	case OverwriteExisting:
		return "overwrite-existing"
	case OverwriteAll:
		return "overwrite-all"
	}
	return fmt.Sprintf("CopyOption(%d)", int(option))
}

// BinaryPredicate decides whether the file at path with the given content must be
// copied byte for byte instead of being substituted.
type BinaryPredicate func(path string, content []byte) bool

// IsBinary treats a file as binary if a NUL byte appears in its leading bytes.
func IsBinary(_ string, content []byte) bool {
	if len(content) > binarySniffLen {
		content = content[:binarySniffLen]
	}
	return bytes.IndexByte(content, 0) != -1
}

// Opts describes a single materialization run.
type Opts struct {
	// TemplateRoot is the directory files are copied from.
	TemplateRoot string
	// DestinationRoot is the directory files are copied to.
	DestinationRoot string
	// Paths is the set of template-relative files to copy.
	Paths inclusion.PathSet
	// Vars are the substitution values.
	Vars keyvalue.VariableMap
	// Prefix and Suffix delimit variable tokens. Substitution is disabled if
	// either is empty.
	Prefix string
	Suffix string
	// Option is the conflict policy.
	Option CopyOption
	// IsBinary is the binary file predicate. IsBinary function is used if nil.
	IsBinary BinaryPredicate
}

// Result lists the relative paths processed by a run.
type Result struct {
	Created     []string
	Overwritten []string
	Skipped     []string
}

// Materialize copies every file of opts.Paths from the template root to the
// destination root. Text files are passed through the substitution engine. The
// first error aborts the run, already written files are kept.
func Materialize(opts Opts) (Result, error) {
	var result Result

	if opts.IsBinary == nil {
		opts.IsBinary = IsBinary
	}

	paths := opts.Paths.Sorted()
	// Template files are never written: the check runs before the first change.
	for _, relPath := range paths {
		src := filepath.Join(opts.TemplateRoot, filepath.FromSlash(relPath))
		dst := filepath.Join(opts.DestinationRoot, filepath.FromSlash(relPath))
		same, err := sameFile(src, dst)
		if err != nil {
			return result, err
		}
		if same {
			return result, fmt.Errorf("destination %s is the template file %s", dst, src)
		}
	}

	if opts.Option == OverwriteAll {
		if err := removeDestination(opts.TemplateRoot, opts.DestinationRoot); err != nil {
			return result, err
		}
	}

	if err := util.CreateDirectory(opts.DestinationRoot, defaultDirPermissions); err != nil {
		return result, fmt.Errorf("failed to create %s: %w", opts.DestinationRoot, err)
	}

	for _, relPath := range paths {
		src := filepath.Join(opts.TemplateRoot, filepath.FromSlash(relPath))
		dst := filepath.Join(opts.DestinationRoot, filepath.FromSlash(relPath))

		exists, err := fileExists(dst)
		if err != nil {
			return result, err
		}
		if exists && opts.Option == SkipExisting {
			log.Debugf("Skipping existing file %s", dst)
			result.Skipped = append(result.Skipped, relPath)
			continue
		}

		if err := util.CreateDirectory(filepath.Dir(dst), defaultDirPermissions); err != nil {
			return result, fmt.Errorf("failed to create directory for %s: %w", dst, err)
		}
		if err := copyFile(src, dst, &opts); err != nil {
			return result, err
		}

		if exists {
			result.Overwritten = append(result.Overwritten, relPath)
		} else {
			result.Created = append(result.Created, relPath)
		}
	}

	return result, nil
}

// copyFile writes src to dst, substituting variables in text files.
func copyFile(src, dst string, opts *Opts) error {
	info, err := os.Lstat(src)
	if err != nil {
		return fmt.Errorf("failed to get file info %s: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		log.Debugf("Copying %s as is", src)
		return copyVerbatim(src, dst)
	}

	content, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	if opts.IsBinary(src, content) || !substitute.Enabled(opts.Prefix, opts.Suffix) {
		log.Debugf("Copying %s without substitution", src)
		return copyVerbatim(src, dst)
	}

	if err := removeIfNotDir(dst); err != nil {
		return err
	}

	text := string(content)
	for _, key := range substitute.Keys(text, opts.Prefix, opts.Suffix) {
		if _, found := opts.Vars[key]; !found {
			log.Debugf("Variable %q in %s has no value", key, src)
		}
	}
	rendered := substitute.Substitute(text, opts.Vars, opts.Prefix, opts.Suffix)

	if err := os.WriteFile(dst, []byte(rendered), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	// Created file mode is affected by umask.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to change permissions of %s: %w", dst, err)
	}
	return nil
}

// copyVerbatim copies src to dst byte for byte, preserving permissions.
func copyVerbatim(src, dst string) error {
	if err := removeIfNotDir(dst); err != nil {
		return err
	}
	if err := copy.Copy(src, dst, copy.Options{
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Shallow
		},
		PermissionControl: copy.PerservePermission,
	}); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	return nil
}

// removeIfNotDir removes an existing non-directory entry at path, so it can be
// replaced by a symlink or a file with different permissions.
func removeIfNotDir(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("cannot replace directory %s with a file", path)
	}
	return os.Remove(path)
}

// sameFile reports whether src and dst name the same existing file. A missing
// src is left to the copy to report.
func sameFile(src, dst string) (bool, error) {
	srcInfo, err := os.Lstat(src)
	if err != nil {
		return false, nil
	}
	dstInfo, err := os.Lstat(dst)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("failed to get file info %s: %w", dst, err)
	}
	return os.SameFile(srcInfo, dstInfo), nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to get file info %s: %w", path, err)
}

// removeDestination deletes the destination root before an OverwriteAll run.
func removeDestination(templateRoot, destinationRoot string) error {
	if templateRoot != "" {
		inside, err := util.IsSubPath(destinationRoot, templateRoot)
		if err != nil {
			return err
		}
		if inside {
			return fmt.Errorf("refusing to remove %s: it contains the template source %s",
				destinationRoot, templateRoot)
		}
	}
	log.Debugf("Removing %s", destinationRoot)
	if err := os.RemoveAll(destinationRoot); err != nil {
		return fmt.Errorf("failed to remove %s: %w", destinationRoot, err)
	}
	return nil
}

// ClearDestination removes all entries of the root directory, keeping the
// directory itself. A missing root is not an error.
func ClearDestination(root string) error {
	entries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to read %s: %w", root, err)
	}

	for _, entry := range entries {
		entryPath := filepath.Join(root, entry.Name())
		log.Debugf("Removing %s", entryPath)
		if err := os.RemoveAll(entryPath); err != nil {
			return fmt.Errorf("failed to remove %s: %w", entryPath, err)
		}
	}
	return nil
}
