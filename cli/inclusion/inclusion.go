// Package inclusion compiles the set of template files eligible for copying.
package inclusion

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apex/log"

	"github.com/ctemplate/ct/cli/util"
)

// PathSet is a set of root-relative file paths. Paths always use '/' as a separator.
type PathSet map[string]struct{}

// NewPathSet creates a set from paths, normalizing each of them.
func NewPathSet(paths ...string) PathSet {
	set := make(PathSet, len(paths))
	for _, p := range paths {
		set.Add(p)
	}
	return set
}

// Add adds normalized p to the set. Empty paths and the root itself are ignored,
// as well as paths outside the root.
func (set PathSet) Add(p string) {
	normalized := Normalize(p)
	if normalized == "." {
		return
	}
	if filepath.IsAbs(p) || EscapesRoot(normalized) {
		log.Warnf("Ignoring %q: the path is not relative to the root", p)
		return
	}
	set[normalized] = struct{}{}
}

// Contains checks whether normalized p is in the set.
func (set PathSet) Contains(p string) bool {
	_, found := set[Normalize(p)]
	return found
}

// Union returns a new set with the paths of both sets.
func (set PathSet) Union(other PathSet) PathSet {
	result := make(PathSet, len(set)+len(other))
	for p := range set {
		result[p] = struct{}{}
	}
	for p := range other {
		result[p] = struct{}{}
	}
	return result
}

// Sorted returns set paths in lexical order.
func (set PathSet) Sorted() []string {
	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Normalize converts a relative path to the slash separated clean form.
// Leading ".." elements are kept, see EscapesRoot.
func Normalize(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// EscapesRoot reports whether the normalized path points outside the root.
func EscapesRoot(normalized string) bool {
	return normalized == ".." || strings.HasPrefix(normalized, "../") ||
		strings.HasPrefix(normalized, "/")
}

// Compile walks fsys and returns the paths of all files that are not excluded.
// A directory listed in builtinExcludes or userExcludes is pruned together with its
// content. Both exclude sets have the same precedence, no other exclusions apply.
func Compile(fsys fs.FS, builtinExcludes, userExcludes PathSet) (PathSet, error) {
	excludes := builtinExcludes.Union(userExcludes)
	included := PathSet{}

	pending := []string{"."}
	for len(pending) > 0 {
		dir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		entries, err := fs.ReadDir(fsys, dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %q: %w", dir, err)
		}

		for _, entry := range entries {
			relPath := path.Join(dir, entry.Name())
			if excludes.Contains(relPath) {
				log.Debugf("Excluding %s", relPath)
				continue
			}
			if entry.IsDir() {
				pending = append(pending, relPath)
				continue
			}
			included[relPath] = struct{}{}
		}
	}

	return included, nil
}

// CompileDir compiles included paths of the directory tree rooted at root.
func CompileDir(root string, builtinExcludes, userExcludes PathSet) (PathSet, error) {
	if !util.IsDir(root) {
		return nil, fmt.Errorf("%q is not a directory", root)
	}
	return Compile(os.DirFS(root), builtinExcludes, userExcludes)
}
