package steps

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ctemplate/ct/cli/templates"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		filePath := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

// newTemplatesDir creates a templates directory with the "cpp" template.
func newTemplatesDir(t *testing.T) string {
	t.Helper()
	templatesDir := t.TempDir()
	templatePath := filepath.Join(templatesDir, "cpp")
	writeFiles(t, templatePath, map[string]string{
		"CMakeLists.txt": "project({{project_name}} CXX)\nset(CMAKE_CXX_STANDARD {{standard}})\n",
		"src/main.cpp":   "// {{author}}\nint main() {}\n",
		"build/cache":    "cache",
		".gitignore":     "build/\n",
	})
	require.NoError(t, templates.SaveInfo(templatePath, templates.Info{
		Description: "C++ project",
		Prefix:      "{{",
		Suffix:      "}}",
		Vars:        map[string]string{"standard": "17", "author": "unknown"},
		Exclude:     []string{"build"},
	}))
	return templatesDir
}
