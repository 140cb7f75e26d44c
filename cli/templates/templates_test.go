package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		filePath := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}
}

func newSource(t *testing.T) string {
	t.Helper()
	source := t.TempDir()
	writeFiles(t, source, map[string]string{
		"CMakeLists.txt":  "project({{project_name}})\n",
		"src/main.cpp":    "int main() {}\n",
		".git/HEAD":       "ref: refs/heads/master\n",
		"build/cache.txt": "cache",
	})
	return source
}

func confirmWith(answer bool, asked *int) ConfirmFunc {
	return func(string) (bool, error) {
		*asked++
		return answer, nil
	}
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"cpp", "my-template", "v1.0"} {
		assert.NoError(t, ValidateName(name), name)
	}
	for _, name := range []string{"", "  ", ".", "..", "a/b", `a\b`} {
		assert.ErrorIs(t, ValidateName(name), ErrInvalidName, name)
	}
}

func TestAddCreatesTemplate(t *testing.T) {
	repo := NewRepository(t.TempDir())
	source := newSource(t)

	added, err := repo.Add(AddOpts{
		Name:        "cpp",
		SourceDir:   source,
		Description: "C++ project",
		Exclude:     []string{"build"},
	})
	require.NoError(t, err)
	require.True(t, added)

	templatePath := repo.Path("cpp")
	assert.FileExists(t, filepath.Join(templatePath, "CMakeLists.txt"))
	assert.FileExists(t, filepath.Join(templatePath, "src", "main.cpp"))
	assert.NoDirExists(t, filepath.Join(templatePath, ".git"))
	assert.NoDirExists(t, filepath.Join(templatePath, "build"))
	assert.DirExists(t, filepath.Join(templatePath, ContainerDirName))

	// Tokens are stored as is.
	content, err := os.ReadFile(filepath.Join(templatePath, "CMakeLists.txt"))
	require.NoError(t, err)
	assert.Equal(t, "project({{project_name}})\n", string(content))

	template, err := repo.Get("cpp")
	require.NoError(t, err)
	assert.True(t, template.HasInfo)
	assert.Equal(t, "C++ project", template.Info.Description)
}

func TestAddEmptyNameCreatesNothing(t *testing.T) {
	root := t.TempDir()
	repo := NewRepository(root)

	added, err := repo.Add(AddOpts{Name: "", SourceDir: newSource(t)})
	require.ErrorIs(t, err, ErrInvalidName)
	assert.False(t, added)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAddMissingSource(t *testing.T) {
	repo := NewRepository(t.TempDir())
	_, err := repo.Add(AddOpts{Name: "cpp", SourceDir: filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.False(t, repo.Exists("cpp"))
}

func TestAddKeepsExistingContainer(t *testing.T) {
	repo := NewRepository(t.TempDir())
	source := newSource(t)
	writeFiles(t, source, map[string]string{
		ContainerDirName + "/" + InfoFileName: "description: from source\nprefix: \"{{\"\nsuffix: \"}}\"\n",
		ContainerDirName + "/notes.txt":       "keep me",
	})

	added, err := repo.Add(AddOpts{Name: "cpp", SourceDir: source})
	require.NoError(t, err)
	require.True(t, added)

	templatePath := repo.Path("cpp")
	assert.FileExists(t, filepath.Join(templatePath, ContainerDirName, "notes.txt"))
	info, found, err := LoadInfo(templatePath)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, Info{Description: "from source", Prefix: "{{", Suffix: "}}"}, info)
}

func TestAddExistingTemplate(t *testing.T) {
	tests := []struct {
		name          string
		confirm       bool
		expectedAdded bool
		expectedFile  string
	}{
		{"declined", false, false, "old"},
		{"confirmed", true, true, "int main() {}\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := NewRepository(t.TempDir())
			writeFiles(t, repo.Path("cpp"), map[string]string{
				"src/main.cpp": "old",
				"stale.txt":    "stale",
			})

			asked := 0
			added, err := repo.Add(AddOpts{
				Name:      "cpp",
				SourceDir: newSource(t),
				Confirm:   confirmWith(tc.confirm, &asked),
			})
			require.NoError(t, err)
			assert.Equal(t, 1, asked)
			assert.Equal(t, tc.expectedAdded, added)

			content, err := os.ReadFile(filepath.Join(repo.Path("cpp"), "src", "main.cpp"))
			require.NoError(t, err)
			assert.Equal(t, tc.expectedFile, string(content))
			if tc.confirm {
				assert.NoFileExists(t, filepath.Join(repo.Path("cpp"), "stale.txt"))
			}
		})
	}
}

func TestAddExistingTemplateWithoutConfirm(t *testing.T) {
	repo := NewRepository(t.TempDir())
	writeFiles(t, repo.Path("cpp"), map[string]string{"a.txt": "a"})

	added, err := repo.Add(AddOpts{Name: "cpp", SourceDir: newSource(t)})
	require.NoError(t, err)
	assert.False(t, added)
	assert.NoFileExists(t, filepath.Join(repo.Path("cpp"), "CMakeLists.txt"))
}

func TestAddSourceContainsTemplatesDir(t *testing.T) {
	source := newSource(t)
	repo := NewRepository(filepath.Join(source, "templates"))
	require.NoError(t, os.MkdirAll(repo.Root, 0755))

	added, err := repo.Add(AddOpts{Name: "self", SourceDir: source})
	require.NoError(t, err)
	require.True(t, added)

	assert.FileExists(t, filepath.Join(repo.Path("self"), "CMakeLists.txt"))
	assert.NoDirExists(t, filepath.Join(repo.Path("self"), "templates"))
}

func TestList(t *testing.T) {
	repo := NewRepository(t.TempDir())
	writeFiles(t, repo.Root, map[string]string{
		"zeta/a.txt":  "a",
		"alpha/b.txt": "b",
		"file.txt":    "not a template",
	})
	require.NoError(t, SaveInfo(repo.Path("alpha"), Info{Description: "first"}))

	templates, err := repo.List()
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "alpha", templates[0].Name)
	assert.Equal(t, "first", templates[0].Info.Description)
	assert.True(t, templates[0].HasInfo)
	assert.Equal(t, "zeta", templates[1].Name)
	assert.False(t, templates[1].HasInfo)
}

func TestListMissingRoot(t *testing.T) {
	repo := NewRepository(filepath.Join(t.TempDir(), "missing"))
	_, err := repo.List()
	require.Error(t, err)
}

func TestRemove(t *testing.T) {
	repo := NewRepository(t.TempDir())
	writeFiles(t, repo.Root, map[string]string{
		"a/file": "a",
		"b/file": "b",
		"c/file": "c",
	})

	require.NoError(t, repo.Remove("a", "b"))
	assert.False(t, repo.Exists("a"))
	assert.False(t, repo.Exists("b"))
	assert.True(t, repo.Exists("c"))
}

func TestRemoveMissingRemovesNothing(t *testing.T) {
	repo := NewRepository(t.TempDir())
	writeFiles(t, repo.Root, map[string]string{"a/file": "a"})

	err := repo.Remove("a", "missing")
	require.ErrorIs(t, err, ErrTemplateNotFound)
	assert.True(t, repo.Exists("a"))

	require.Error(t, repo.Remove())
}

func TestRename(t *testing.T) {
	repo := NewRepository(t.TempDir())
	writeFiles(t, repo.Root, map[string]string{
		"old/file":   "content",
		"taken/file": "taken",
	})

	require.ErrorIs(t, repo.Rename("old", "taken"), ErrTemplateExists)
	require.ErrorIs(t, repo.Rename("missing", "new"), ErrTemplateNotFound)
	require.ErrorIs(t, repo.Rename("old", "a/b"), ErrInvalidName)

	require.NoError(t, repo.Rename("old", "new"))
	assert.False(t, repo.Exists("old"))
	assert.FileExists(t, filepath.Join(repo.Path("new"), "file"))
}

func TestSetDescription(t *testing.T) {
	repo := NewRepository(t.TempDir())
	writeFiles(t, repo.Root, map[string]string{"cpp/file": "content"})
	require.NoError(t, SaveInfo(repo.Path("cpp"), Info{Prefix: "{{", Suffix: "}}"}))

	require.NoError(t, repo.SetDescription("cpp", "updated"))
	template, err := repo.Get("cpp")
	require.NoError(t, err)
	assert.Equal(t, Info{Description: "updated", Prefix: "{{", Suffix: "}}"}, template.Info)

	require.ErrorIs(t, repo.SetDescription("missing", "x"), ErrTemplateNotFound)
}

func TestAddInvalidSourceInfo(t *testing.T) {
	repo := NewRepository(t.TempDir())
	source := newSource(t)
	writeFiles(t, source, map[string]string{
		ContainerDirName + "/" + InfoFileName: "prefix: \"<%\"\nunknown_key: 1\n",
	})

	added, err := repo.Add(AddOpts{Name: "cpp", SourceDir: source, Description: "desc"})
	require.Error(t, err)
	assert.False(t, added)
	assert.False(t, repo.Exists("cpp"))
}

func TestAddKeepsCopiedInfoFile(t *testing.T) {
	repo := NewRepository(t.TempDir())
	source := newSource(t)
	infoContent := "# delimiters for C++ sources\nprefix: \"<%\"\nsuffix: \"%>\"\nvars:\n  std: \"20\"\n"
	writeFiles(t, source, map[string]string{ContainerDirName + "/" + InfoFileName: infoContent})

	added, err := repo.Add(AddOpts{Name: "cpp", SourceDir: source})
	require.NoError(t, err)
	require.True(t, added)

	content, err := os.ReadFile(InfoPath(repo.Path("cpp")))
	require.NoError(t, err)
	assert.Equal(t, infoContent, string(content))
}

func TestAddExcludedInfoFile(t *testing.T) {
	repo := NewRepository(t.TempDir())
	source := newSource(t)
	writeFiles(t, source, map[string]string{
		ContainerDirName + "/" + InfoFileName: "prefix: \"<%\"\nsuffix: \"%>\"\n",
	})

	added, err := repo.Add(AddOpts{
		Name:      "cpp",
		SourceDir: source,
		Exclude:   []string{ContainerDirName + "/" + InfoFileName},
	})
	require.NoError(t, err)
	require.True(t, added)

	template, err := repo.Get("cpp")
	require.NoError(t, err)
	assert.True(t, template.HasInfo)
	assert.Equal(t, Info{}, template.Info)
}

func TestCheckRename(t *testing.T) {
	repo := NewRepository(t.TempDir())
	writeFiles(t, repo.Root, map[string]string{"old/file": "a", "taken/file": "b"})

	require.NoError(t, repo.CheckRename("old", "new"))
	require.ErrorIs(t, repo.CheckRename("old", "taken"), ErrTemplateExists)
	require.ErrorIs(t, repo.CheckRename("old", ".."), ErrInvalidName)
	require.ErrorIs(t, repo.CheckRename("missing", "new"), ErrTemplateNotFound)
	assert.True(t, repo.Exists("old"))
	assert.False(t, repo.Exists("new"))
}
