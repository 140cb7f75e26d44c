package configure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctemplate/ct/cli/cmdcontext"
	"github.com/ctemplate/ct/cli/config"
)

// isolateEnv points XDG directories to temporary locations and clears ct environment.
func isolateEnv(t *testing.T) (string, string) {
	t.Helper()
	dataHome := t.TempDir()
	configHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv(configEnvName, "")
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dataHome, configHome
}

// evalTempDir returns a temporary directory without symlinks in its path.
func evalTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestAdjustPathWithConfigLocation(t *testing.T) {
	tests := []struct {
		filePath       string
		defaultDirName string
		expected       string
	}{
		{"", "templates", "/config/dir/templates"},
		{"", "", ""},
		{"/templates_dir", "templates", "/templates_dir"},
		{"./templates_dir", "templates", "/config/dir/templates_dir"},
		{"../templates_dir", "templates", "/config/templates_dir"},
	}

	for _, tc := range tests {
		adjusted, err := adjustPathWithConfigLocation(tc.filePath, "/config/dir", tc.defaultDirName)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, adjusted)
	}
}

func TestParse(t *testing.T) {
	cliOpts, err := Parse([]byte("ct:\n  template_directory: ./templates\n" +
		"  template_editor: code --wait\n"))
	require.NoError(t, err)
	assert.Equal(t, &config.CliOpts{
		TemplateDirectory: "./templates",
		TemplateEditor:    "code --wait",
	}, cliOpts)
}

func TestParseDefaults(t *testing.T) {
	t.Setenv("EDITOR", "vim")

	for _, data := range []string{"", "ct:\n", "other: value\n"} {
		cliOpts, err := Parse([]byte(data))
		require.NoError(t, err, data)
		assert.Equal(t, &config.CliOpts{TemplateEditor: "vim"}, cliOpts, data)
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("ct: [\n"))
	require.Error(t, err)

	_, err = Parse([]byte("ct:\n  template_directory: [a, b]\n"))
	require.Error(t, err)
}

func TestMarshalParse(t *testing.T) {
	cliOpts := &config.CliOpts{TemplateDirectory: "/templates", TemplateEditor: "nano"}
	data, err := Marshal(cliOpts)
	require.NoError(t, err)
	assert.Equal(t, "ct:\n    template_directory: /templates\n    template_editor: nano\n",
		string(data))

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cliOpts, parsed)
}

func TestSaveLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", ConfigName)
	cliOpts := &config.CliOpts{TemplateDirectory: "templates", TemplateEditor: "nano"}
	require.NoError(t, Save(configPath, cliOpts))

	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, cliOpts, loaded)
}

func TestLoadMissing(t *testing.T) {
	t.Setenv("EDITOR", "")
	loaded, err := Load(filepath.Join(t.TempDir(), ConfigName))
	require.NoError(t, err)
	assert.Equal(t, &config.CliOpts{}, loaded)
}

func TestSet(t *testing.T) {
	original := &config.CliOpts{TemplateDirectory: "old", TemplateEditor: "vim"}

	updated, err := Set(original, TemplateDirectoryKey, "new")
	require.NoError(t, err)
	assert.Equal(t, "new", updated.TemplateDirectory)
	assert.Equal(t, "vim", updated.TemplateEditor)
	// The original value is not changed.
	assert.Equal(t, "old", original.TemplateDirectory)

	updated, err = Set(updated, TemplateEditorKey, "nano")
	require.NoError(t, err)
	assert.Equal(t, &config.CliOpts{TemplateDirectory: "new", TemplateEditor: "nano"}, updated)

	_, err = Set(original, "unknown", "value")
	require.EqualError(t, err, `unknown configuration key "unknown"`)

	updated, err = Set(nil, TemplateEditorKey, "nano")
	require.NoError(t, err)
	assert.Equal(t, &config.CliOpts{TemplateEditor: "nano"}, updated)
}

func TestGetCliOptsRelativeToConfig(t *testing.T) {
	isolateEnv(t)
	configDir := t.TempDir()
	configPath := filepath.Join(configDir, ConfigName)
	require.NoError(t, os.WriteFile(configPath,
		[]byte("ct:\n  template_directory: my_templates\n"), 0644))

	cliOpts, err := GetCliOpts(configPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configDir, "my_templates"), cliOpts.TemplateDirectory)
}

func TestGetCliOptsDefaultTemplatesDir(t *testing.T) {
	dataHome, _ := isolateEnv(t)

	cliOpts, err := GetCliOpts("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataHome, "ct", TemplatesDirName), cliOpts.TemplateDirectory)

	configDir := t.TempDir()
	configPath := filepath.Join(configDir, ConfigName)
	require.NoError(t, os.WriteFile(configPath, []byte("ct:\n"), 0644))
	cliOpts, err = GetCliOpts(configPath)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(configDir, TemplatesDirName), cliOpts.TemplateDirectory)
}

func TestCliSearchesConfigUpward(t *testing.T) {
	isolateEnv(t)
	root := evalTempDir(t)
	workDir := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(workDir, 0755))
	configPath := filepath.Join(root, ConfigName)
	require.NoError(t, os.WriteFile(configPath, []byte("ct:\n"), 0644))
	chdir(t, workDir)

	cmdCtx := cmdcontext.CmdCtx{}
	require.NoError(t, Cli(&cmdCtx))
	assert.Equal(t, configPath, cmdCtx.Cli.ConfigPath)
	assert.Equal(t, root, cmdCtx.Cli.ConfigDir)
}

func TestCliConfigFromEnv(t *testing.T) {
	isolateEnv(t)
	configPath := filepath.Join(evalTempDir(t), "custom.yaml")
	t.Setenv(configEnvName, configPath)
	chdir(t, evalTempDir(t))

	cmdCtx := cmdcontext.CmdCtx{}
	require.NoError(t, Cli(&cmdCtx))
	assert.Equal(t, configPath, cmdCtx.Cli.ConfigPath)
}

func TestCliFlagWins(t *testing.T) {
	isolateEnv(t)
	t.Setenv(configEnvName, "/from/env.yaml")
	configPath := filepath.Join(evalTempDir(t), "flag.yaml")

	cmdCtx := cmdcontext.CmdCtx{Cli: cmdcontext.CliCtx{ConfigPath: configPath}}
	require.NoError(t, Cli(&cmdCtx))
	assert.Equal(t, configPath, cmdCtx.Cli.ConfigPath)
	assert.Equal(t, filepath.Dir(configPath), cmdCtx.Cli.ConfigDir)
}

func TestCliUserConfig(t *testing.T) {
	_, configHome := isolateEnv(t)
	chdir(t, evalTempDir(t))

	cmdCtx := cmdcontext.CmdCtx{}
	require.NoError(t, Cli(&cmdCtx))
	assert.Empty(t, cmdCtx.Cli.ConfigPath)
	assert.Empty(t, cmdCtx.Cli.ConfigDir)

	userConfig := filepath.Join(configHome, "ct", ConfigName)
	require.NoError(t, os.MkdirAll(filepath.Dir(userConfig), 0755))
	require.NoError(t, os.WriteFile(userConfig, []byte("ct:\n"), 0644))

	require.NoError(t, Cli(&cmdCtx))
	assert.Equal(t, userConfig, cmdCtx.Cli.ConfigPath)
	assert.Equal(t, userConfig, DefaultConfigPath())
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	if filepath.IsAbs(dir) {
		t.Setenv("PWD", dir)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			panic("restoring working directory: " + err.Error())
		}
	})
}
